package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// FileName is the project configuration file searched for by Load
const FileName = "classgen.toml"

// EnvPrefix prefixes environment overrides, e.g. CLASSGEN_OUTPUT_API_DIR
const EnvPrefix = "CLASSGEN"

// Config represents the classgen.toml configuration file
type Config struct {
	Schema SchemaConfig `mapstructure:"schema"`
	Output OutputConfig `mapstructure:"output"`
	Cpp    CppConfig    `mapstructure:"cpp"`
	Target string       `mapstructure:"target" validate:"required"`
}

// SchemaConfig lists the schema files, merged in order
type SchemaConfig struct {
	Dir   string   `mapstructure:"dir" validate:"required"`
	Files []string `mapstructure:"files" validate:"min=1,dive,required"`
}

// OutputConfig contains the output locations. The include directories are
// written into #include lines and are not resolved.
type OutputConfig struct {
	GeneratedDir        string `mapstructure:"generated_dir" validate:"required"`
	APIDir              string `mapstructure:"api_dir" validate:"required"`
	IncludeGeneratedDir string `mapstructure:"include_generated_dir"`
	IncludeAPIDir       string `mapstructure:"include_api_dir"`
}

// CppConfig contains C++ target options
type CppConfig struct {
	Namespaces    []string `mapstructure:"namespaces"`
	CopyrightFile string   `mapstructure:"copyright_file"`
}

// SetDefaults registers the built-in configuration
func SetDefaults(v *viper.Viper) {
	v.SetDefault("schema.dir", ".")
	v.SetDefault("schema.files", []string{
		"constants.yaml",
		"data_classes.yaml",
		"simulation_setup.yaml",
		"simulation_control.yaml",
	})

	v.SetDefault("output.generated_dir", filepath.Join("..", "generated"))
	v.SetDefault("output.api_dir", filepath.Join("..", "api"))
	v.SetDefault("output.include_generated_dir", "../generated")
	v.SetDefault("output.include_api_dir", "../api")

	v.SetDefault("cpp.namespaces", []string{"MCell", "API"})
	v.SetDefault("cpp.copyright_file", "")

	v.SetDefault("target", "cpp")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load loads classgen.toml from the current directory or a parent
// directory. Without a file the defaults apply relative to the current
// directory. It returns the directory relative paths were resolved against.
func Load() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to get current directory")
	}

	return LoadFromDir(dir)
}

// LoadFromDir searches for classgen.toml in dir and its parents
func LoadFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return config, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	config, err := decode(newViper(), startDir)
	if err != nil {
		return nil, "", err
	}
	return config, startDir, nil
}

// LoadFromPath loads the configuration from a specific file. Relative
// paths in the file are resolved against its directory.
func LoadFromPath(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	return decode(v, filepath.Dir(path))
}

func decode(v *viper.Viper, baseDir string) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Schema.Dir = resolve(baseDir, config.Schema.Dir)
	config.Output.GeneratedDir = resolve(baseDir, config.Output.GeneratedDir)
	config.Output.APIDir = resolve(baseDir, config.Output.APIDir)
	if config.Cpp.CopyrightFile != "" {
		config.Cpp.CopyrightFile = resolve(baseDir, config.Cpp.CopyrightFile)
	}
	return &config, nil
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}

// Validate checks that every required setting is present
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace())
			}
			return errors.Newf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// SchemaPaths returns the schema files in merge order
func (c *Config) SchemaPaths() []string {
	paths := make([]string, 0, len(c.Schema.Files))
	for _, f := range c.Schema.Files {
		paths = append(paths, resolve(c.Schema.Dir, f))
	}
	return paths
}

// Copyright returns the configured copyright header, or "" to select the
// target's built-in one
func (c *Config) Copyright() (string, error) {
	if c.Cpp.CopyrightFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.Cpp.CopyrightFile)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read copyright file")
	}
	return string(data), nil
}
