// Package build drives a generation run: load, validate, flatten, render, write
package build

import (
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mcell/classgen/internal/codegen"
	"github.com/mcell/classgen/internal/config"
	"github.com/mcell/classgen/internal/model"
	"github.com/mcell/classgen/internal/schema"
	"github.com/mcell/classgen/internal/sink"
	"github.com/rs/zerolog"
)

// FileWriter stores rendered artifacts
type FileWriter interface {
	Write(f codegen.File) (sink.Outcome, error)
}

// Report summarizes a generation run
type Report struct {
	Classes   int
	Written   int
	Unchanged int
	Skipped   int
	Warnings  []string
}

// Builder generates every artifact of a project
type Builder struct {
	config *config.Config
	target codegen.Target
	out    FileWriter
	logger zerolog.Logger
}

// NewBuilder creates a builder for cfg, writing to the configured output
// directories
func NewBuilder(cfg *config.Config, logger zerolog.Logger) (*Builder, error) {
	copyright, err := cfg.Copyright()
	if err != nil {
		return nil, err
	}

	registry := NewRegistry()
	target, err := registry.Get(cfg.Target, codegen.Options{
		Namespaces:          cfg.Cpp.Namespaces,
		Copyright:           copyright,
		IncludeAPIDir:       cfg.Output.IncludeAPIDir,
		IncludeGeneratedDir: cfg.Output.IncludeGeneratedDir,
	})
	if err != nil {
		return nil, errors.WithHintf(err, "supported targets: %s", strings.Join(registry.Targets(), ", "))
	}

	out := sink.New(cfg.Output.GeneratedDir, cfg.Output.APIDir, logger)
	return newBuilder(cfg, target, out, logger), nil
}

func newBuilder(cfg *config.Config, target codegen.Target, out FileWriter, logger zerolog.Logger) *Builder {
	return &Builder{
		config: cfg,
		target: target,
		out:    out,
		logger: logger.With().Str("component", "builder").Logger(),
	}
}

// LoadSchema reads and merges the configured schema files in order
func (b *Builder) LoadSchema() (*schema.Schema, error) {
	merged := &schema.Schema{}
	for _, path := range b.config.SchemaPaths() {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read schema file %s", path)
		}

		s, err := schema.ParseSchema(content)
		if err != nil {
			return nil, errors.Wrapf(err, "in %s", path)
		}
		if err := merged.Merge(s); err != nil {
			return nil, errors.Wrapf(err, "in %s", path)
		}

		b.logger.Debug().
			Str("path", path).
			Int("classes", len(s.Classes)).
			Msg("loaded schema file")
	}
	return merged, nil
}

// Generate runs the whole pipeline. Artifacts are written as soon as they
// are rendered, so a failure part way leaves the files of earlier classes
// on disk.
func (b *Builder) Generate(ctx context.Context) (*Report, error) {
	s, err := b.LoadSchema()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	gctx := codegen.NewContext(s)
	report := &Report{}

	files, err := b.target.Constants(gctx)
	if err != nil {
		return nil, errors.Wrap(err, "rendering constants")
	}
	if err := b.emit(report, files); err != nil {
		return nil, err
	}

	for i := range s.Classes {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "generation cancelled")
		}

		class := &s.Classes[i]
		effective, err := model.Flatten(s, class)
		if err != nil {
			return nil, err
		}
		for _, warning := range model.Lint(effective) {
			b.logger.Warn().Str("class", class.Name).Msg(warning)
			report.Warnings = append(report.Warnings, warning)
		}

		files, err := b.target.Class(gctx, effective)
		if err != nil {
			return nil, errors.Wrapf(err, "rendering class %q", class.Name)
		}
		if err := b.emit(report, files); err != nil {
			return nil, err
		}

		report.Classes++
		b.logger.Debug().Str("class", class.Name).Msg("generated class")
	}

	files, err = b.target.Names(gctx)
	if err != nil {
		return nil, errors.Wrap(err, "rendering name table")
	}
	if err := b.emit(report, files); err != nil {
		return nil, err
	}

	b.logger.Info().
		Int("classes", report.Classes).
		Int("written", report.Written).
		Int("unchanged", report.Unchanged).
		Int("stubs_kept", report.Skipped).
		Msg("generation finished")
	return report, nil
}

func (b *Builder) emit(report *Report, files []codegen.File) error {
	for _, f := range files {
		outcome, err := b.out.Write(f)
		if err != nil {
			return err
		}
		switch outcome {
		case sink.Written:
			report.Written++
		case sink.Unchanged:
			report.Unchanged++
		case sink.SkippedExisting:
			report.Skipped++
		}
	}
	return nil
}
