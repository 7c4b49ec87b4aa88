package commands

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"github.com/mcell/classgen/internal/build"
	"github.com/mcell/classgen/internal/config"
)

// Generate regenerates every artifact of the project found from the
// current directory
func (c *Controller) Generate(ctx context.Context) error {
	cfg, baseDir, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	log.Debug().
		Str("base_dir", baseDir).
		Str("target", cfg.Target).
		Strs("schema", cfg.SchemaPaths()).
		Msg("configuration loaded")

	builder, err := build.NewBuilder(cfg, log.Logger)
	if err != nil {
		return err
	}

	report, err := builder.Generate(ctx)
	if err != nil {
		return errors.Wrap(err, "generation failed")
	}

	if len(report.Warnings) > 0 {
		log.Warn().Int("count", len(report.Warnings)).Msg("schema produced warnings")
	}
	log.Info().
		Str("generated", cfg.Output.GeneratedDir).
		Str("api", cfg.Output.APIDir).
		Msgf("generated %d classes", report.Classes)
	return nil
}
