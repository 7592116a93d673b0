package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/sustain-lab/esgradar/pkg/cli/config"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var radarConfigPath string
	var refDataCfg config.RefData

	var flags []cli.Flag
	flags = append(flags, refDataCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "radar-config",
		Usage:       "Path to a radar config JSON file to validate against the reference data",
		Destination: &radarConfigPath,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate reference data and optionally a radar config file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			refData, err := refDataCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "reference data validation failed")
			}

			logger.Info("Reference data validation passed",
				"sectors", len(refData.Sectors),
				"geographies", len(refData.Geographies),
				"requirements", len(refData.Requirements),
			)

			if radarConfigPath == "" {
				return nil
			}

			data, err := os.ReadFile(radarConfigPath)
			if err != nil {
				return goerr.Wrap(err, "failed to read radar config", goerr.V("path", radarConfigPath))
			}

			cfg, err := model.ParseRiskRadarConfig(data)
			if err != nil {
				return goerr.Wrap(err, "radar config parse failed", goerr.V("path", radarConfigPath))
			}

			sanitized := cfg.Sanitize()
			if problems := sanitized.Validate(); len(problems) > 0 {
				for _, p := range problems {
					logger.Warn("Radar config issue", "problem", p)
				}
				return goerr.New("radar config validation failed",
					goerr.V("path", radarConfigPath), goerr.V("issues", len(problems)))
			}

			// Cross-check against reference data: unknown codes are not fatal
			// (they score zero) but almost always indicate a typo
			if refData.Sector(sanitized.SectorCode) == nil {
				logger.Warn("Sector code has no reference data, will score zero",
					"sector", sanitized.SectorCode)
			}
			for _, geo := range sanitized.Geographies {
				if len(refData.GeographyList([]string{geo})) == 0 {
					logger.Warn("Geography code has no reference data, will score zero",
						"geography", geo)
				}
			}

			logger.Info("Radar config validation passed",
				"sector", sanitized.SectorCode,
				"geographies", len(sanitized.Geographies),
				"supply_chain_tiers", sanitized.SupplyChainTiers,
			)
			return nil
		},
	}
}
