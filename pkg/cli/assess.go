package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/sustain-lab/esgradar/pkg/cli/config"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/domain/types"
	"github.com/sustain-lab/esgradar/pkg/usecase"
	"github.com/sustain-lab/esgradar/pkg/utils/logging"
)

func cmdAssess() *cli.Command {
	var orgID string
	var jsonOutput bool
	var footprintPath string
	var refDataCfg config.RefData
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "org-id",
			Usage:       "Organization ID to assess (required)",
			Required:    true,
			Sources:     cli.EnvVars("ESGRADAR_ORG_ID"),
			Destination: &orgID,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Emit the full assessment as JSON instead of a summary",
			Destination: &jsonOutput,
		},
		&cli.StringFlag{
			Name:        "footprint",
			Usage:       "Path to a supply chain footprint JSON file",
			Destination: &footprintPath,
		},
	}
	flags = append(flags, refDataCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "assess",
		Aliases: []string{"a"},
		Usage:   "Run a one-shot exposure assessment",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			refData, err := refDataCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load reference data")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			var footprint *model.SupplyChainFootprint
			if footprintPath != "" {
				data, err := os.ReadFile(footprintPath)
				if err != nil {
					return goerr.Wrap(err, "failed to read footprint file", goerr.V("path", footprintPath))
				}
				footprint = &model.SupplyChainFootprint{}
				if err := json.Unmarshal(data, footprint); err != nil {
					return goerr.Wrap(err, "failed to parse footprint file", goerr.V("path", footprintPath))
				}
			}

			uc := usecase.New(repo, usecase.WithReferenceData(refData))
			output, err := uc.Assessment.Run(ctx, orgID, footprint)
			if err != nil {
				return goerr.Wrap(err, "assessment failed")
			}

			if jsonOutput {
				data, err := json.MarshalIndent(output, "", "  ")
				if err != nil {
					return goerr.Wrap(err, "failed to marshal assessment")
				}
				fmt.Println(string(data))
				return nil
			}

			printAssessment(output)
			return nil
		},
	}
}

func printAssessment(output *model.RiskRadarOutput) {
	bold := color.New(color.Bold)

	bold.Printf("Exposure assessment: %s\n", output.OrganizationID)
	fmt.Printf("Generated at %s\n\n", output.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	for _, pillar := range types.AllPillars() {
		level, ok := output.OverallExposure[pillar]
		if !ok {
			continue
		}
		fmt.Printf("  %-14s %s  score %d  (%d signals)\n",
			pillar, severityColor(level.Level)(string(level.Level)), level.Score, len(level.Signals))
	}

	if len(output.ExposureSignals) > 0 {
		bold.Printf("\nTop signals\n")
		for i, sig := range output.ExposureSignals {
			if i >= 5 {
				fmt.Printf("  ...and %d more\n", len(output.ExposureSignals)-i)
				break
			}
			fmt.Printf("  [%s] %s\n", severityColor(sig.Severity)(string(sig.Severity)), sig.Description)
		}
	}

	if len(output.RegulatoryPressure) > 0 {
		bold.Printf("\nRegulatory pressure\n")
		for _, region := range output.RegulatoryPressure {
			fmt.Printf("  %-6s intensity %d  (%d regulations)\n",
				region.Region, region.Intensity, len(region.Regulations))
		}
	}
}

func severityColor(s types.SignalSeverity) func(...any) string {
	switch s {
	case types.SignalSeverityCritical:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case types.SignalSeverityHigh:
		return color.New(color.FgRed).SprintFunc()
	case types.SignalSeverityMedium:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgGreen).SprintFunc()
	}
}
