package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/sustain-lab/esgradar/pkg/cli/config"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/usecase"
	"github.com/sustain-lab/esgradar/pkg/utils/logging"
)

func cmdReadiness() *cli.Command {
	var orgID string
	var jsonOutput bool
	var refDataCfg config.RefData
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "org-id",
			Usage:       "Organization ID to evaluate (required)",
			Required:    true,
			Sources:     cli.EnvVars("ESGRADAR_ORG_ID"),
			Destination: &orgID,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Emit the snapshot and gaps as JSON instead of a summary",
			Destination: &jsonOutput,
		},
	}
	flags = append(flags, refDataCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "readiness",
		Aliases: []string{"r"},
		Usage:   "Compute the evidence readiness snapshot and gap list",
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

			uc := usecase.New(repo, usecase.WithReferenceData(refData))

			snapshot, err := uc.Evidence.Readiness(ctx, orgID)
			if err != nil {
				return goerr.Wrap(err, "readiness calculation failed")
			}
			gaps, err := uc.Evidence.Gaps(ctx, orgID)
			if err != nil {
				return goerr.Wrap(err, "gap identification failed")
			}

			if jsonOutput {
				data, err := json.MarshalIndent(map[string]any{
					"snapshot": snapshot,
					"gaps":     gaps,
				}, "", "  ")
				if err != nil {
					return goerr.Wrap(err, "failed to marshal readiness result")
				}
				fmt.Println(string(data))
				return nil
			}

			printReadiness(orgID, snapshot, gaps)
			return nil
		},
	}
}

func printReadiness(orgID string, snapshot *model.ReadinessSnapshot, gaps []model.EvidenceGap) {
	bold := color.New(color.Bold)

	bold.Printf("Evidence readiness: %s\n", orgID)
	fmt.Printf("Overall %s  (next review %s)\n\n",
		scoreColor(snapshot.Overall)(fmt.Sprintf("%d%%", snapshot.Overall)),
		snapshot.NextReviewDate.Format("2006-01-02"))

	fmt.Printf("  environmental %3d%%\n", snapshot.ByPillar.Environmental)
	fmt.Printf("  social        %3d%%\n", snapshot.ByPillar.Social)
	fmt.Printf("  governance    %3d%%\n", snapshot.ByPillar.Governance)

	if len(snapshot.ByRegulation) > 0 {
		bold.Printf("\nBy regulation\n")
		for reg, score := range snapshot.ByRegulation {
			fmt.Printf("  %-16s %s\n", reg, scoreColor(score)(fmt.Sprintf("%d%%", score)))
		}
	}

	if len(gaps) > 0 {
		bold.Printf("\nGaps (%d)\n", len(gaps))
		for _, gap := range gaps {
			fmt.Printf("  [%s] %s", severityColor(gap.Severity)(string(gap.Severity)), gap.Requirement)
			if gap.Deadline != nil {
				fmt.Printf("  due %s", gap.Deadline.Format("2006-01-02"))
			}
			fmt.Println()
		}
	} else {
		color.Green("\nNo gaps identified")
	}
}

func scoreColor(score int) func(...any) string {
	switch {
	case score >= 75:
		return color.New(color.FgGreen).SprintFunc()
	case score >= 50:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgRed).SprintFunc()
	}
}
