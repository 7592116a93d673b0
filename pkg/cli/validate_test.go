package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/sustain-lab/esgradar/pkg/cli"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o644)).Required()
	return path
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()

	refData := writeFile(t, dir, "refdata.toml", `
[[sector]]
code = "C"

[[sector.environmental]]
category = "emissions"
severity = "high"
description = "High scope 1 emissions"

[[geography]]
code = "EU"

[geography.intensity]
environmental = 90
social = 80
governance = 85
`)

	t.Run("valid reference data and radar config", func(t *testing.T) {
		radarConfig := writeFile(t, dir, "radar.json", `{
			"sectorCode": "C",
			"geographies": ["EU"],
			"supplyChainTiers": 2
		}`)

		err := cli.Run(context.Background(),
			[]string{"esgradar", "validate", "--refdata", refData, "--radar-config", radarConfig},
			"test")
		gt.NoError(t, err)
	})

	t.Run("invalid radar config fails", func(t *testing.T) {
		radarConfig := writeFile(t, dir, "bad-radar.json", `{
			"geographies": [],
			"supplyChainTiers": 0
		}`)

		err := cli.Run(context.Background(),
			[]string{"esgradar", "validate", "--refdata", refData, "--radar-config", radarConfig},
			"test")
		gt.Error(t, err)
	})

	t.Run("malformed reference data fails", func(t *testing.T) {
		broken := writeFile(t, dir, "broken.toml", `[[sector`)

		err := cli.Run(context.Background(),
			[]string{"esgradar", "validate", "--refdata", broken},
			"test")
		gt.Error(t, err)
	})

	t.Run("missing reference data file fails", func(t *testing.T) {
		err := cli.Run(context.Background(),
			[]string{"esgradar", "validate", "--refdata", filepath.Join(dir, "nope.toml")},
			"test")
		gt.Error(t, err)
	})
}
