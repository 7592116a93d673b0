package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sustain-lab/esgradar/pkg/service/notify"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for the gap alert notifier
type Slack struct {
	botToken string
	channel  string
}

// Flags returns CLI flags for Slack notification configuration
func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for gap alerts)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("ESGRADAR_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for gap alerts (e.g. #esg-alerts)",
			Category:    "Slack",
			Destination: &x.channel,
			Sources:     cli.EnvVars("ESGRADAR_SLACK_CHANNEL"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel", x.channel),
	)
}

// IsConfigured reports whether both the token and channel are set
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channel != ""
}

// Configure builds the notification service. Returns nil when Slack is not
// configured; alerts are then skipped entirely.
func (x *Slack) Configure() (notify.Service, error) {
	if x.botToken == "" && x.channel == "" {
		return nil, nil
	}
	if !x.IsConfigured() {
		return nil, goerr.New("slack-bot-token and slack-channel must be set together")
	}

	return notify.New(x.botToken, x.channel)
}
