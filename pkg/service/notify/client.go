package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/domain/types"
)

// maxGapsPerMessage caps the blocks in one Slack message; Slack rejects
// messages with more than 50 blocks.
const maxGapsPerMessage = 10

// client implements Service on top of the Slack Web API
type client struct {
	api     *slack.Client
	channel string
}

// Option is a functional option for client configuration
type Option func(*client)

// New creates a Slack-backed notification service
func New(token, channel string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channel == "" {
		return nil, goerr.New("Slack channel is required")
	}

	c := &client{
		api:     slack.New(token),
		channel: channel,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// NotifyGaps posts one message per call listing the most urgent gaps.
// Gaps arrive already sorted most urgent first, so truncation keeps the
// ones that matter.
func (c *client) NotifyGaps(ctx context.Context, orgID string, gaps []model.EvidenceGap) error {
	if len(gaps) == 0 {
		return nil
	}

	blocks := buildGapBlocks(orgID, gaps)

	_, _, err := c.api.PostMessageContext(ctx, c.channel,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(fmt.Sprintf("%d evidence gaps for %s", len(gaps), orgID), false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post gap notification",
			goerr.V("channel", c.channel),
			goerr.V("orgID", orgID),
			goerr.V("gaps", len(gaps)))
	}

	return nil
}

func buildGapBlocks(orgID string, gaps []model.EvidenceGap) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType,
			fmt.Sprintf("Evidence gaps: %s", orgID), false, false)),
	}

	shown := gaps
	if len(shown) > maxGapsPerMessage {
		shown = shown[:maxGapsPerMessage]
	}

	for _, gap := range shown {
		text := fmt.Sprintf("%s *[%s]* %s", severityEmoji(gap.Severity), gap.Severity, gap.Requirement)
		if gap.Regulation != "" {
			text += fmt.Sprintf("\n_%s_", gap.Regulation)
		}
		if gap.Deadline != nil {
			text += fmt.Sprintf(" due %s", gap.Deadline.Format("2006-01-02"))
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil))
	}

	if hidden := len(gaps) - len(shown); hidden > 0 {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("...and %d more", hidden), false, false)))
	}

	return blocks
}

func severityEmoji(s types.SignalSeverity) string {
	switch s {
	case types.SignalSeverityCritical:
		return ":rotating_light:"
	case types.SignalSeverityHigh:
		return ":warning:"
	default:
		return ":information_source:"
	}
}
