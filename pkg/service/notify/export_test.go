package notify

// Export internal functions for testing
var (
	BuildGapBlocks = buildGapBlocks
	SeverityEmoji  = severityEmoji
)
