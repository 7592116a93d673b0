package readiness

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"time"

	"github.com/sustain-lab/esgradar/pkg/domain/model"
)

const (
	// nextReviewDays is a fixed review policy, not user-configurable here
	nextReviewDays = 30

	trendMonths = 6

	// maxTrendJitter bounds the synthesized deviation around the current
	// overall score for months with no stored history
	maxTrendJitter = 5
)

type options struct {
	clock      func() time.Time
	history    []model.TrendPoint
	synthesize bool
	seed       uint32
}

// Option is a functional option shared by Calculate and IdentifyGaps
type Option func(*options)

// WithClock replaces the wall clock, for deterministic output in tests
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithHistory supplies real historical readiness points (period "YYYY-MM").
// Months covered by history are reported as stored.
func WithHistory(points []model.TrendPoint) Option {
	return func(o *options) {
		o.history = points
	}
}

// WithSynthesizedTrend opts into fabricated scores for months not covered by
// stored history, jittered around the current overall score and keyed on
// seed so fixed inputs stay deterministic. Without this option uncovered
// months report the current score unchanged.
func WithSynthesizedTrend(seed uint32) Option {
	return func(o *options) {
		o.synthesize = true
		o.seed = seed
	}
}

func applyOptions(opts []Option) *options {
	o := &options{clock: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Calculate reduces an inventory's precomputed coverage into a readiness
// snapshot. It deliberately reuses the percentage fields already on the
// inventory rather than re-tallying the raw items. Requirements are used
// only to surface regulations that have no evidence at all as 0% entries.
func Calculate(inventory model.EvidenceInventory, requirements []model.EvidenceRequirement, opts ...Option) model.ReadinessSnapshot {
	o := applyOptions(opts)
	now := o.clock().UTC()

	byPillar := model.PillarScores{
		Environmental: inventory.Coverage.ByPillar.Environmental.CoveragePercentage,
		Social:        inventory.Coverage.ByPillar.Social.CoveragePercentage,
		Governance:    inventory.Coverage.ByPillar.Governance.CoveragePercentage,
	}
	overall := int(math.Round(float64(byPillar.Environmental+byPillar.Social+byPillar.Governance) / 3))

	byRegulation := make(map[string]int, len(inventory.Coverage.ByRegulation))
	for reg, metrics := range inventory.Coverage.ByRegulation {
		byRegulation[reg] = metrics.CoveragePercentage
	}
	for _, req := range requirements {
		if _, ok := byRegulation[req.Regulation]; !ok {
			byRegulation[req.Regulation] = 0
		}
	}

	return model.ReadinessSnapshot{
		Timestamp:      now,
		Overall:        overall,
		ByPillar:       byPillar,
		ByRegulation:   byRegulation,
		Trend:          buildTrend(now, overall, o),
		NextReviewDate: now.AddDate(0, 0, nextReviewDays),
	}
}

// buildTrend produces one point per calendar month for the last trendMonths
// months including the current one. Stored history wins; the current month
// always reports the freshly computed overall score. Months with no stored
// snapshot report the current score flat unless synthesis was requested.
func buildTrend(now time.Time, overall int, o *options) []model.TrendPoint {
	stored := make(map[string]int, len(o.history))
	for _, p := range o.history {
		stored[p.Period] = p.Score
	}

	trend := make([]model.TrendPoint, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		month := now.AddDate(0, -i, 0)
		period := month.Format("2006-01")

		score := overall
		switch {
		case i == 0:
			// current month: always the live score
		case hasPeriod(stored, period):
			score = stored[period]
		case o.synthesize:
			score = synthesize(o.seed, period, overall)
		}
		trend = append(trend, model.TrendPoint{Period: period, Score: score})
	}
	return trend
}

func hasPeriod(stored map[string]int, period string) bool {
	_, ok := stored[period]
	return ok
}

// synthesize fabricates a plausible score for a month with no stored
// snapshot: the current overall plus a jitter in
// [-maxTrendJitter, +maxTrendJitter] keyed on the seed and period label, so
// fixed inputs always yield identical output.
func synthesize(seed uint32, period string, overall int) int {
	h := fnv.New32a()
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], seed)
	h.Write(buf[:])         //nolint:errcheck // fnv never fails
	h.Write([]byte(period)) //nolint:errcheck // fnv never fails

	jitter := int(h.Sum32()%(2*maxTrendJitter+1)) - maxTrendJitter
	score := overall + jitter
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
