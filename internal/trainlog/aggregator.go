package trainlog

import (
	"context"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type Trend string

const (
	// TrendNone means there is not enough history to compare two
	// sessions. Not the same thing as declining.
	TrendNone      Trend = "none"
	TrendImproving Trend = "improving"
	TrendFlat      Trend = "flat"
	TrendDeclining Trend = "declining"
)

// Summary is the recent performance of a user on one exercise. It is
// computed on demand from the log and never stored.
type Summary struct {
	UserID       string  `json:"userId"`
	ExerciseID   string  `json:"exerciseId"`
	Entries      []Entry `json:"entries"` // newest first
	EntriesCount int     `json:"entriesCount"`
	LastKilos    float64 `json:"lastKilos"`
	LastReps     int     `json:"lastReps"`
	LastSets     int     `json:"lastSets"`
	LastEffort   *int    `json:"lastEffort,omitempty"`
	Trend        Trend   `json:"trend"`
}

type Aggregator struct {
	repo entriesRepo
}

func NewAggregator(repo entriesRepo) *Aggregator {
	return &Aggregator{
		repo: repo,
	}
}

// Summary builds the performance summary for one exercise out of the
// latest lookback entries.
func (a *Aggregator) Summary(
	ctx context.Context,
	userID, exerciseID string,
	lookback int,
) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.trainlog.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	entries, err := a.repo.ListRecent(ctx, ListRecentParams{
		UserID:     userID,
		ExerciseID: exerciseID,
		Limit:      lookback,
	})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		UserID:       userID,
		ExerciseID:   exerciseID,
		Entries:      entries,
		EntriesCount: len(entries),
		Trend:        TrendNone,
	}

	if len(entries) == 0 {
		return summary, nil
	}

	last := entries[0]
	summary.LastKilos = last.Kilos
	summary.LastReps = last.Reps
	summary.LastSets = last.Sets
	summary.LastEffort = last.Effort

	if len(entries) >= 2 {
		summary.Trend = trendOf(entries[0], entries[1])
	}

	return summary, nil
}

// trendOf compares two sessions on estimated total load.
func trendOf(latest, previous Entry) Trend {
	latestLoad := estimatedLoad(latest)
	previousLoad := estimatedLoad(previous)
	switch {
	case latestLoad > previousLoad:
		return TrendImproving
	case latestLoad < previousLoad:
		return TrendDeclining
	default:
		return TrendFlat
	}
}

func estimatedLoad(e Entry) float64 {
	sets := e.Sets
	if sets < 1 {
		sets = 1
	}
	return e.Kilos * float64(e.Reps) * float64(sets)
}
