package progression

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/internal/trainlog"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=advisor_mocks_test.go -package=progression_test

type historySource interface {
	Summary(ctx context.Context, userID, exerciseID string, lookback int) (*trainlog.Summary, error)
}

type categorySource interface {
	Category(ctx context.Context, exerciseID string) (string, error)
}

// Advisor turns the recent log of an exercise into a weight suggestion
// for the next session. Same history in, same suggestion out, nothing
// random and nothing stored.
type Advisor struct {
	history    historySource
	categories categorySource
	tuning     Tuning
}

func NewAdvisor(history historySource, categories categorySource, tuning Tuning) *Advisor {
	return &Advisor{
		history:    history,
		categories: categories,
		tuning:     tuning,
	}
}

// Suggest applies the progression rules, first match wins:
//   - no logged sessions yet: no suggestion
//   - target met, near failure effort: keep the weight
//   - target met at acceptable effort: add the category increment
//   - misses reached the plateau threshold: deload
//   - target missed: keep the weight and retry
func (a *Advisor) Suggest(
	ctx context.Context,
	userID, exerciseID string,
	targets Targets,
) (_ *Suggestion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "advisor.progression.suggest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	if targets.Sets < 1 || targets.Reps < 1 {
		return nil, fmt.Errorf("invalid targets: sets %d, reps %d", targets.Sets, targets.Reps)
	}

	summary, err := a.history.Summary(ctx, userID, exerciseID, a.tuning.LookbackEntries)
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}

	if summary.EntriesCount == 0 {
		// nothing logged yet, the program weight stands
		return nil, nil
	}

	last := summary.Entries[0]
	suggestion := &Suggestion{
		UserID:       userID,
		ExerciseID:   exerciseID,
		CurrentKilos: last.Kilos,
	}

	if targetMet(last, targets) {
		if last.Effort != nil && *last.Effort >= a.tuning.NearFailureEffort {
			suggestion.Action = ActionKeepWeight
			suggestion.NextKilos = last.Kilos
			suggestion.ReasonCode = ReasonNearFailure
			suggestion.Reason = "target met but near failure"
			return suggestion, nil
		}

		if last.Effort == nil || *last.Effort <= a.tuning.MaxEffortForIncrease {
			increment, err := a.incrementFor(ctx, exerciseID)
			if err != nil {
				return nil, err
			}
			suggestion.Action = ActionIncreaseWeight
			suggestion.NextKilos = last.Kilos + increment
			suggestion.ReasonCode = ReasonMetTarget
			suggestion.Reason = "met target at acceptable effort"
			return suggestion, nil
		}

		suggestion.Action = ActionKeepWeight
		suggestion.NextKilos = last.Kilos
		suggestion.ReasonCode = ReasonMetTarget
		suggestion.Reason = "target met"
		return suggestion, nil
	}

	if missStreak(summary.Entries, targets) >= a.tuning.PlateauMissThreshold {
		suggestion.Action = ActionDeload
		suggestion.NextKilos = roundToHalfKilo(last.Kilos * a.tuning.DeloadFactor)
		suggestion.ReasonCode = ReasonPlateau
		suggestion.Reason = "plateau detected"
		return suggestion, nil
	}

	suggestion.Action = ActionKeepWeight
	suggestion.NextKilos = last.Kilos
	suggestion.ReasonCode = ReasonMissedTarget
	suggestion.Reason = "target missed"
	return suggestion, nil
}

func (a *Advisor) incrementFor(ctx context.Context, exerciseID string) (float64, error) {
	category, err := a.categories.Category(ctx, exerciseID)
	if err != nil && !errors.Is(err, trainlog.ErrExerciseTypeNotFound) {
		// unknown exercises fall back to the isolation increment,
		// anything else is a real failure
		return 0, fmt.Errorf("get category: %w", err)
	}
	if category == trainlog.CategoryCompound {
		return a.tuning.CompoundIncrementKilos, nil
	}
	return a.tuning.IsolationIncrementKilos, nil
}

func targetMet(entry trainlog.Entry, targets Targets) bool {
	return entry.Sets >= targets.Sets && entry.Reps >= targets.Reps
}

// missStreak counts the misses since the last met target, entries are
// newest first.
func missStreak(entries []trainlog.Entry, targets Targets) int {
	streak := 0
	for _, entry := range entries {
		if targetMet(entry, targets) {
			break
		}
		streak++
	}
	return streak
}

// roundToHalfKilo keeps suggested weights loadable with standard plates.
func roundToHalfKilo(kilos float64) float64 {
	return math.Round(kilos*2) / 2
}
