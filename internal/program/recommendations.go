package program

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymcoach/internal/progression"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// Recommendations is the progression picture across the whole active
// program: one suggestion per exercise, plus a soft nudge towards
// regeneration when enough of them plateaued. The nudge is advisory
// only, the eligibility gates still apply when the user acts on it.
type Recommendations struct {
	UserID              string                   `json:"userId"`
	Suggestions         []progression.Suggestion `json:"suggestions"`
	PlateauCount        int                      `json:"plateauCount"`
	SuggestRegeneration bool                     `json:"suggestRegeneration"`
	Reason              string                   `json:"reason"`
}

func (s *Service) Recommendations(ctx context.Context, userID string) (_ *Recommendations, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.recommendations")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	activeProgram, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveProgram) {
			return &Recommendations{
				UserID:      userID,
				Suggestions: []progression.Suggestion{},
				Reason:      "no active program",
			}, nil
		}
		return nil, fmt.Errorf("get active program: %w", err)
	}

	workouts, err := s.repo.GetWorkouts(ctx, activeProgram.ID)
	if err != nil {
		return nil, fmt.Errorf("get workouts: %w", err)
	}

	// an exercise can appear on multiple days, the first occurrence
	// decides the targets
	exerciseIDs := make([]string, 0)
	targets := make(map[string]progression.Targets)
	for _, workout := range workouts {
		for _, exercise := range workout.Exercises {
			if _, seen := targets[exercise.ExerciseID]; seen {
				continue
			}
			exerciseIDs = append(exerciseIDs, exercise.ExerciseID)
			targets[exercise.ExerciseID] = progression.Targets{
				Sets: exercise.Sets,
				Reps: exercise.Reps,
			}
		}
	}

	suggestions := make([]progression.Suggestion, 0, len(exerciseIDs))
	plateauCount := 0
	for _, exerciseID := range exerciseIDs {
		suggestion, err := s.advisor.Suggest(ctx, userID, exerciseID, targets[exerciseID])
		if err != nil {
			return nil, fmt.Errorf("suggestion for %s: %w", exerciseID, err)
		}
		if suggestion == nil {
			// never logged, nothing to say about it
			continue
		}
		suggestions = append(suggestions, *suggestion)
		if suggestion.ReasonCode == progression.ReasonPlateau {
			plateauCount++
		}
	}

	recommendations := &Recommendations{
		UserID:       userID,
		Suggestions:  suggestions,
		PlateauCount: plateauCount,
	}
	if plateauCount >= s.recommendPlateauCount {
		recommendations.SuggestRegeneration = true
		recommendations.Reason = fmt.Sprintf(
			"%d exercises look plateaued, a regenerated program could help", plateauCount,
		)
	} else {
		recommendations.Reason = "training is progressing"
	}

	return recommendations, nil
}
