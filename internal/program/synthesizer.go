package program

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymcoach/internal/profile"
	"github.com/2beens/gymcoach/internal/trainlog"
)

//go:generate mockgen -source=$GOFILE -destination=synthesizer_mocks_test.go -package=program_test

var ErrInvalidBlueprint = errors.New("invalid program blueprint")

// GenerationRequest carries everything a synthesizer can use to put a
// program together: who the user is, how they train, and what they
// are running right now (nil for first time users).
type GenerationRequest struct {
	UserID         string             `json:"userId"`
	Profile        profile.Profile    `json:"profile"`
	Summaries      []trainlog.Summary `json:"summaries,omitempty"`
	CurrentProgram *Program           `json:"currentProgram,omitempty"`
}

// Blueprint is a program as a synthesizer proposes it, before it gets
// an id, a status and an owner in the database.
type Blueprint struct {
	Name       string             `json:"name"`
	TotalWeeks int                `json:"totalWeeks"`
	Workouts   []BlueprintWorkout `json:"workouts"`
}

type BlueprintWorkout struct {
	Name      string            `json:"name"`
	DayIndex  int               `json:"dayIndex"`
	Exercises []WorkoutExercise `json:"exercises"`
}

// Validate rejects blueprints that would make a useless program. Both
// the generator output and the fallback go through it, a malformed
// program must never reach the database no matter where it came from.
func (b Blueprint) Validate() error {
	if b.TotalWeeks < 1 {
		return fmt.Errorf("%w: total weeks %d", ErrInvalidBlueprint, b.TotalWeeks)
	}
	if len(b.Workouts) == 0 {
		return fmt.Errorf("%w: no workouts", ErrInvalidBlueprint)
	}
	for _, workout := range b.Workouts {
		if len(workout.Exercises) == 0 {
			return fmt.Errorf("%w: workout %q has no exercises", ErrInvalidBlueprint, workout.Name)
		}
		for _, exercise := range workout.Exercises {
			if exercise.ExerciseID == "" {
				return fmt.Errorf("%w: workout %q has an exercise without id", ErrInvalidBlueprint, workout.Name)
			}
			if exercise.Sets < 1 || exercise.Reps < 1 {
				return fmt.Errorf(
					"%w: exercise %q has sets %d reps %d",
					ErrInvalidBlueprint, exercise.ExerciseID, exercise.Sets, exercise.Reps,
				)
			}
		}
	}
	return nil
}

// Synthesizer produces a program blueprint for the user. Implemented
// by the remote generator client and by the deterministic fallback.
type Synthesizer interface {
	Synthesize(ctx context.Context, req GenerationRequest) (*Blueprint, error)
}
