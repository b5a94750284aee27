package program

import (
	"context"

	"github.com/2beens/gymcoach/internal/profile"
)

const (
	dayFull  = "full"
	dayUpper = "upper"
	dayLower = "lower"
	dayPush  = "push"
	dayPull  = "pull"
	dayLegs  = "legs"
)

// FallbackSynthesizer builds a program from fixed templates, no
// external calls involved. Same request in, same blueprint out, so
// when the generator is down every user still gets a working program.
type FallbackSynthesizer struct {
	totalWeeks int
}

func NewFallbackSynthesizer(totalWeeks int) *FallbackSynthesizer {
	return &FallbackSynthesizer{
		totalWeeks: totalWeeks,
	}
}

func (f *FallbackSynthesizer) Synthesize(_ context.Context, req GenerationRequest) (*Blueprint, error) {
	days := splitForDays(req.Profile.DaysPerWeek)

	lastKnownKilos := make(map[string]float64)
	for _, summary := range req.Summaries {
		if summary.EntriesCount > 0 {
			lastKnownKilos[summary.ExerciseID] = summary.LastKilos
		}
	}

	workouts := make([]BlueprintWorkout, 0, len(days))
	for i, day := range days {
		exerciseIDs := exercisesForDay(day)
		exercises := make([]WorkoutExercise, 0, len(exerciseIDs))
		for _, exerciseID := range exerciseIDs {
			exercises = append(exercises, WorkoutExercise{
				ExerciseID:  exerciseID,
				Sets:        3,
				Reps:        repsForGoal(req.Profile.Goal),
				Kilos:       startingKilos(exerciseID, lastKnownKilos),
				RestSeconds: restForGoal(req.Profile.Goal),
			})
		}
		workouts = append(workouts, BlueprintWorkout{
			Name:      workoutName(day),
			DayIndex:  i + 1,
			Exercises: exercises,
		})
	}

	return &Blueprint{
		Name:       splitName(len(days)),
		TotalWeeks: f.totalWeeks,
		Workouts:   workouts,
	}, nil
}

func splitForDays(daysPerWeek int) []string {
	switch {
	case daysPerWeek <= 0:
		// incomplete profile data, three days is a sane middle ground
		return []string{dayPush, dayPull, dayLegs}
	case daysPerWeek == 1:
		return []string{dayFull}
	case daysPerWeek == 2:
		return []string{dayUpper, dayLower}
	case daysPerWeek == 3:
		return []string{dayPush, dayPull, dayLegs}
	case daysPerWeek == 4:
		return []string{dayUpper, dayLower, dayUpper, dayLower}
	case daysPerWeek == 5:
		return []string{dayPush, dayPull, dayLegs, dayUpper, dayLower}
	default:
		return []string{dayPush, dayPull, dayLegs, dayPush, dayPull, dayLegs}
	}
}

func exercisesForDay(day string) []string {
	switch day {
	case dayPush:
		return []string{"bench_press", "overhead_press", "incline_dumbbell_press", "triceps_pushdown"}
	case dayPull:
		return []string{"deadlift", "barbell_row", "lat_pulldown", "biceps_curl"}
	case dayLegs:
		return []string{"squat", "romanian_deadlift", "leg_press", "calf_raise"}
	case dayUpper:
		return []string{"bench_press", "barbell_row", "overhead_press", "lat_pulldown", "biceps_curl"}
	case dayLower:
		return []string{"squat", "romanian_deadlift", "leg_press", "leg_curl", "calf_raise"}
	default:
		return []string{"squat", "bench_press", "barbell_row", "overhead_press"}
	}
}

func workoutName(day string) string {
	switch day {
	case dayPush:
		return "Push Day"
	case dayPull:
		return "Pull Day"
	case dayLegs:
		return "Legs Day"
	case dayUpper:
		return "Upper Body"
	case dayLower:
		return "Lower Body"
	default:
		return "Full Body"
	}
}

func splitName(daysCount int) string {
	switch daysCount {
	case 1:
		return "Full Body Program"
	case 2, 4:
		return "Upper Lower Split"
	default:
		return "Push Pull Legs"
	}
}

func repsForGoal(goal string) int {
	switch goal {
	case profile.Goal.Strength:
		return 5
	case profile.Goal.Endurance:
		return 15
	default:
		return 10
	}
}

func restForGoal(goal string) int {
	switch goal {
	case profile.Goal.Strength:
		return 180
	case profile.Goal.Endurance:
		return 60
	default:
		return 90
	}
}

// startingKilos prefers what the user actually lifted last, template
// defaults are for exercises never logged before.
func startingKilos(exerciseID string, lastKnownKilos map[string]float64) float64 {
	if kilos, ok := lastKnownKilos[exerciseID]; ok && kilos > 0 {
		return kilos
	}
	switch exerciseID {
	case "squat":
		return 40
	case "deadlift":
		return 50
	case "bench_press", "barbell_row":
		return 30
	case "overhead_press":
		return 20
	default:
		return 10
	}
}
