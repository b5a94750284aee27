package program

import (
	"time"
)

const (
	SourceOnboarding = "onboarding"
	SourceGenerator  = "generator"
	SourceFallback   = "fallback"
)

// Program is one training program of a user. Programs are never
// deleted, replaced ones stay around as archived so a regeneration can
// be reverted and the whole history can be audited. PreviousProgramID
// links a regenerated program to the one it replaced, the links form a
// chain back to the first onboarding program.
type Program struct {
	ID                int64     `json:"id"`
	UserID            string    `json:"userId"`
	Name              string    `json:"name"`
	Status            Status    `json:"status"`
	CurrentWeek       int       `json:"currentWeek"`
	TotalWeeks        int       `json:"totalWeeks"`
	WorkoutsCompleted int       `json:"workoutsCompleted"`
	TotalWorkouts     int       `json:"totalWorkouts"`
	Source            string    `json:"source"`
	PreviousProgramID *int64    `json:"previousProgramId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Workout is one training day of a program, the exercises are stored
// with it as a single document.
type Workout struct {
	ID        int64             `json:"id"`
	ProgramID int64             `json:"programId"`
	Name      string            `json:"name"`
	DayIndex  int               `json:"dayIndex"`
	Exercises []WorkoutExercise `json:"exercises"`
}

type WorkoutExercise struct {
	ExerciseID  string  `json:"exerciseId"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	Kilos       float64 `json:"kilos"`
	RestSeconds int     `json:"restSeconds"`
}

// RegenerationCheck says whether the user may regenerate the program
// right now, and if not, the first rule that blocks it.
type RegenerationCheck struct {
	CanRegenerate bool        `json:"canRegenerate"`
	ReasonCode    CheckReason `json:"reasonCode"`
	Reason        string      `json:"reason"`
}

type CheckReason string

const (
	CheckReasonOK                   CheckReason = "ok"
	CheckReasonNoActiveProgram      CheckReason = "no_active_program"
	CheckReasonCooldownActive       CheckReason = "cooldown_active"
	CheckReasonInsufficientProgress CheckReason = "insufficient_progress"
	CheckReasonProfileIncomplete    CheckReason = "profile_incomplete"
)

// RegenerationResult is the outcome of a regenerate call.
// Ineligibility is not an error, it comes back as Success false with
// the blocking reason.
type RegenerationResult struct {
	Success      bool      `json:"success"`
	Program      *Program  `json:"program,omitempty"`
	Workouts     []Workout `json:"workouts,omitempty"`
	UsedFallback bool      `json:"usedFallback"`
	Reason       string    `json:"reason,omitempty"`
}

// RevertResult is the outcome of a revert call, same idea as
// RegenerationResult: a revert that is not possible right now is a
// regular answer, not an error.
type RevertResult struct {
	Success  bool      `json:"success"`
	Program  *Program  `json:"program,omitempty"`
	Workouts []Workout `json:"workouts,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}
