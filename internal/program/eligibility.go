package program

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymcoach/internal/profile"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=eligibility_mocks_test.go -package=program_test

type activeProgramsRepo interface {
	GetActive(ctx context.Context, userID string) (*Program, error)
	LastRegenerationAt(ctx context.Context, userID string) (*time.Time, error)
}

type profilesRepo interface {
	Get(ctx context.Context, userID string) (*profile.Profile, error)
}

// Checker decides whether a user may regenerate their program right
// now. Being turned down is a regular answer with a reason the app
// can show, not an error.
type Checker struct {
	programs             activeProgramsRepo
	profiles             profilesRepo
	cooldown             time.Duration
	minProgramAge        time.Duration
	minCompletedWorkouts int
}

func NewChecker(
	programs activeProgramsRepo,
	profiles profilesRepo,
	cooldown time.Duration,
	minProgramAge time.Duration,
	minCompletedWorkouts int,
) *Checker {
	return &Checker{
		programs:             programs,
		profiles:             profiles,
		cooldown:             cooldown,
		minProgramAge:        minProgramAge,
		minCompletedWorkouts: minCompletedWorkouts,
	}
}

// Check runs the eligibility gates in a fixed order and stops at the
// first one that fails, so the app always shows the most fundamental
// problem first.
func (c *Checker) Check(ctx context.Context, userID string) (_ *RegenerationCheck, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "program.eligibility.check")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	activeProgram, err := c.programs.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveProgram) {
			return &RegenerationCheck{
				CanRegenerate: false,
				ReasonCode:    CheckReasonNoActiveProgram,
				Reason:        "no active program to regenerate",
			}, nil
		}
		return nil, fmt.Errorf("get active program: %w", err)
	}

	lastRegenerationAt, err := c.programs.LastRegenerationAt(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get last regeneration: %w", err)
	}
	if lastRegenerationAt != nil {
		sinceLast := time.Since(*lastRegenerationAt)
		if sinceLast < c.cooldown {
			return &RegenerationCheck{
				CanRegenerate: false,
				ReasonCode:    CheckReasonCooldownActive,
				Reason: fmt.Sprintf(
					"last regeneration was %s ago, wait %s between regenerations",
					sinceLast.Round(time.Minute), c.cooldown,
				),
			}, nil
		}
	}

	// either enough time on the program or enough workouts done counts
	// as progress, one of the two is enough
	programAge := time.Since(activeProgram.CreatedAt)
	if programAge < c.minProgramAge && activeProgram.WorkoutsCompleted < c.minCompletedWorkouts {
		return &RegenerationCheck{
			CanRegenerate: false,
			ReasonCode:    CheckReasonInsufficientProgress,
			Reason: fmt.Sprintf(
				"only %d workouts completed on a %s old program, train a bit more first",
				activeProgram.WorkoutsCompleted, programAge.Round(time.Hour),
			),
		}, nil
	}

	userProfile, err := c.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return &RegenerationCheck{
				CanRegenerate: false,
				ReasonCode:    CheckReasonProfileIncomplete,
				Reason:        "set up your profile before regenerating",
			}, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !userProfile.IsComplete() {
		return &RegenerationCheck{
			CanRegenerate: false,
			ReasonCode:    CheckReasonProfileIncomplete,
			Reason:        "profile is missing goal, experience level or weekly schedule",
		}, nil
	}

	return &RegenerationCheck{
		CanRegenerate: true,
		ReasonCode:    CheckReasonOK,
		Reason:        "all checks passed",
	}, nil
}
