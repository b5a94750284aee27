package program

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymcoach/internal/profile"
	"github.com/2beens/gymcoach/internal/progression"
	"github.com/2beens/gymcoach/internal/telemetry/metrics"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/internal/trainlog"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=program_test

const (
	// exercises trained in this window feed the generation request
	recentTrainingWindow = 30 * 24 * time.Hour
	summaryLookback      = 10
)

var ErrProfileIncomplete = errors.New("user profile is not complete")

type programsRepo interface {
	GetActive(ctx context.Context, userID string) (*Program, error)
	Get(ctx context.Context, id int64) (*Program, error)
	GetWorkouts(ctx context.Context, programID int64) ([]Workout, error)
	History(ctx context.Context, userID string) ([]Program, error)
	CreateActive(ctx context.Context, newProgram Program, workouts []Workout) (*Program, []Workout, error)
	SwapActive(ctx context.Context, currentProgramID int64, newProgram Program, workouts []Workout) (*Program, []Workout, error)
	RevertSwap(ctx context.Context, currentProgramID, previousProgramID int64) error
	CompleteWorkout(ctx context.Context, userID string) (*Program, error)
}

type eligibilityChecker interface {
	Check(ctx context.Context, userID string) (*RegenerationCheck, error)
}

type summarySource interface {
	Summary(ctx context.Context, userID, exerciseID string, lookback int) (*trainlog.Summary, error)
}

type exercisesSource interface {
	DistinctExerciseIDs(ctx context.Context, userID string, since time.Time) ([]string, error)
}

type suggestionSource interface {
	Suggest(ctx context.Context, userID, exerciseID string, targets progression.Targets) (*progression.Suggestion, error)
}

// Service drives the program lifecycle: onboarding, regeneration,
// revert and workout completion. All mutations go through the repo in
// single transactions keyed on the current program, two phones racing
// each other end up with one winner and one ErrConflict.
type Service struct {
	repo                  programsRepo
	profiles              profilesRepo
	checker               eligibilityChecker
	history               summarySource
	exercises             exercisesSource
	advisor               suggestionSource
	generator             Synthesizer
	fallback              Synthesizer
	cache                 *Cache
	metrics               *metrics.Manager
	revertWindow          time.Duration
	recommendPlateauCount int
}

type NewServiceParams struct {
	Repo                  programsRepo
	Profiles              profilesRepo
	Checker               eligibilityChecker
	History               summarySource
	Exercises             exercisesSource
	Advisor               suggestionSource
	Generator             Synthesizer
	Fallback              Synthesizer
	Cache                 *Cache
	Metrics               *metrics.Manager
	RevertWindow          time.Duration
	RecommendPlateauCount int
}

func NewService(params NewServiceParams) *Service {
	return &Service{
		repo:                  params.Repo,
		profiles:              params.Profiles,
		checker:               params.Checker,
		history:               params.History,
		exercises:             params.Exercises,
		advisor:               params.Advisor,
		generator:             params.Generator,
		fallback:              params.Fallback,
		cache:                 params.Cache,
		metrics:               params.Metrics,
		revertWindow:          params.RevertWindow,
		recommendPlateauCount: params.RecommendPlateauCount,
	}
}

func (s *Service) CheckEligibility(ctx context.Context, userID string) (*RegenerationCheck, error) {
	return s.checker.Check(ctx, userID)
}

func (s *Service) History(ctx context.Context, userID string) ([]Program, error) {
	return s.repo.History(ctx, userID)
}

// ActiveProgram returns the current program with its workouts, from
// redis when possible.
func (s *Service) ActiveProgram(ctx context.Context, userID string) (_ *ActiveProgramView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	if view, found := s.cache.Get(ctx, userID); found {
		span.SetAttributes(attribute.Bool("from_cache", true))
		return view, nil
	}
	span.SetAttributes(attribute.Bool("from_cache", false))

	activeProgram, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	workouts, err := s.repo.GetWorkouts(ctx, activeProgram.ID)
	if err != nil {
		return nil, fmt.Errorf("get workouts: %w", err)
	}

	view := &ActiveProgramView{
		Program:  *activeProgram,
		Workouts: workouts,
	}
	s.cache.Set(ctx, userID, *view)

	return view, nil
}

// CreateInitial builds the first program of a user from the fixed
// templates. The remote generator never sees onboarding, a new user
// has no history worth sending anyway.
func (s *Service) CreateInitial(ctx context.Context, userID string) (_ *ActiveProgramView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.createinitial")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	generationReq, err := s.generationRequest(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	blueprint, err := s.fallback.Synthesize(ctx, *generationReq)
	if err != nil {
		return nil, fmt.Errorf("synthesize initial program: %w", err)
	}
	if err := blueprint.Validate(); err != nil {
		return nil, fmt.Errorf("initial program blueprint: %w", err)
	}

	newProgram, workouts := programFromBlueprint(userID, SourceOnboarding, nil, *blueprint)
	storedProgram, storedWorkouts, err := s.repo.CreateActive(ctx, newProgram, workouts)
	if err != nil {
		return nil, err
	}

	log.Debugf("initial program [%d] created for [%s]: %s", storedProgram.ID, userID, storedProgram.Name)

	view := &ActiveProgramView{
		Program:  *storedProgram,
		Workouts: storedWorkouts,
	}
	s.cache.Set(ctx, userID, *view)

	return view, nil
}

// Regenerate replaces the active program with a freshly synthesized
// one. An ineligible user gets a result with Success false and the
// reason, only infrastructure problems come back as errors. When the
// remote generator fails in any way the deterministic fallback takes
// over, the user always walks away with a program.
func (s *Service) Regenerate(ctx context.Context, userID string) (_ *RegenerationResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.regenerate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	check, err := s.checker.Check(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("eligibility check: %w", err)
	}
	if !check.CanRegenerate {
		log.Debugf("regeneration for [%s] turned down: %s", userID, check.ReasonCode)
		return &RegenerationResult{
			Success: false,
			Reason:  check.Reason,
		}, nil
	}

	currentProgram, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get active program: %w", err)
	}

	generationReq, err := s.generationRequest(ctx, userID, currentProgram)
	if err != nil {
		return nil, err
	}

	blueprint, source, usedFallback, err := s.synthesize(ctx, *generationReq)
	if err != nil {
		return nil, err
	}

	newProgram, workouts := programFromBlueprint(userID, source, &currentProgram.ID, *blueprint)
	storedProgram, storedWorkouts, err := s.repo.SwapActive(ctx, currentProgram.ID, newProgram, workouts)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, userID)
	s.metrics.CounterRegenerations.Inc()

	log.Debugf(
		"program for [%s] regenerated: [%d] %s -> [%d] %s (fallback: %t)",
		userID, currentProgram.ID, currentProgram.Name, storedProgram.ID, storedProgram.Name, usedFallback,
	)

	return &RegenerationResult{
		Success:      true,
		Program:      storedProgram,
		Workouts:     storedWorkouts,
		UsedFallback: usedFallback,
		Reason:       "program regenerated",
	}, nil
}

// Revert rolls the last regeneration back: the active program becomes
// reverted and its predecessor becomes active again. Allowed only
// within the revert window and only once per program, a reverted
// program never comes back by itself.
func (s *Service) Revert(ctx context.Context, userID string) (_ *RevertResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.revert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	currentProgram, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveProgram) {
			return &RevertResult{
				Success: false,
				Reason:  "no active program to revert",
			}, nil
		}
		return nil, fmt.Errorf("get active program: %w", err)
	}

	if currentProgram.PreviousProgramID == nil {
		return &RevertResult{
			Success: false,
			Reason:  "this program did not replace another one, nothing to revert to",
		}, nil
	}
	if age := time.Since(currentProgram.CreatedAt); age > s.revertWindow {
		return &RevertResult{
			Success: false,
			Reason: fmt.Sprintf(
				"program is %s old, revert is possible only within %s after regeneration",
				age.Round(time.Minute), s.revertWindow,
			),
		}, nil
	}

	previousProgram, err := s.repo.Get(ctx, *currentProgram.PreviousProgramID)
	if err != nil {
		return nil, fmt.Errorf("get previous program: %w", err)
	}
	if !currentProgram.Status.CanTransitionTo(StatusReverted) ||
		!previousProgram.Status.CanTransitionTo(StatusActive) {
		return &RevertResult{
			Success: false,
			Reason:  "previous program cannot be restored",
		}, nil
	}

	if err := s.repo.RevertSwap(ctx, currentProgram.ID, previousProgram.ID); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, userID)
	s.metrics.CounterProgramReverts.Inc()

	restoredWorkouts, err := s.repo.GetWorkouts(ctx, previousProgram.ID)
	if err != nil {
		return nil, fmt.Errorf("get restored workouts: %w", err)
	}
	restoredProgram := *previousProgram
	restoredProgram.Status = StatusActive

	log.Debugf(
		"program for [%s] reverted: [%d] %s -> [%d] %s",
		userID, currentProgram.ID, currentProgram.Name, restoredProgram.ID, restoredProgram.Name,
	)

	return &RevertResult{
		Success:  true,
		Program:  &restoredProgram,
		Workouts: restoredWorkouts,
		Reason:   "previous program restored",
	}, nil
}

func (s *Service) CompleteWorkout(ctx context.Context, userID string) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.program.completeworkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	updatedProgram, err := s.repo.CompleteWorkout(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, userID)
	s.metrics.CounterWorkoutsCompleted.Inc()

	return updatedProgram, nil
}

// synthesize tries the remote generator once and falls back to the
// templates on any failure, including a malformed blueprint. Both
// paths go through the same validation.
func (s *Service) synthesize(ctx context.Context, req GenerationRequest) (*Blueprint, string, bool, error) {
	blueprint, err := s.generator.Synthesize(ctx, req)
	if err == nil {
		if validateErr := blueprint.Validate(); validateErr == nil {
			return blueprint, SourceGenerator, false, nil
		} else {
			err = validateErr
		}
	}

	log.Errorf("program generator failed for [%s], using fallback: %s", req.UserID, err)
	s.metrics.CounterRegenerationFallbacks.Inc()

	blueprint, err = s.fallback.Synthesize(ctx, req)
	if err != nil {
		return nil, "", false, fmt.Errorf("fallback synthesizer: %w", err)
	}
	if err := blueprint.Validate(); err != nil {
		return nil, "", false, fmt.Errorf("fallback blueprint: %w", err)
	}

	return blueprint, SourceFallback, true, nil
}

func (s *Service) generationRequest(
	ctx context.Context,
	userID string,
	currentProgram *Program,
) (*GenerationRequest, error) {
	userProfile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrProfileIncomplete
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !userProfile.IsComplete() {
		return nil, ErrProfileIncomplete
	}

	exerciseIDs, err := s.exercises.DistinctExerciseIDs(ctx, userID, time.Now().Add(-recentTrainingWindow))
	if err != nil {
		return nil, fmt.Errorf("get recently trained exercises: %w", err)
	}

	summaries := make([]trainlog.Summary, 0, len(exerciseIDs))
	for _, exerciseID := range exerciseIDs {
		summary, err := s.history.Summary(ctx, userID, exerciseID, summaryLookback)
		if err != nil {
			return nil, fmt.Errorf("get summary for %s: %w", exerciseID, err)
		}
		summaries = append(summaries, *summary)
	}

	return &GenerationRequest{
		UserID:         userID,
		Profile:        *userProfile,
		Summaries:      summaries,
		CurrentProgram: currentProgram,
	}, nil
}

func programFromBlueprint(
	userID, source string,
	previousProgramID *int64,
	blueprint Blueprint,
) (Program, []Workout) {
	workouts := make([]Workout, 0, len(blueprint.Workouts))
	for _, blueprintWorkout := range blueprint.Workouts {
		workouts = append(workouts, Workout{
			Name:      blueprintWorkout.Name,
			DayIndex:  blueprintWorkout.DayIndex,
			Exercises: blueprintWorkout.Exercises,
		})
	}
	return Program{
		UserID:            userID,
		Name:              blueprint.Name,
		Status:            StatusActive,
		CurrentWeek:       1,
		TotalWeeks:        blueprint.TotalWeeks,
		WorkoutsCompleted: 0,
		TotalWorkouts:     len(workouts) * blueprint.TotalWeeks,
		Source:            source,
		PreviousProgramID: previousProgramID,
		CreatedAt:         time.Now(),
	}, workouts
}
