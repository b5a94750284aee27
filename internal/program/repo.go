package program

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrProgramNotFound = errors.New("program not found")
	ErrNoActiveProgram = errors.New("no active program")
	// ErrConflict means the active program changed between the read
	// and the write. The caller can simply retry.
	ErrConflict = errors.New("program modified concurrently")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetActive(ctx context.Context, userID string) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.getactive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, name, status, current_week, total_weeks,
				workouts_completed, total_workouts, source, previous_program_id, created_at
			FROM workout_program
			WHERE user_id = $1 AND status = 'active'
		`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("active program [query]: %w", err)
	}
	defer rows.Close()

	programs, err := rows2programs(rows)
	if err != nil {
		return nil, fmt.Errorf("active program [rows2programs]: %w", err)
	}
	if len(programs) != 1 {
		return nil, ErrNoActiveProgram
	}

	return &programs[0], nil
}

func (r *Repo) Get(ctx context.Context, id int64) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, name, status, current_week, total_weeks,
				workouts_completed, total_workouts, source, previous_program_id, created_at
			FROM workout_program
			WHERE id = $1
		`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("program [query]: %w", err)
	}
	defer rows.Close()

	programs, err := rows2programs(rows)
	if err != nil {
		return nil, fmt.Errorf("program [rows2programs]: %w", err)
	}
	if len(programs) != 1 {
		return nil, ErrProgramNotFound
	}

	return &programs[0], nil
}

// History returns all programs of the user, newest first, regardless
// of status. The previous program links can be followed through it.
func (r *Repo) History(ctx context.Context, userID string) (_ []Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, name, status, current_week, total_weeks,
				workouts_completed, total_workouts, source, previous_program_id, created_at
			FROM workout_program
			WHERE user_id = $1
			ORDER BY created_at DESC
		`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("program history [query]: %w", err)
	}
	defer rows.Close()

	return rows2programs(rows)
}

// LastRegenerationAt returns the creation time of the most recent
// regenerated program of the user, or nil if the user never
// regenerated. Only programs that replaced another one count, the
// initial onboarding program does not start a cooldown.
func (r *Repo) LastRegenerationAt(ctx context.Context, userID string) (_ *time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.lastregeneration")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var lastRegenerationAt *time.Time
	err = r.db.QueryRow(
		ctx,
		`
			SELECT MAX(created_at)
			FROM workout_program
			WHERE user_id = $1 AND previous_program_id IS NOT NULL
		`,
		userID,
	).Scan(&lastRegenerationAt)
	if err != nil {
		return nil, fmt.Errorf("last regeneration [query row]: %w", err)
	}

	return lastRegenerationAt, nil
}

func (r *Repo) GetWorkouts(ctx context.Context, programID int64) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.getworkouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, program_id, name, day_index, exercises
			FROM program_workout
			WHERE program_id = $1
			ORDER BY day_index
		`,
		programID,
	)
	if err != nil {
		return nil, fmt.Errorf("workouts [query]: %w", err)
	}
	defer rows.Close()

	workouts := make([]Workout, 0)
	for rows.Next() {
		var workout Workout
		var exercisesJson []byte
		if err := rows.Scan(
			&workout.ID,
			&workout.ProgramID,
			&workout.Name,
			&workout.DayIndex,
			&exercisesJson,
		); err != nil {
			return nil, fmt.Errorf("scan workout row: %w", err)
		}
		if len(exercisesJson) > 0 {
			if err := json.Unmarshal(exercisesJson, &workout.Exercises); err != nil {
				return nil, fmt.Errorf("unmarshal workout exercises: %w", err)
			}
		}
		workouts = append(workouts, workout)
	}

	return workouts, nil
}

// CreateActive stores a brand new active program with its workouts.
// Used at onboarding only, when the user has no program at all. If an
// active program already exists the partial unique index aborts the
// insert and ErrConflict comes back.
func (r *Repo) CreateActive(
	ctx context.Context,
	newProgram Program,
	workouts []Workout,
) (_ *Program, _ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.createactive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", newProgram.UserID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	storedProgram, storedWorkouts, err := insertProgramTx(ctx, tx, newProgram, workouts)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, nil, ErrConflict
		}
		return nil, nil, err
	}

	return storedProgram, storedWorkouts, nil
}

// SwapActive archives the current active program and stores the new
// one as active, all in one transaction. The archive update is keyed
// on the current program id, a concurrent regeneration or revert that
// got there first makes it touch zero rows and the whole swap fails
// with ErrConflict, nothing half done.
func (r *Repo) SwapActive(
	ctx context.Context,
	currentProgramID int64,
	newProgram Program,
	workouts []Workout,
) (_ *Program, _ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.swapactive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", newProgram.UserID))
	span.SetAttributes(attribute.Int64("current_program_id", currentProgramID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(
		ctx,
		`
			UPDATE workout_program
			SET status = 'archived'
			WHERE id = $1 AND status = 'active'
		`,
		currentProgramID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("archive current program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil, ErrConflict
	}

	storedProgram, storedWorkouts, err := insertProgramTx(ctx, tx, newProgram, workouts)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, nil, ErrConflict
		}
		return nil, nil, err
	}

	return storedProgram, storedWorkouts, nil
}

// RevertSwap marks the current active program reverted and restores
// its archived predecessor to active. Both updates are keyed on the
// expected current status, either of them touching zero rows aborts
// the transaction with ErrConflict.
func (r *Repo) RevertSwap(
	ctx context.Context,
	currentProgramID, previousProgramID int64,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.revertswap")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("current_program_id", currentProgramID))
	span.SetAttributes(attribute.Int64("previous_program_id", previousProgramID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(
		ctx,
		`
			UPDATE workout_program
			SET status = 'reverted'
			WHERE id = $1 AND status = 'active'
		`,
		currentProgramID,
	)
	if err != nil {
		return fmt.Errorf("revert current program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}

	tag, err = tx.Exec(
		ctx,
		`
			UPDATE workout_program
			SET status = 'active'
			WHERE id = $1 AND status = 'archived'
		`,
		previousProgramID,
	)
	if err != nil {
		return fmt.Errorf("restore previous program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}

	return nil
}

// CompleteWorkout bumps the completed workouts counter of the active
// program and moves the current week along with it. A single statement
// so concurrent completions just stack up instead of conflicting.
func (r *Repo) CompleteWorkout(ctx context.Context, userID string) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.program.completeworkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			UPDATE workout_program
			SET
				workouts_completed = workouts_completed + 1,
				current_week = LEAST(
					total_weeks,
					(workouts_completed + 1) * total_weeks / GREATEST(total_workouts, 1) + 1
				)
			WHERE user_id = $1 AND status = 'active'
			RETURNING
				id, user_id, name, status, current_week, total_weeks,
				workouts_completed, total_workouts, source, previous_program_id, created_at
		`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("complete workout [query]: %w", err)
	}
	defer rows.Close()

	programs, err := rows2programs(rows)
	if err != nil {
		return nil, fmt.Errorf("complete workout [rows2programs]: %w", err)
	}
	if len(programs) != 1 {
		return nil, ErrNoActiveProgram
	}

	return &programs[0], nil
}

func insertProgramTx(
	ctx context.Context,
	tx pgx.Tx,
	newProgram Program,
	workouts []Workout,
) (*Program, []Workout, error) {
	err := tx.QueryRow(
		ctx,
		`
			INSERT INTO workout_program (
				user_id, name, status, current_week, total_weeks,
				workouts_completed, total_workouts, source, previous_program_id, created_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`,
		newProgram.UserID, newProgram.Name, newProgram.Status,
		newProgram.CurrentWeek, newProgram.TotalWeeks,
		newProgram.WorkoutsCompleted, newProgram.TotalWorkouts,
		newProgram.Source, newProgram.PreviousProgramID, newProgram.CreatedAt,
	).Scan(&newProgram.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("insert program: %w", err)
	}

	storedWorkouts := make([]Workout, 0, len(workouts))
	for _, workout := range workouts {
		workout.ProgramID = newProgram.ID
		exercisesJson, err := json.Marshal(workout.Exercises)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal workout exercises: %w", err)
		}
		err = tx.QueryRow(
			ctx,
			`
				INSERT INTO program_workout (program_id, name, day_index, exercises)
				VALUES ($1, $2, $3, $4)
				RETURNING id
			`,
			workout.ProgramID, workout.Name, workout.DayIndex, exercisesJson,
		).Scan(&workout.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("insert workout: %w", err)
		}
		storedWorkouts = append(storedWorkouts, workout)
	}

	return &newProgram, storedWorkouts, nil
}

func rows2programs(rows pgx.Rows) ([]Program, error) {
	programs := make([]Program, 0)
	for rows.Next() {
		var p Program
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&p.Status,
			&p.CurrentWeek,
			&p.TotalWeeks,
			&p.WorkoutsCompleted,
			&p.TotalWorkouts,
			&p.Source,
			&p.PreviousProgramID,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan program row: %w", err)
		}
		programs = append(programs, p)
	}
	return programs, nil
}
