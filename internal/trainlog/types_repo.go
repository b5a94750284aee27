package trainlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

var ErrExerciseTypeNotFound = errors.New("exercise type not found")

type GetTypesParams struct {
	MuscleGroup string
	Category    string
}

func (r *Repo) UpsertType(ctx context.Context, exerciseType ExerciseType) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.types.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise_id", exerciseType.ExerciseID))

	_, err = r.db.Exec(
		ctx,
		`
			INSERT INTO exercise_type
				(exercise_id, muscle_group, name, category, description, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (exercise_id) DO UPDATE SET
				muscle_group = EXCLUDED.muscle_group,
				name = EXCLUDED.name,
				category = EXCLUDED.category,
				description = EXCLUDED.description;`,
		exerciseType.ExerciseID, exerciseType.MuscleGroup, exerciseType.Name,
		exerciseType.Category, exerciseType.Description, exerciseType.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert exercise type: %w", err)
	}

	return nil
}

func (r *Repo) GetType(ctx context.Context, exerciseID string) (_ ExerciseType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.types.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	var exerciseType ExerciseType
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
			    exercise_id, muscle_group, name, category, description, created_at
			FROM exercise_type
			WHERE exercise_id = $1
		`,
		exerciseID,
	).Scan(
		&exerciseType.ExerciseID,
		&exerciseType.MuscleGroup,
		&exerciseType.Name,
		&exerciseType.Category,
		&exerciseType.Description,
		&exerciseType.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ExerciseType{}, ErrExerciseTypeNotFound
	}
	if err != nil {
		return ExerciseType{}, fmt.Errorf("exercise type [query row]: %w", err)
	}

	return exerciseType, nil
}

func (r *Repo) GetTypes(ctx context.Context, params GetTypesParams) (_ []ExerciseType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.types.get_types")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if params.MuscleGroup != "" {
		span.SetAttributes(attribute.String("params.muscleGroup", params.MuscleGroup))
	}
	if params.Category != "" {
		span.SetAttributes(attribute.String("params.category", params.Category))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    exercise_id, muscle_group, name, category, description, created_at
			FROM exercise_type
				WHERE ($1::text = '' OR muscle_group = $1)
				AND ($2::text = '' OR category = $2)
			ORDER BY exercise_id;`,
		params.MuscleGroup, params.Category,
	)
	if err != nil {
		return nil, fmt.Errorf("exercise types [query]: %w", err)
	}
	defer rows.Close()

	var exerciseTypes []ExerciseType
	for rows.Next() {
		var exerciseType ExerciseType
		if err := rows.Scan(
			&exerciseType.ExerciseID,
			&exerciseType.MuscleGroup,
			&exerciseType.Name,
			&exerciseType.Category,
			&exerciseType.Description,
			&exerciseType.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("exercise types [rows scan]: %w", err)
		}
		exerciseTypes = append(exerciseTypes, exerciseType)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercise types [rows]: %w", err)
	}

	return exerciseTypes, nil
}
