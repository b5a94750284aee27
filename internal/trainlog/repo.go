package trainlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrEntryNotFound = errors.New("training entry not found")

type ListRecentParams struct {
	UserID     string
	ExerciseID string
	Limit      int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	metadataJson, err := json.Marshal(entry.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO training_entry
				(user_id, exercise_id, muscle_group, kilos, reps, sets, effort, metadata, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id;`,
		entry.UserID, entry.ExerciseID, entry.MuscleGroup,
		entry.Kilos, entry.Reps, entry.Sets, entry.Effort,
		metadataJson, entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int64
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int64("entry.id", id))

	entry.ID = id
	return &entry, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("id", id))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, exercise_id, muscle_group, kilos, reps, sets, effort, metadata, created_at
			FROM training_entry
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries, err := r.rows2entries(rows)
	if err != nil {
		return nil, err
	}

	if len(entries) != 1 {
		return nil, ErrEntryNotFound
	}

	return &entries[0], nil
}

// ListRecent returns the latest entries of a user for one exercise,
// newest first.
func (r *Repo) ListRecent(ctx context.Context, params ListRecentParams) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.listrecent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", params.UserID))
	span.SetAttributes(attribute.String("exercise_id", params.ExerciseID))
	span.SetAttributes(attribute.Int("limit", params.Limit))

	if params.Limit < 1 {
		return nil, errors.New("limit must be greater than 0")
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, exercise_id, muscle_group, kilos, reps, sets, effort, metadata, created_at
			FROM training_entry
				WHERE user_id = $1
				AND ($2::text = '' OR exercise_id = $2)
			ORDER BY created_at DESC
			LIMIT $3;`,
		params.UserID, params.ExerciseID, params.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	entries, err := r.rows2entries(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2entries: %w", err)
	}
	return entries, nil
}

// DistinctExerciseIDs returns the IDs of all exercises the user logged
// since the given time.
func (r *Repo) DistinctExerciseIDs(ctx context.Context, userID string, since time.Time) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.distinctexercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.String("since", since.String()))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT DISTINCT exercise_id
			FROM training_entry
				WHERE user_id = $1
				AND created_at >= $2
			ORDER BY exercise_id;`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var exerciseIDs []string
	for rows.Next() {
		var exerciseID string
		if err := rows.Scan(&exerciseID); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exerciseIDs = append(exerciseIDs, exerciseID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return exerciseIDs, nil
}

// ListAllForUser returns the complete training log of a user, oldest
// first. Used by the backup service.
func (r *Repo) ListAllForUser(ctx context.Context, userID string) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.listallforuser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, exercise_id, muscle_group, kilos, reps, sets, effort, metadata, created_at
			FROM training_entry
				WHERE user_id = $1
			ORDER BY created_at ASC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	entries, err := r.rows2entries(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2entries: %w", err)
	}
	return entries, nil
}

// UserIDs returns all users that have at least one logged entry.
func (r *Repo) UserIDs(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.userids")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT DISTINCT user_id FROM training_entry ORDER BY user_id;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		userIDs = append(userIDs, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return userIDs, nil
}

func (r *Repo) rows2entries(rows pgx.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var id int64
		var userID string
		var exerciseID string
		var muscleGroup string
		var kilos float64
		var reps int
		var sets int
		var effort *int
		var metadataBytes []byte
		var createdAt time.Time
		if err := rows.Scan(
			&id, &userID, &exerciseID, &muscleGroup,
			&kilos, &reps, &sets, &effort,
			&metadataBytes, &createdAt,
		); err != nil {
			return nil, err
		}

		e := Entry{
			ID:          id,
			UserID:      userID,
			ExerciseID:  exerciseID,
			MuscleGroup: muscleGroup,
			Kilos:       kilos,
			Reps:        reps,
			Sets:        sets,
			Effort:      effort,
			CreatedAt:   createdAt,
		}

		// parse metadata field from JSON to map[string]string
		if len(metadataBytes) > 0 {
			var metadataMap map[string]interface{}
			if err := json.Unmarshal(metadataBytes, &metadataMap); err != nil {
				return nil, fmt.Errorf("unmarshal metadata for entry %d: %w", id, err)
			}

			e.Metadata = make(map[string]string)
			for k, v := range metadataMap {
				e.Metadata[k] = fmt.Sprint(v)
			}
		} else {
			e.Metadata = make(map[string]string)
		}

		entries = append(entries, e)
	}

	if entries == nil {
		entries = make([]Entry, 0)
	}

	return entries, nil
}
