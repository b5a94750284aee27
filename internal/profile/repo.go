package profile

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

var ErrProfileNotFound = errors.New("profile not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				user_id, goal, experience_level, days_per_week,
				session_minutes, equipment, injuries, created_at, updated_at
			FROM user_profile
			WHERE user_id = $1
		`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("profile [query]: %w", err)
	}
	defer rows.Close()

	profiles, err := rows2profiles(rows)
	if err != nil {
		return nil, fmt.Errorf("profile [rows2profiles]: %w", err)
	}
	if len(profiles) != 1 {
		return nil, ErrProfileNotFound
	}

	return &profiles[0], nil
}

func (r *Repo) Upsert(ctx context.Context, profile Profile) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", profile.UserID))

	equipmentJson, err := json.Marshal(profile.Equipment)
	if err != nil {
		return nil, fmt.Errorf("marshal equipment: %w", err)
	}
	injuriesJson, err := json.Marshal(profile.Injuries)
	if err != nil {
		return nil, fmt.Errorf("marshal injuries: %w", err)
	}

	now := time.Now()
	rows, err := r.db.Query(
		ctx,
		`
			INSERT INTO user_profile (
				user_id, goal, experience_level, days_per_week,
				session_minutes, equipment, injuries, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			ON CONFLICT (user_id) DO UPDATE SET
				goal = EXCLUDED.goal,
				experience_level = EXCLUDED.experience_level,
				days_per_week = EXCLUDED.days_per_week,
				session_minutes = EXCLUDED.session_minutes,
				equipment = EXCLUDED.equipment,
				injuries = EXCLUDED.injuries,
				updated_at = EXCLUDED.updated_at
			RETURNING
				user_id, goal, experience_level, days_per_week,
				session_minutes, equipment, injuries, created_at, updated_at
		`,
		profile.UserID, profile.Goal, profile.ExperienceLevel, profile.DaysPerWeek,
		profile.SessionMinutes, equipmentJson, injuriesJson, now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert profile [query]: %w", err)
	}
	defer rows.Close()

	profiles, err := rows2profiles(rows)
	if err != nil {
		return nil, fmt.Errorf("upsert profile [rows2profiles]: %w", err)
	}
	if len(profiles) != 1 {
		return nil, errors.New("unexpected error, profile not upserted")
	}

	return &profiles[0], nil
}

func rows2profiles(rows pgx.Rows) ([]Profile, error) {
	var profiles []Profile
	for rows.Next() {
		var profile Profile
		var equipmentJson, injuriesJson []byte
		if err := rows.Scan(
			&profile.UserID,
			&profile.Goal,
			&profile.ExperienceLevel,
			&profile.DaysPerWeek,
			&profile.SessionMinutes,
			&equipmentJson,
			&injuriesJson,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		if len(equipmentJson) > 0 {
			if err := json.Unmarshal(equipmentJson, &profile.Equipment); err != nil {
				return nil, fmt.Errorf("unmarshal equipment: %w", err)
			}
		}
		if len(injuriesJson) > 0 {
			if err := json.Unmarshal(injuriesJson, &profile.Injuries); err != nil {
				return nil, fmt.Errorf("unmarshal injuries: %w", err)
			}
		}
		profiles = append(profiles, profile)
	}

	if profiles == nil {
		return []Profile{}, nil
	}
	return profiles, nil
}
