package trainlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	oneHour           = 60 * 60
	typesCacheExpire  = oneHour * 1 // exercise types rarely change
	typesCachePrefix  = "extype::"
	typesCacheSizeMin = 512 * 1024
)

//go:generate mockgen -source=$GOFILE -destination=catalog_mocks_test.go -package=trainlog_test

type typesRepo interface {
	UpsertType(ctx context.Context, exerciseType ExerciseType) error
	GetType(ctx context.Context, exerciseID string) (ExerciseType, error)
	GetTypes(ctx context.Context, params GetTypesParams) ([]ExerciseType, error)
}

// Catalog serves exercise type lookups through an in-memory cache.
// The progression advisor hits it for every suggestion, and the
// catalog itself changes a few times a year.
type Catalog struct {
	repo  typesRepo
	cache *freecache.Cache
}

func NewCatalog(repo typesRepo) *Catalog {
	return &Catalog{
		repo:  repo,
		cache: freecache.NewCache(typesCacheSizeMin),
	}
}

func (c *Catalog) Upsert(ctx context.Context, exerciseType ExerciseType) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.trainlog.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := c.repo.UpsertType(ctx, exerciseType); err != nil {
		return err
	}

	cacheKey := typesCachePrefix + exerciseType.ExerciseID
	c.cache.Del([]byte(cacheKey))

	return nil
}

func (c *Catalog) Get(ctx context.Context, exerciseID string) (_ ExerciseType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.trainlog.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cacheKey := typesCachePrefix + exerciseID
	if cachedBytes, err := c.cache.Get([]byte(cacheKey)); err == nil {
		var exerciseType ExerciseType
		if err = json.Unmarshal(cachedBytes, &exerciseType); err == nil {
			return exerciseType, nil
		}
		log.Errorf("failed to unmarshal exercise type from cache for %s: %s", exerciseID, err)
	}

	exerciseType, err := c.repo.GetType(ctx, exerciseID)
	if err != nil {
		return ExerciseType{}, err
	}

	// set cache
	if exerciseTypeBytes, err := json.Marshal(exerciseType); err != nil {
		log.Errorf("failed to marshal exercise type %s for cache: %s", exerciseID, err)
	} else if err := c.cache.Set([]byte(cacheKey), exerciseTypeBytes, typesCacheExpire); err != nil {
		log.Errorf("failed to write exercise type cache for %s: %s", exerciseID, err)
	}

	return exerciseType, nil
}

// Category returns the exercise category used for picking the weight
// increment. Unknown exercises count as isolation, the smaller and
// safer increment.
func (c *Catalog) Category(ctx context.Context, exerciseID string) (string, error) {
	exerciseType, err := c.Get(ctx, exerciseID)
	if err != nil {
		return CategoryIsolation, fmt.Errorf("get exercise type %s: %w", exerciseID, err)
	}
	return exerciseType.Category, nil
}

func (c *Catalog) List(ctx context.Context, params GetTypesParams) ([]ExerciseType, error) {
	return c.repo.GetTypes(ctx, params)
}
