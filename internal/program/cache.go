package program

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	activeProgramKeyPrefix = "gymcoach::active-program::"
	activeProgramExpire    = time.Hour
)

// ActiveProgramView is the cached shape of the active program
// together with its workouts, exactly what the app shows on the
// program screen.
type ActiveProgramView struct {
	Program  Program   `json:"program"`
	Workouts []Workout `json:"workouts"`
}

// Cache keeps the active program view in redis so the program screen
// does not hit postgres on every app start. Cache failures are only
// logged, the repo is always the source of truth.
type Cache struct {
	redisClient *redis.Client
}

func NewCache(redisClient *redis.Client) *Cache {
	return &Cache{
		redisClient: redisClient,
	}
}

func (c *Cache) Get(ctx context.Context, userID string) (*ActiveProgramView, bool) {
	cmd := c.redisClient.Get(ctx, activeProgramKeyPrefix+userID)
	if err := cmd.Err(); err != nil {
		if err != redis.Nil {
			log.Errorf("failed to get active program from redis for [%s]: %s", userID, err)
		}
		return nil, false
	}

	view := &ActiveProgramView{}
	if err := json.Unmarshal([]byte(cmd.Val()), view); err != nil {
		log.Errorf("failed to unmarshal cached active program for [%s]: %s", userID, err)
		return nil, false
	}

	return view, true
}

func (c *Cache) Set(ctx context.Context, userID string, view ActiveProgramView) {
	viewBytes, err := json.Marshal(view)
	if err != nil {
		log.Errorf("failed to marshal active program for [%s]: %s", userID, err)
		return
	}

	cmdSet := c.redisClient.Set(ctx, activeProgramKeyPrefix+userID, viewBytes, activeProgramExpire)
	if err := cmdSet.Err(); err != nil {
		log.Errorf("failed to cache active program in redis for [%s]: %s", userID, err)
	}
}

// Invalidate drops the cached view. Called after every mutation of
// the active program, a stale program screen is worse than a slow one.
func (c *Cache) Invalidate(ctx context.Context, userID string) {
	cmdDel := c.redisClient.Del(ctx, activeProgramKeyPrefix+userID)
	if err := cmdDel.Err(); err != nil {
		log.Errorf("failed to invalidate active program in redis for [%s]: %s", userID, err)
	}
}
