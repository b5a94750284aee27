package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/2beens/gymcoach/internal/progression"
	"github.com/2beens/gymcoach/internal/trainlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) deleteAllTrainingEntries(ctx context.Context) {
	_, err := s.dbPool.Exec(ctx, "DELETE FROM training_entry")
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) newTrainingEntryRequest(
	ctx context.Context,
	entry trainlog.Entry,
) trainlog.Entry {
	entryJson, err := json.Marshal(entry)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/trainlog", serverEndpoint),
		bytes.NewReader(entryJson),
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Authorization", testIOSAppSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var addedEntry trainlog.Entry
	require.NoError(s.T(), json.Unmarshal(respBytes, &addedEntry))

	return addedEntry
}

func (s *IntegrationTestSuite) getSummaryRequest(
	ctx context.Context,
	userID, exerciseID string,
) trainlog.Summary {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf(
			"%s/trainlog/user/%s/exercise/%s/summary",
			serverEndpoint, userID, exerciseID,
		),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Authorization", testIOSAppSecret)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var summary trainlog.Summary
	require.NoError(s.T(), json.Unmarshal(respBytes, &summary))

	return summary
}

func (s *IntegrationTestSuite) upsertExerciseTypeRequest(
	ctx context.Context,
	exerciseType trainlog.ExerciseType,
) {
	exerciseTypeJson, err := json.Marshal(exerciseType)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/trainlog/types", serverEndpoint),
		bytes.NewReader(exerciseTypeJson),
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Authorization", testIOSAppSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func (s *IntegrationTestSuite) listExerciseTypesRequest(
	ctx context.Context,
	muscleGroup, category string,
) trainlog.ListTypesResponse {
	urlVals := url.Values{}
	if muscleGroup != "" {
		urlVals.Add("muscleGroup", muscleGroup)
	}
	if category != "" {
		urlVals.Add("category", category)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/trainlog/types?%s", serverEndpoint, urlVals.Encode()),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Authorization", testIOSAppSecret)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var listResponse trainlog.ListTypesResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &listResponse))

	return listResponse
}

// getSuggestionRequest returns the status code and, for 200 responses,
// the suggestion itself.
func (s *IntegrationTestSuite) getSuggestionRequest(
	ctx context.Context,
	userID, exerciseID string,
	targetSets, targetReps int,
) (int, *progression.Suggestion) {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf(
			"%s/progression/user/%s/exercise/%s/suggestion?targetSets=%d&targetReps=%d",
			serverEndpoint, userID, exerciseID, targetSets, targetReps,
		),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Authorization", testIOSAppSecret)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var suggestion progression.Suggestion
	require.NoError(s.T(), json.Unmarshal(respBytes, &suggestion))

	return resp.StatusCode, &suggestion
}

func (s *IntegrationTestSuite) TestTrainlog() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Now().In(time.Local)
	userID := "user-trainlog"

	s.T().Run("authorization missing", func(t *testing.T) {
		req, err := http.NewRequestWithContext(
			ctx,
			"POST", fmt.Sprintf("%s/trainlog", serverEndpoint),
			bytes.NewReader([]byte(`{}`)),
		)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	s.T().Run("authorization present, but invalid", func(t *testing.T) {
		req, err := http.NewRequestWithContext(
			ctx,
			"GET", fmt.Sprintf(
				"%s/trainlog/user/%s/exercise/bench_press/summary",
				serverEndpoint, userID,
			),
			nil,
		)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Authorization", "invalid-token")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	s.T().Run("invalid entries rejected", func(t *testing.T) {
		badEffort := 11
		for _, entry := range []trainlog.Entry{
			{ExerciseID: "bench_press", Kilos: 60, Reps: 8, Sets: 3},              // no user
			{UserID: userID, ExerciseID: "bench_press", Kilos: 60, Sets: 3},       // no reps
			{UserID: userID, ExerciseID: "bench_press", Kilos: -1, Reps: 8, Sets: 3},
			{UserID: userID, ExerciseID: "bench_press", Kilos: 60, Reps: 8, Sets: 3, Effort: &badEffort},
		} {
			entryJson, err := json.Marshal(entry)
			require.NoError(t, err)
			req, err := http.NewRequestWithContext(
				ctx,
				"POST", fmt.Sprintf("%s/trainlog", serverEndpoint),
				bytes.NewReader(entryJson),
			)
			require.NoError(t, err)
			req.Header.Set("User-Agent", "test-agent")
			req.Header.Set("Authorization", testIOSAppSecret)
			req.Header.Set("Content-Type", "application/json")

			resp, err := s.httpClient.Do(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			resp.Body.Close()
		}
	})

	s.T().Run("add entries and summarize", func(t *testing.T) {
		s.deleteAllTrainingEntries(ctx)

		effortSeven, effortEight := 7, 8
		added := s.newTrainingEntryRequest(ctx, trainlog.Entry{
			UserID:      userID,
			ExerciseID:  "bench_press",
			MuscleGroup: "chest",
			Kilos:       60,
			Reps:        8,
			Sets:        3,
			Effort:      &effortSeven,
			CreatedAt:   now.Add(-10 * time.Minute),
			Metadata:    map[string]string{"env": "test"},
		})
		assert.Greater(t, added.ID, int64(0))

		s.newTrainingEntryRequest(ctx, trainlog.Entry{
			UserID:      userID,
			ExerciseID:  "bench_press",
			MuscleGroup: "chest",
			Kilos:       62.5,
			Reps:        8,
			Sets:        3,
			Effort:      &effortEight,
			CreatedAt:   now.Add(-5 * time.Minute),
			Metadata:    map[string]string{"env": "test"},
		})

		summary := s.getSummaryRequest(ctx, userID, "bench_press")
		assert.Equal(t, 2, summary.EntriesCount)
		assert.Equal(t, 62.5, summary.LastKilos)
		assert.Equal(t, 8, summary.LastReps)
		assert.Equal(t, 3, summary.LastSets)
		require.NotNil(t, summary.LastEffort)
		assert.Equal(t, 8, *summary.LastEffort)
		// 62.5*8*3 beats 60*8*3
		assert.Equal(t, trainlog.TrendImproving, summary.Trend)

		emptySummary := s.getSummaryRequest(ctx, userID, "never_logged")
		assert.Equal(t, 0, emptySummary.EntriesCount)
		assert.Equal(t, trainlog.TrendNone, emptySummary.Trend)
	})

	s.T().Run("exercise types", func(t *testing.T) {
		s.upsertExerciseTypeRequest(ctx, trainlog.ExerciseType{
			ExerciseID:  "bench_press",
			MuscleGroup: "chest",
			Name:        "Bench Press",
			Category:    trainlog.CategoryCompound,
		})
		s.upsertExerciseTypeRequest(ctx, trainlog.ExerciseType{
			ExerciseID:  "lateral_raise",
			MuscleGroup: "shoulders",
			Name:        "Lateral Raise",
			Category:    trainlog.CategoryIsolation,
		})

		// bogus category is turned away
		badTypeJson, err := json.Marshal(trainlog.ExerciseType{
			ExerciseID:  "mystery_machine",
			MuscleGroup: "full_body",
			Name:        "Mystery Machine",
			Category:    "cardio-ish",
		})
		require.NoError(t, err)
		req, err := http.NewRequestWithContext(
			ctx,
			"POST", fmt.Sprintf("%s/trainlog/types", serverEndpoint),
			bytes.NewReader(badTypeJson),
		)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Authorization", testIOSAppSecret)
		req.Header.Set("Content-Type", "application/json")
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()

		chestTypes := s.listExerciseTypesRequest(ctx, "chest", "")
		require.Len(t, chestTypes.Types, 1)
		assert.Equal(t, "bench_press", chestTypes.Types[0].ExerciseID)

		allTypes := s.listExerciseTypesRequest(ctx, "", "")
		assert.GreaterOrEqual(t, len(allTypes.Types), 2)
	})

	s.T().Run("progression suggestions", func(t *testing.T) {
		// nothing logged for this one
		status, _ := s.getSuggestionRequest(ctx, userID, "never_logged", 3, 8)
		assert.Equal(t, http.StatusNoContent, status)

		// bench: target met at effort 8, compound increment applies
		status, suggestion := s.getSuggestionRequest(ctx, userID, "bench_press", 3, 8)
		require.Equal(t, http.StatusOK, status)
		require.NotNil(t, suggestion)
		assert.Equal(t, progression.ActionIncreaseWeight, suggestion.Action)
		assert.Equal(t, 62.5, suggestion.CurrentKilos)
		assert.Equal(t, float64(65), suggestion.NextKilos)
		assert.Equal(t, progression.ReasonMetTarget, suggestion.ReasonCode)

		// three missed sessions in a row on an isolation movement
		for i, kilos := range []float64{12, 12, 12} {
			effortNine := 9
			s.newTrainingEntryRequest(ctx, trainlog.Entry{
				UserID:      userID,
				ExerciseID:  "lateral_raise",
				MuscleGroup: "shoulders",
				Kilos:       kilos,
				Reps:        6, // target is 12
				Sets:        3,
				Effort:      &effortNine,
				CreatedAt:   now.Add(time.Duration(i-3) * time.Minute),
			})
		}

		status, suggestion = s.getSuggestionRequest(ctx, userID, "lateral_raise", 3, 12)
		require.Equal(t, http.StatusOK, status)
		require.NotNil(t, suggestion)
		assert.Equal(t, progression.ActionDeload, suggestion.Action)
		assert.Equal(t, float64(12), suggestion.CurrentKilos)
		// 12 * 0.9 rounded to the nearest half kilo
		assert.Equal(t, float64(11), suggestion.NextKilos)
		assert.Equal(t, progression.ReasonPlateau, suggestion.ReasonCode)

		// bad targets
		status, _ = s.getSuggestionRequest(ctx, userID, "bench_press", 0, 8)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
