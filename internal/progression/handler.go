package progression

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymcoach/internal/telemetry/metrics"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progression_test

type suggestionAdvisor interface {
	Suggest(ctx context.Context, userID, exerciseID string, targets Targets) (*Suggestion, error)
}

type Handler struct {
	advisor suggestionAdvisor
	metrics *metrics.Manager
}

func NewHandler(advisor suggestionAdvisor, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		advisor: advisor,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleGetSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.suggestion")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userID"]
	exerciseID := vars["exerciseID"]
	if userID == "" || exerciseID == "" {
		http.Error(w, "error, user id or exercise id empty", http.StatusBadRequest)
		return
	}

	targetSets, err := strconv.Atoi(r.URL.Query().Get("targetSets"))
	if err != nil || targetSets < 1 {
		http.Error(w, "error, invalid target sets", http.StatusBadRequest)
		return
	}
	targetReps, err := strconv.Atoi(r.URL.Query().Get("targetReps"))
	if err != nil || targetReps < 1 {
		http.Error(w, "error, invalid target reps", http.StatusBadRequest)
		return
	}

	suggestion, err := handler.advisor.Suggest(ctx, userID, exerciseID, Targets{
		Sets: targetSets,
		Reps: targetReps,
	})
	if err != nil {
		log.Errorf("failed to get suggestion [%s] [%s]: %s", userID, exerciseID, err)
		http.Error(w, "error, failed to get suggestion", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterProgressionSuggestions.Inc()

	if suggestion == nil {
		// nothing logged for this exercise yet
		w.WriteHeader(http.StatusNoContent)
		return
	}

	suggestionJson, err := json.Marshal(suggestion)
	if err != nil {
		log.Errorf("failed to marshal suggestion: %s", err)
		http.Error(w, "failed to marshal suggestion", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, suggestionJson, http.StatusOK)
}
