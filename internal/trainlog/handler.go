package trainlog

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymcoach/internal/telemetry/metrics"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=trainlog_mocks_test.go -package=trainlog_test

type entriesRepo interface {
	Add(ctx context.Context, entry Entry) (*Entry, error)
	Get(ctx context.Context, id int64) (*Entry, error)
	ListRecent(ctx context.Context, params ListRecentParams) ([]Entry, error)
	DistinctExerciseIDs(ctx context.Context, userID string, since time.Time) ([]string, error)
}

type ListTypesResponse struct {
	Types []ExerciseType `json:"types"`
}

type Handler struct {
	repo            entriesRepo
	aggregator      *Aggregator
	catalog         *Catalog
	metrics         *metrics.Manager
	defaultLookback int
}

func NewHandler(
	repo entriesRepo,
	catalog *Catalog,
	metricsManager *metrics.Manager,
	defaultLookback int,
) *Handler {
	return &Handler{
		repo:            repo,
		aggregator:      NewAggregator(repo),
		catalog:         catalog,
		metrics:         metricsManager,
		defaultLookback: defaultLookback,
	}
}

func (handler *Handler) Aggregator() *Aggregator {
	return handler.aggregator
}

func (handler *Handler) HandleNewEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainlog.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Tracef("new training entry, unmarshal json params: %s", err)
		http.Error(w, "add training entry failed", http.StatusBadRequest)
		return
	}

	if entry.UserID == "" || entry.ExerciseID == "" {
		http.Error(w, "error, user id or exercise id empty", http.StatusBadRequest)
		return
	}
	if entry.Kilos < 0 || entry.Reps <= 0 || entry.Sets <= 0 {
		http.Error(w, "error, invalid kilos, reps or sets", http.StatusBadRequest)
		return
	}
	if entry.Effort != nil && (*entry.Effort < 1 || *entry.Effort > 10) {
		http.Error(w, "error, effort must be between 1 and 10", http.StatusBadRequest)
		return
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	addedEntry, err := handler.repo.Add(ctx, entry)
	if err != nil {
		log.Errorf("failed to add training entry [%s] [%s]: %s", entry.UserID, entry.ExerciseID, err)
		http.Error(w, "error, failed to add training entry", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterTrainingEntries.Inc()

	addedEntryJson, err := json.Marshal(addedEntry)
	if err != nil {
		log.Errorf("failed to marshal added training entry: %s", err)
		http.Error(w, "error, failed to add training entry", http.StatusInternalServerError)
		return
	}

	log.Debugf("new training entry added: %s", addedEntryJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedEntryJson, http.StatusCreated)
}

func (handler *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainlog.summary")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userID"]
	exerciseID := vars["exerciseID"]
	if userID == "" || exerciseID == "" {
		http.Error(w, "error, user id or exercise id empty", http.StatusBadRequest)
		return
	}

	lookback := handler.defaultLookback
	if lookbackParam := r.URL.Query().Get("lookback"); lookbackParam != "" {
		parsedLookback, err := strconv.Atoi(lookbackParam)
		if err != nil || parsedLookback < 1 {
			http.Error(w, "error, invalid lookback", http.StatusBadRequest)
			return
		}
		lookback = parsedLookback
	}

	summary, err := handler.aggregator.Summary(ctx, userID, exerciseID, lookback)
	if err != nil {
		log.Errorf("failed to get summary [%s] [%s]: %s", userID, exerciseID, err)
		http.Error(w, "error, failed to get summary", http.StatusInternalServerError)
		return
	}

	summaryJson, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("failed to marshal summary: %s", err)
		http.Error(w, "failed to marshal summary", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, summaryJson, http.StatusOK)
}

func (handler *Handler) HandleUpsertType(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainlog.upserttype")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var exerciseType ExerciseType
	if err := json.NewDecoder(r.Body).Decode(&exerciseType); err != nil {
		log.Tracef("upsert exercise type, unmarshal json params: %s", err)
		http.Error(w, "upsert exercise type failed", http.StatusBadRequest)
		return
	}

	if !exerciseType.IsValid() {
		http.Error(w, "error, invalid exercise type", http.StatusBadRequest)
		return
	}

	if exerciseType.CreatedAt.IsZero() {
		exerciseType.CreatedAt = time.Now()
	}

	if err := handler.catalog.Upsert(ctx, exerciseType); err != nil {
		log.Errorf("failed to upsert exercise type [%s]: %s", exerciseType.ExerciseID, err)
		http.Error(w, "error, failed to upsert exercise type", http.StatusInternalServerError)
		return
	}

	exerciseTypeJson, err := json.Marshal(exerciseType)
	if err != nil {
		log.Errorf("failed to marshal exercise type: %s", err)
		http.Error(w, "error, failed to upsert exercise type", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exerciseTypeJson, http.StatusCreated)
}

func (handler *Handler) HandleListTypes(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainlog.listtypes")
	defer span.End()

	exerciseTypes, err := handler.catalog.List(ctx, GetTypesParams{
		MuscleGroup: r.URL.Query().Get("muscleGroup"),
		Category:    r.URL.Query().Get("category"),
	})
	if err != nil {
		log.Errorf("failed to list exercise types: %s", err)
		http.Error(w, "error, failed to list exercise types", http.StatusInternalServerError)
		return
	}

	listTypesResponseJson, err := json.Marshal(ListTypesResponse{Types: exerciseTypes})
	if err != nil {
		log.Errorf("failed to marshal exercise types: %s", err)
		http.Error(w, "failed to marshal exercise types", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listTypesResponseJson, http.StatusOK)
}
