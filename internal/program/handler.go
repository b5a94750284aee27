package program

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=program_test

type programService interface {
	ActiveProgram(ctx context.Context, userID string) (*ActiveProgramView, error)
	CreateInitial(ctx context.Context, userID string) (*ActiveProgramView, error)
	CheckEligibility(ctx context.Context, userID string) (*RegenerationCheck, error)
	Recommendations(ctx context.Context, userID string) (*Recommendations, error)
	Regenerate(ctx context.Context, userID string) (*RegenerationResult, error)
	Revert(ctx context.Context, userID string) (*RevertResult, error)
	CompleteWorkout(ctx context.Context, userID string) (*Program, error)
	History(ctx context.Context, userID string) ([]Program, error)
}

type HistoryResponse struct {
	Programs []Program `json:"programs"`
	Total    int       `json:"total"`
}

type Handler struct {
	service programService
}

func NewHandler(service programService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleGetActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.active")
	defer span.End()

	userID := mux.Vars(r)["userID"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	view, err := handler.service.ActiveProgram(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveProgram) {
			http.Error(w, "no active program", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get active program [%s]: %s", userID, err)
		http.Error(w, "error, failed to get active program", http.StatusInternalServerError)
		return
	}

	viewJson, err := json.Marshal(view)
	if err != nil {
		log.Errorf("failed to marshal active program: %s", err)
		http.Error(w, "error, failed to get active program", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, viewJson, http.StatusOK)
}

func (handler *Handler) HandleCreateInitial(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.create")
	defer span.End()

	userID := mux.Vars(r)["userID"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	view, err := handler.service.CreateInitial(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrProfileIncomplete):
			http.Error(w, "error, complete the profile first", http.StatusBadRequest)
		case errors.Is(err, ErrConflict):
			http.Error(w, "error, a program already exists", http.StatusConflict)
		default:
			log.Errorf("failed to create initial program [%s]: %s", userID, err)
			http.Error(w, "error, failed to create program", http.StatusInternalServerError)
		}
		return
	}

	viewJson, err := json.Marshal(view)
	if err != nil {
		log.Errorf("failed to marshal created program: %s", err)
		http.Error(w, "error, failed to create program", http.StatusInternalServerError)
		return
	}

	log.Debugf("initial program created for [%s]", userID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, viewJson, http.StatusCreated)
}

func (handler *Handler) HandleCheckRegeneration(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.regeneration.check")
	defer span.End()

	userID := mux.Vars(r)["userID"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	check, err := handler.service.CheckEligibility(ctx, userID)
	if err != nil {
		log.Errorf("failed to check regeneration eligibility [%s]: %s", userID, err)
		http.Error(w, "error, failed to check eligibility", http.StatusInternalServerError)
		return
	}

	checkJson, err := json.Marshal(check)
	if err != nil {
		log.Errorf("failed to marshal eligibility check: %s", err)
		http.Error(w, "error, failed to check eligibility", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, checkJson, http.StatusOK)
}

func (handler *Handler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.recommendations")
	defer span.End()

	userID := mux.Vars(r)["userID"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	recommendations, err := handler.service.Recommendations(ctx, userID)
	if err != nil {
		log.Errorf("failed to get recommendations [%s]: %s", userID, err)
		http.Error(w, "error, failed to get recommendations", http.StatusInternalServerError)
		return
	}

	recommendationsJson, err := json.Marshal(recommendations)
	if err != nil {
		log.Errorf("failed to marshal recommendations: %s", err)
		http.Error(w, "error, failed to get recommendations", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recommendationsJson, http.StatusOK)
}

func (handler *Handler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.regenerate")
	defer span.End()

	userID := mux.Vars(r)["userID"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	result, err := handler.service.Regenerate(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrProfileIncomplete):
			http.Error(w, "error, complete the profile first", http.StatusBadRequest)
		case errors.Is(err, ErrConflict):
			http.Error(w, "error, program changed in the meantime, try again", http.StatusConflict)
		default:
			log.Errorf("failed to regenerate program [%s]: %s", userID, err)
			http.Error(w, "error, failed to regenerate program", http.StatusInternalServerError)
		}
		return
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal regeneration result: %s", err)
		http.Error(w, "error, failed to regenerate program", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) HandleRevert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.revert")
	defer span.End()

	userID := mux.Vars(r)["userID"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	result, err := handler.service.Revert(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			http.Error(w, "error, program changed in the meantime, try again", http.StatusConflict)
			return
		}
		log.Errorf("failed to revert program [%s]: %s", userID, err)
		http.Error(w, "error, failed to revert program", http.StatusInternalServerError)
		return
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal revert result: %s", err)
		http.Error(w, "error, failed to revert program", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) HandleCompleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.workoutcomplete")
	defer span.End()

	userID := mux.Vars(r)["userID"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	updatedProgram, err := handler.service.CompleteWorkout(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveProgram) {
			http.Error(w, "no active program", http.StatusNotFound)
			return
		}
		log.Errorf("failed to complete workout [%s]: %s", userID, err)
		http.Error(w, "error, failed to complete workout", http.StatusInternalServerError)
		return
	}

	updatedProgramJson, err := json.Marshal(updatedProgram)
	if err != nil {
		log.Errorf("failed to marshal updated program: %s", err)
		http.Error(w, "error, failed to complete workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, updatedProgramJson, http.StatusOK)
}

func (handler *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.history")
	defer span.End()

	userID := mux.Vars(r)["userID"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	programs, err := handler.service.History(ctx, userID)
	if err != nil {
		log.Errorf("failed to get program history [%s]: %s", userID, err)
		http.Error(w, "error, failed to get program history", http.StatusInternalServerError)
		return
	}

	historyJson, err := json.Marshal(HistoryResponse{
		Programs: programs,
		Total:    len(programs),
	})
	if err != nil {
		log.Errorf("failed to marshal program history: %s", err)
		http.Error(w, "error, failed to get program history", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, historyJson, http.StatusOK)
}
