package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=profile_mocks_test.go -package=profile_test

type profilesRepo interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Upsert(ctx context.Context, userProfile Profile) (*Profile, error)
}

type Handler struct {
	repo profilesRepo
}

func NewHandler(repo profilesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userID"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	userProfile, err := handler.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get profile [%s]: %s", userID, err)
		http.Error(w, "error, failed to get profile", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(userProfile)
	if err != nil {
		log.Errorf("failed to marshal profile: %s", err)
		http.Error(w, "failed to marshal profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, profileJson, http.StatusOK)
}

func (handler *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.upsert")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	userID := vars["userID"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	var userProfile Profile
	if err := json.NewDecoder(r.Body).Decode(&userProfile); err != nil {
		log.Tracef("upsert profile, unmarshal json params: %s", err)
		http.Error(w, "upsert profile failed", http.StatusBadRequest)
		return
	}

	// the path decides whose profile this is
	userProfile.UserID = userID

	if userProfile.Goal != "" {
		userProfile.Goal = strings.ToLower(userProfile.Goal)
		if !slices.Contains(Goals, userProfile.Goal) {
			http.Error(w, "error, invalid goal", http.StatusBadRequest)
			return
		}
	}
	if userProfile.ExperienceLevel != "" {
		userProfile.ExperienceLevel = strings.ToLower(userProfile.ExperienceLevel)
		if !slices.Contains(Levels, userProfile.ExperienceLevel) {
			http.Error(w, "error, invalid experience level", http.StatusBadRequest)
			return
		}
	}
	if userProfile.DaysPerWeek < 0 || userProfile.DaysPerWeek > 7 {
		http.Error(w, "error, days per week must be between 0 and 7", http.StatusBadRequest)
		return
	}
	if userProfile.SessionMinutes < 0 {
		http.Error(w, "error, invalid session minutes", http.StatusBadRequest)
		return
	}

	upsertedProfile, err := handler.repo.Upsert(ctx, userProfile)
	if err != nil {
		log.Errorf("failed to upsert profile [%s]: %s", userID, err)
		http.Error(w, "error, failed to upsert profile", http.StatusInternalServerError)
		return
	}

	upsertedProfileJson, err := json.Marshal(upsertedProfile)
	if err != nil {
		log.Errorf("failed to marshal profile: %s", err)
		http.Error(w, "error, failed to upsert profile", http.StatusInternalServerError)
		return
	}

	log.Debugf("profile upserted for %s, complete: %t", userID, upsertedProfile.IsComplete())
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, upsertedProfileJson, http.StatusOK)
}
