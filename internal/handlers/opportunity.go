package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"talenttrack-backend/internal/middleware"
	"talenttrack-backend/internal/models"
	"talenttrack-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// OpportunityHandler handles trial-posting HTTP requests
type OpportunityHandler struct {
	opportunityService *services.OpportunityService
	validate           *validator.Validate
}

// NewOpportunityHandler creates a new opportunity handler
func NewOpportunityHandler(opportunityService *services.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{
		opportunityService: opportunityService,
		validate:           validator.New(),
	}
}

type createOpportunityRequest struct {
	Title       string `json:"title" validate:"required"`
	Sport       string `json:"sport" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
	ScoutName   string `json:"scoutName"`
}

// Create handles POST /api/opportunities. RequireScout has already vetted
// the caller's role.
func (h *OpportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var req createOpportunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	opp, err := h.opportunityService.Create(r.Context(), services.CreateOpportunityInput{
		Title:       req.Title,
		Sport:       req.Sport,
		Location:    req.Location,
		Description: req.Description,
		Date:        req.Date,
		ScoutID:     identity.UserID,
		ScoutName:   req.ScoutName,
	})
	if err != nil {
		log.Error().Err(err).Str("scout_id", identity.UserID).Msg("Failed to create opportunity")
		respondError(w, "Failed to post opportunity", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("opportunity_id", opp.ID).
		Str("scout_id", identity.UserID).
		Str("title", opp.Title).
		Msg("Opportunity posted")

	respondMsg(w, "Opportunity Posted Successfully!", http.StatusOK)
}

// ListAll handles GET /api/all-opportunities
func (h *OpportunityHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	opps, err := h.opportunityService.ListAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list opportunities")
		respondError(w, "Failed to load opportunities", http.StatusInternalServerError)
		return
	}
	if opps == nil {
		opps = []*models.Opportunity{}
	}
	respondJSON(w, http.StatusOK, opps)
}

// MyTrials handles GET /api/my-trials
func (h *OpportunityHandler) MyTrials(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	opps, err := h.opportunityService.ListMine(r.Context(), identity.UserID)
	if err != nil {
		log.Error().Err(err).Str("scout_id", identity.UserID).Msg("Failed to list own trials")
		respondError(w, "Data fetch failed", http.StatusInternalServerError)
		return
	}
	if opps == nil {
		opps = []*models.Opportunity{}
	}
	respondJSON(w, http.StatusOK, opps)
}

// Apply handles POST /api/opportunities/{id}/apply
func (h *OpportunityHandler) Apply(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	opportunityID := chi.URLParam(r, "id")

	err := h.opportunityService.Apply(r.Context(), opportunityID, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTrialNotFound):
			respondMsg(w, "Trial not found", http.StatusNotFound)
		case errors.Is(err, services.ErrAlreadyApplied):
			respondMsg(w, "Already applied to this trial", http.StatusBadRequest)
		default:
			log.Error().Err(err).
				Str("opportunity_id", opportunityID).
				Str("user_id", identity.UserID).
				Msg("Failed to apply")
			respondError(w, "Failed to apply", http.StatusInternalServerError)
		}
		return
	}

	log.Info().
		Str("opportunity_id", opportunityID).
		Str("user_id", identity.UserID).
		Msg("Application recorded")

	respondMsg(w, "Applied Successfully!", http.StatusOK)
}
