package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talenttrack-backend/internal/models"
	"talenttrack-backend/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrTrialNotFound  = errors.New("trial not found")
	ErrAlreadyApplied = errors.New("already applied to this trial")
)

// CreateOpportunityInput carries the fields of a new trial posting.
type CreateOpportunityInput struct {
	Title       string
	Sport       string
	Location    string
	Description string
	Date        string
	ScoutID     string
	ScoutName   string
}

// OpportunityService handles trial postings and the application workflow.
// Role gating happens at the request boundary; callers of Create are already
// known to be scouts.
type OpportunityService struct {
	opportunities repository.OpportunityRepository
}

// NewOpportunityService creates a new opportunity service
func NewOpportunityService(opportunities repository.OpportunityRepository) *OpportunityService {
	return &OpportunityService{opportunities: opportunities}
}

// Create persists a new trial posting with an empty applicant list.
func (s *OpportunityService) Create(ctx context.Context, in CreateOpportunityInput) (*models.Opportunity, error) {
	opp := &models.Opportunity{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Sport:       in.Sport,
		Location:    in.Location,
		Description: in.Description,
		Date:        in.Date,
		ScoutID:     in.ScoutID,
		ScoutName:   in.ScoutName,
		Applicants:  []models.Applicant{},
		CreatedAt:   time.Now(),
	}
	if err := s.opportunities.Create(ctx, opp); err != nil {
		return nil, fmt.Errorf("failed to create opportunity: %w", err)
	}
	return opp, nil
}

// ListAll returns every posting, most recent first.
func (s *OpportunityService) ListAll(ctx context.Context) ([]*models.Opportunity, error) {
	opps, err := s.opportunities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	return opps, nil
}

// ListMine returns the scout's own postings with expanded applicant details.
func (s *OpportunityService) ListMine(ctx context.Context, scoutID string) ([]*models.Opportunity, error) {
	opps, err := s.opportunities.ListByScout(ctx, scoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to list own opportunities: %w", err)
	}
	return opps, nil
}

// Apply records the user's application to a posting. Each user can apply to
// a given posting at most once; the storage layer enforces this atomically.
func (s *OpportunityService) Apply(ctx context.Context, opportunityID, userID string) error {
	err := s.opportunities.AddApplicant(ctx, opportunityID, userID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrTrialNotFound
		case errors.Is(err, repository.ErrAlreadyApplied):
			return ErrAlreadyApplied
		}
		return fmt.Errorf("failed to apply: %w", err)
	}
	return nil
}
