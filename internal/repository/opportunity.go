package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talenttrack-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OpportunityRepository handles database operations for trial postings and
// their applicant lists.
type OpportunityRepository interface {
	Create(ctx context.Context, opp *models.Opportunity) error
	List(ctx context.Context) ([]*models.Opportunity, error)
	ListByScout(ctx context.Context, scoutID string) ([]*models.Opportunity, error)
	AddApplicant(ctx context.Context, opportunityID, userID string, appliedAt time.Time) error
}

type postgresOpportunityRepository struct {
	db *pgxpool.Pool
}

// NewOpportunityRepository creates a new opportunity repository
func NewOpportunityRepository(db *pgxpool.Pool) OpportunityRepository {
	return &postgresOpportunityRepository{db: db}
}

// Create persists a new trial posting with an empty applicant list.
func (r *postgresOpportunityRepository) Create(ctx context.Context, opp *models.Opportunity) error {
	query := `
		INSERT INTO opportunities (id, title, sport, location, description, date, scout_id, scout_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		opp.ID, opp.Title, opp.Sport, opp.Location, opp.Description,
		opp.Date, opp.ScoutID, opp.ScoutName, opp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create opportunity: %w", err)
	}
	return nil
}

// List returns all postings, most recent first, each with its applicant list.
func (r *postgresOpportunityRepository) List(ctx context.Context) ([]*models.Opportunity, error) {
	query := `
		SELECT id, title, sport, location, description, date, scout_id, scout_name, created_at
		FROM opportunities
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	var opps []*models.Opportunity
	byID := make(map[string]*models.Opportunity)
	for rows.Next() {
		var opp models.Opportunity
		err := rows.Scan(
			&opp.ID, &opp.Title, &opp.Sport, &opp.Location, &opp.Description,
			&opp.Date, &opp.ScoutID, &opp.ScoutName, &opp.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		opp.Applicants = []models.Applicant{}
		opps = append(opps, &opp)
		byID[opp.ID] = &opp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opportunities: %w", err)
	}

	if err := r.attachApplicants(ctx, byID, false); err != nil {
		return nil, err
	}
	return opps, nil
}

// ListByScout returns the scout's own postings with each applicant expanded
// to include name, email, sport and phone from the user record.
func (r *postgresOpportunityRepository) ListByScout(ctx context.Context, scoutID string) ([]*models.Opportunity, error) {
	query := `
		SELECT id, title, sport, location, description, date, scout_id, scout_name, created_at
		FROM opportunities
		WHERE scout_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, scoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities by scout: %w", err)
	}
	defer rows.Close()

	var opps []*models.Opportunity
	byID := make(map[string]*models.Opportunity)
	for rows.Next() {
		var opp models.Opportunity
		err := rows.Scan(
			&opp.ID, &opp.Title, &opp.Sport, &opp.Location, &opp.Description,
			&opp.Date, &opp.ScoutID, &opp.ScoutName, &opp.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		opp.Applicants = []models.Applicant{}
		opps = append(opps, &opp)
		byID[opp.ID] = &opp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opportunities: %w", err)
	}

	if err := r.attachApplicants(ctx, byID, true); err != nil {
		return nil, err
	}
	return opps, nil
}

// AddApplicant appends the user to the posting's applicant list. The insert
// is conditional on the (opportunity_id, user_id) uniqueness constraint, so
// two racing applications by the same user cannot both land: the loser sees
// ErrAlreadyApplied.
func (r *postgresOpportunityRepository) AddApplicant(ctx context.Context, opportunityID, userID string, appliedAt time.Time) error {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM opportunities WHERE id = $1)`, opportunityID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check opportunity existence: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	query := `
		INSERT INTO applicants (opportunity_id, user_id, applied_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (opportunity_id, user_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, opportunityID, userID, appliedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyApplied
		}
		return fmt.Errorf("failed to add applicant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyApplied
	}
	return nil
}

// attachApplicants fills the Applicants slice of every opportunity in byID.
// With expand set, each entry also carries the applicant's profile fields.
func (r *postgresOpportunityRepository) attachApplicants(ctx context.Context, byID map[string]*models.Opportunity, expand bool) error {
	if len(byID) == 0 {
		return nil
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	query := `
		SELECT a.opportunity_id, a.user_id, a.applied_at
		FROM applicants a
		WHERE a.opportunity_id = ANY($1)
		ORDER BY a.applied_at ASC
	`
	if expand {
		query = `
			SELECT a.opportunity_id, a.user_id, a.applied_at, u.name, u.email, u.sport, u.phone
			FROM applicants a
			JOIN users u ON u.id = a.user_id
			WHERE a.opportunity_id = ANY($1)
			ORDER BY a.applied_at ASC
		`
	}

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load applicants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var oppID string
		var app models.Applicant
		if expand {
			err = rows.Scan(&oppID, &app.UserID, &app.AppliedAt, &app.Name, &app.Email, &app.Sport, &app.Phone)
		} else {
			err = rows.Scan(&oppID, &app.UserID, &app.AppliedAt)
		}
		if err != nil {
			return fmt.Errorf("failed to scan applicant: %w", err)
		}
		if opp, ok := byID[oppID]; ok {
			opp.Applicants = append(opp.Applicants, app)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating applicants: %w", err)
	}
	return nil
}
