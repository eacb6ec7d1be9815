package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/repository"
)

type claimRepository struct {
	db *sql.DB
}

func NewClaimRepository(db *sql.DB) repository.ClaimRepository {
	return &claimRepository{db: db}
}

const claimColumns = `id, claim_number, user_id, policy_id, incident_type, COALESCE(location, ''), COALESCE(description, ''), needs_assistance, status, created_on, updated_on, reviewer_id, compensation_cents, resolved_on, COALESCE(comments, '')`

// Create persists the claim with the timestamps the caller stamped; the
// service layer owns CreatedOn and UpdatedOn.
func (r *claimRepository) Create(ctx context.Context, c *domain.Claim) error {
	query := `INSERT INTO claims (claim_number, user_id, policy_id, incident_type, location, description, needs_assistance, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		c.ClaimNumber, c.UserID, c.PolicyID, c.IncidentType, c.Location, c.Description, c.NeedsAssistance, c.Status, c.CreatedOn, c.UpdatedOn,
	).Scan(&c.ID)
	if err != nil {
		return persistenceErr(err)
	}
	return nil
}

func (r *claimRepository) GetByID(ctx context.Context, id int64) (*domain.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE id = $1`
	c := &domain.Claim{}
	err := scanClaim(r.db.QueryRowContext(ctx, query, id), c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, persistenceErr(err)
	}
	return c, nil
}

func (r *claimRepository) Update(ctx context.Context, c *domain.Claim) error {
	query := `UPDATE claims SET status=$1, reviewer_id=$2, compensation_cents=$3, resolved_on=$4, comments=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, c.Status, c.ReviewerID, c.CompensationCents, c.ResolvedOn, c.Comments, c.UpdatedOn, c.ID)
	if err != nil {
		return persistenceErr(err)
	}
	return nil
}

func (r *claimRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE user_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	defer rows.Close()
	return scanClaims(rows)
}

func (r *claimRepository) List(ctx context.Context, status domain.ClaimStatus, page, pageSize int32) ([]domain.Claim, int64, error) {
	countQuery := `SELECT count(*) FROM claims WHERE ($1 = '' OR status = $1)`
	var count int64
	if err := r.db.QueryRowContext(ctx, countQuery, string(status)).Scan(&count); err != nil {
		return nil, 0, persistenceErr(err)
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + claimColumns + ` FROM claims WHERE ($1 = '' OR status = $1) ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, string(status), pageSize, offset)
	if err != nil {
		return nil, 0, persistenceErr(err)
	}
	defer rows.Close()

	claims, err := scanClaims(rows)
	return claims, count, err
}

func (r *claimRepository) ListPendingSince(ctx context.Context, olderThan time.Time) ([]domain.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE status = $1 AND created_on < $2 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, domain.ClaimStatusPending, olderThan)
	if err != nil {
		return nil, persistenceErr(err)
	}
	defer rows.Close()
	return scanClaims(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClaim(row rowScanner, c *domain.Claim) error {
	var reviewer sql.NullString
	var compensation sql.NullInt64
	var resolvedOn sql.NullTime
	err := row.Scan(&c.ID, &c.ClaimNumber, &c.UserID, &c.PolicyID, &c.IncidentType, &c.Location, &c.Description,
		&c.NeedsAssistance, &c.Status, &c.CreatedOn, &c.UpdatedOn, &reviewer, &compensation, &resolvedOn, &c.Comments)
	if err != nil {
		return err
	}
	if reviewer.Valid {
		c.ReviewerID = &reviewer.String
	}
	if compensation.Valid {
		c.CompensationCents = &compensation.Int64
	}
	if resolvedOn.Valid {
		c.ResolvedOn = &resolvedOn.Time
	}
	return nil
}

func scanClaims(rows *sql.Rows) ([]domain.Claim, error) {
	var claims []domain.Claim
	for rows.Next() {
		var c domain.Claim
		if err := scanClaim(rows, &c); err != nil {
			return nil, persistenceErr(err)
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr(err)
	}
	return claims, nil
}
