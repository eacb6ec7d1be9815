package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/repository"

	"github.com/lib/pq"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create persists the user with the timestamps the caller stamped; the
// service layer owns CreatedOn and UpdatedOn.
func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, phone_number, password_hash, name, birth_date, role, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	var birthDate *time.Time
	if u.BirthDate != nil {
		t := u.BirthDate.Time()
		birthDate = &t
	}
	err := r.db.QueryRowContext(ctx, query, u.Email, u.PhoneNumber, u.PasswordHash, u.Name, birthDate, u.Role, u.CreatedOn, u.UpdatedOn).Scan(&u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrEmailAlreadyRegistered
		}
		return persistenceErr(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, email, COALESCE(phone_number, ''), password_hash, name, birth_date, role, created_on, updated_on
	          FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, COALESCE(phone_number, ''), password_hash, name, birth_date, role, created_on, updated_on
	          FROM users WHERE lower(email) = lower($1)`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var birthDate sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.Name, &birthDate, &u.Role, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, persistenceErr(err)
	}
	if birthDate.Valid {
		t := birthDate.Time
		u.BirthDate = &domain.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET phone_number=$1, name=$2, birth_date=$3, updated_on=$4 WHERE id=$5`
	var birthDate *time.Time
	if u.BirthDate != nil {
		t := u.BirthDate.Time()
		birthDate = &t
	}
	_, err := r.db.ExecContext(ctx, query, u.PhoneNumber, u.Name, birthDate, u.UpdatedOn, u.ID)
	if err != nil {
		return persistenceErr(err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, page, pageSize int32) ([]domain.User, int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return nil, 0, persistenceErr(err)
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, email, COALESCE(phone_number, ''), password_hash, name, birth_date, role, created_on, updated_on
	          FROM users ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, persistenceErr(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u := domain.User{}
		var birthDate sql.NullTime
		if err := rows.Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.Name, &birthDate, &u.Role, &u.CreatedOn, &u.UpdatedOn); err != nil {
			return nil, 0, persistenceErr(err)
		}
		if birthDate.Valid {
			t := birthDate.Time
			u.BirthDate = &domain.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, persistenceErr(err)
	}
	return users, count, nil
}
