package repository

import (
	"context"
	"strings"

	"skillpath/internal/database"
	"skillpath/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = user.NormalizeEmail(u.Email)
	u.Name = strings.TrimSpace(u.Name)

	row := r.db.QueryRow(ctx,
		`INSERT INTO users (id, email, name, onboarding_complete)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		u.ID, u.Email, u.Name, u.OnboardingComplete,
	)
	if err := row.Scan(&u.CreatedAt); err != nil {
		if database.IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, name, created_at, onboarding_complete FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, name, created_at, onboarding_complete FROM users WHERE lower(email) = $1`,
		user.NormalizeEmail(email),
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) MarkOnboarded(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `UPDATE users SET onboarding_complete = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.OnboardingComplete); err != nil {
		if database.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
