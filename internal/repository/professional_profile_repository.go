package repository

import (
	"context"

	"skillpath/internal/database"
	"skillpath/internal/domain/professional"

	"github.com/google/uuid"
)

type PostgresProfessionalProfileRepository struct {
	db database.DB
}

func NewPostgresProfessionalProfileRepository(db database.DB) *PostgresProfessionalProfileRepository {
	return &PostgresProfessionalProfileRepository{db: db}
}

func (r *PostgresProfessionalProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (professional.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, resume, linkedin, last_generated FROM professional_profiles WHERE user_id = $1`,
		userID,
	)

	var p professional.Profile
	var resume, linkedin []byte
	if err := row.Scan(&p.ID, &p.UserID, &resume, &linkedin, &p.LastGenerated); err != nil {
		if database.IsNoRows(err) {
			return professional.Profile{}, professional.ErrNotFound
		}
		return professional.Profile{}, err
	}
	if err := decodeJSON("resume", resume, &p.Resume); err != nil {
		return professional.Profile{}, err
	}
	if err := decodeJSON("linkedin", linkedin, &p.LinkedIn); err != nil {
		return professional.Profile{}, err
	}
	p.Resume.EnsureLists()
	p.LinkedIn.EnsureLists()
	return p, nil
}

func (r *PostgresProfessionalProfileRepository) Upsert(ctx context.Context, p professional.Profile) (professional.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Resume.EnsureLists()
	p.LinkedIn.EnsureLists()

	resume, err := encodeJSON("resume", p.Resume)
	if err != nil {
		return professional.Profile{}, err
	}
	linkedin, err := encodeJSON("linkedin", p.LinkedIn)
	if err != nil {
		return professional.Profile{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO professional_profiles (id, user_id, resume, linkedin, last_generated)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE SET
			resume = EXCLUDED.resume,
			linkedin = EXCLUDED.linkedin,
			last_generated = EXCLUDED.last_generated
		 RETURNING id`,
		p.ID, p.UserID, resume, linkedin, p.LastGenerated,
	)
	if err := row.Scan(&p.ID); err != nil {
		return professional.Profile{}, err
	}
	return p, nil
}
