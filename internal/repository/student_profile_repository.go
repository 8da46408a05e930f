package repository

import (
	"context"

	"skillpath/internal/database"
	"skillpath/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresStudentProfileRepository struct {
	db database.DB
}

func NewPostgresStudentProfileRepository(db database.DB) *PostgresStudentProfileRepository {
	return &PostgresStudentProfileRepository{db: db}
}

const selectStudentProfile = `SELECT id, user_id, major, university, gpa, experience_level, career_aspirations,
	current_skills, target_industries, preferred_learning, preferred_content_types,
	time_commitment, relocation_goal, extracurricular_interests, planning_horizon_years,
	analysis, updated_at
 FROM student_profiles`

func (r *PostgresStudentProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx, selectStudentProfile+` WHERE user_id = $1`, userID)

	var p user.Profile
	var skills, industries, contentTypes, interests, analysis []byte
	err := row.Scan(
		&p.ID, &p.UserID, &p.Major, &p.University, &p.GPA, &p.ExperienceLevel, &p.CareerAspirations,
		&skills, &industries, &p.PreferredLearning, &contentTypes,
		&p.TimeCommitment, &p.RelocationGoal, &interests, &p.PlanningHorizonYears,
		&analysis, &p.UpdatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return user.Profile{}, user.ErrProfileNotFound
		}
		return user.Profile{}, err
	}

	decoders := []struct {
		field string
		raw   []byte
		dst   any
	}{
		{"current_skills", skills, &p.CurrentSkills},
		{"target_industries", industries, &p.TargetIndustries},
		{"preferred_content_types", contentTypes, &p.PreferredContentTypes},
		{"extracurricular_interests", interests, &p.ExtracurricularInterests},
		{"analysis", analysis, &p.Analysis},
	}
	for _, d := range decoders {
		if err := decodeJSON(d.field, d.raw, d.dst); err != nil {
			return user.Profile{}, err
		}
	}
	return p, nil
}

// Upsert writes every profile field, keyed by user id.
func (r *PostgresStudentProfileRepository) Upsert(ctx context.Context, p user.Profile) (user.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	skills, err := encodeJSON("current_skills", nonNilStrings(p.CurrentSkills))
	if err != nil {
		return user.Profile{}, err
	}
	industries, err := encodeJSON("target_industries", nonNilStrings(p.TargetIndustries))
	if err != nil {
		return user.Profile{}, err
	}
	contentTypes, err := encodeJSON("preferred_content_types", nonNilStrings(p.PreferredContentTypes))
	if err != nil {
		return user.Profile{}, err
	}
	interests, err := encodeJSON("extracurricular_interests", nonNilStrings(p.ExtracurricularInterests))
	if err != nil {
		return user.Profile{}, err
	}
	analysis, err := encodeJSON("analysis", p.Analysis)
	if err != nil {
		return user.Profile{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO student_profiles (
			id, user_id, major, university, gpa, experience_level, career_aspirations,
			current_skills, target_industries, preferred_learning, preferred_content_types,
			time_commitment, relocation_goal, extracurricular_interests, planning_horizon_years,
			analysis, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16, now())
		ON CONFLICT (user_id) DO UPDATE SET
			major = EXCLUDED.major,
			university = EXCLUDED.university,
			gpa = EXCLUDED.gpa,
			experience_level = EXCLUDED.experience_level,
			career_aspirations = EXCLUDED.career_aspirations,
			current_skills = EXCLUDED.current_skills,
			target_industries = EXCLUDED.target_industries,
			preferred_learning = EXCLUDED.preferred_learning,
			preferred_content_types = EXCLUDED.preferred_content_types,
			time_commitment = EXCLUDED.time_commitment,
			relocation_goal = EXCLUDED.relocation_goal,
			extracurricular_interests = EXCLUDED.extracurricular_interests,
			planning_horizon_years = EXCLUDED.planning_horizon_years,
			analysis = EXCLUDED.analysis,
			updated_at = now()
		RETURNING id, updated_at`,
		p.ID, p.UserID, p.Major, p.University, p.GPA, p.ExperienceLevel, p.CareerAspirations,
		skills, industries, p.PreferredLearning, contentTypes,
		p.TimeCommitment, p.RelocationGoal, interests, p.PlanningHorizonYears,
		analysis,
	)
	if err := row.Scan(&p.ID, &p.UpdatedAt); err != nil {
		return user.Profile{}, err
	}
	return p, nil
}
