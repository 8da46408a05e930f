package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillpath/internal/domain/professional"
	"skillpath/internal/domain/progress"
	"skillpath/internal/domain/roadmap"
	"skillpath/internal/domain/user"
	"skillpath/internal/generation"
	"skillpath/internal/pkg/logger"
)

const stepUpdateResume = "update_resume"

// ProfessionalUpdater turns a completed project, internship or certificate
// into a resume entry.
type ProfessionalUpdater struct {
	profiles professional.Repository
	students user.ProfileRepository
	gen      generation.Client
	logger   *logger.Logger
	now      func() time.Time
}

func NewProfessionalUpdater(profiles professional.Repository, students user.ProfileRepository, gen generation.Client, log *logger.Logger) *ProfessionalUpdater {
	return &ProfessionalUpdater{profiles: profiles, students: students, gen: gen, logger: logger.OrNop(log), now: time.Now}
}

// Apply appends the resume entry for t. Courses and tests are skipped. A
// failed bullet generation aborts the update.
func (u *ProfessionalUpdater) Apply(ctx context.Context, t progress.Tracker) StepResult {
	if !professional.AcceptsItem(t.ItemType) {
		return stepSkipped(stepUpdateResume, fmt.Sprintf("%s items are not added to the resume", t.ItemType))
	}
	if u.gen == nil || !u.gen.Available() {
		return stepSkipped(stepUpdateResume, generation.ErrUnavailable.Error())
	}

	student, err := u.students.GetByUserID(ctx, t.UserID)
	if err != nil && !errors.Is(err, user.ErrProfileNotFound) {
		return u.fail(t, fmt.Errorf("load student profile: %w", err))
	}

	var bullets []string
	if t.ItemType != roadmap.ItemCertificate {
		bullets, err = u.gen.ResumeBullets(ctx, generation.BulletsInput{
			ItemType:    t.ItemType,
			Title:       t.ItemName,
			Description: t.Notes,
			Skills:      student.CurrentSkills,
			TargetRole:  student.Analysis.TargetRole(),
		})
		if err != nil {
			return u.fail(t, fmt.Errorf("resume bullets: %w", err))
		}
	}

	p, err := u.profiles.GetByUserID(ctx, t.UserID)
	switch {
	case errors.Is(err, professional.ErrNotFound):
		p = professional.New(t.UserID)
	case err != nil:
		return u.fail(t, fmt.Errorf("load professional profile: %w", err))
	}

	p.Resume.AppendCompleted(t.ItemType, t.ItemName, bullets, t.CompletionDate)
	p.Resume.MergeSkills(student.CurrentSkills)
	now := u.now().UTC()
	p.LastGenerated = &now

	if _, err := u.profiles.Upsert(ctx, p); err != nil {
		return u.fail(t, fmt.Errorf("save professional profile: %w", err))
	}
	return stepOK(stepUpdateResume)
}

func (u *ProfessionalUpdater) fail(t progress.Tracker, err error) StepResult {
	u.logger.Error("resume update failed", "user_id", t.UserID, "item_id", t.ItemID, "error", err)
	return stepFailed(stepUpdateResume, err)
}
