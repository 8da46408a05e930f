package professional

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillpath/internal/domain/roadmap"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("professional profile not found")

// DateLayout formats completion dates on resume entries.
const DateLayout = "January 2006"

// RecentDate is used when an entry has no completion date.
const RecentDate = "Recent"

type ResumeProject struct {
	Name    string   `json:"name"`
	Bullets []string `json:"bullets"`
	Date    string   `json:"date"`
}

type ResumeExperience struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
	Date    string   `json:"date"`
}

type ResumeCertification struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

type Resume struct {
	Projects       []ResumeProject       `json:"projects"`
	Experience     []ResumeExperience    `json:"experience"`
	Certifications []ResumeCertification `json:"certifications"`
	Skills         []string              `json:"skills"`
}

// EnsureLists replaces nil lists with empty ones.
func (r *Resume) EnsureLists() {
	if r.Projects == nil {
		r.Projects = []ResumeProject{}
	}
	if r.Experience == nil {
		r.Experience = []ResumeExperience{}
	}
	if r.Certifications == nil {
		r.Certifications = []ResumeCertification{}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
}

// AcceptsItem reports whether completing an item of type t adds a resume entry.
func AcceptsItem(t roadmap.ItemType) bool {
	switch t {
	case roadmap.ItemProject, roadmap.ItemInternship, roadmap.ItemCertificate:
		return true
	default:
		return false
	}
}

// FormatDate renders a completion date for the resume.
func FormatDate(completed *time.Time) string {
	if completed == nil || completed.IsZero() {
		return RecentDate
	}
	return completed.Format(DateLayout)
}

// AppendCompleted adds the entry for a completed item. Courses and tests are
// ignored and reported as false.
func (r *Resume) AppendCompleted(t roadmap.ItemType, name string, bullets []string, completed *time.Time) bool {
	if !AcceptsItem(t) {
		return false
	}
	r.EnsureLists()
	date := FormatDate(completed)
	if bullets == nil {
		bullets = []string{}
	}
	switch t {
	case roadmap.ItemProject:
		r.Projects = append(r.Projects, ResumeProject{Name: name, Bullets: bullets, Date: date})
	case roadmap.ItemInternship:
		r.Experience = append(r.Experience, ResumeExperience{Title: name, Bullets: bullets, Date: date})
	case roadmap.ItemCertificate:
		r.Certifications = append(r.Certifications, ResumeCertification{Name: name, Date: date})
	}
	return true
}

// MergeSkills appends skills not already listed, case-insensitively.
func (r *Resume) MergeSkills(skills []string) {
	r.EnsureLists()
	seen := make(map[string]struct{}, len(r.Skills))
	for _, s := range r.Skills {
		seen[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		r.Skills = append(r.Skills, s)
	}
}

// PostIdea is one LinkedIn post suggestion. Draft is the ready-to-post text;
// the other sections are its outline.
type PostIdea struct {
	Topic        string   `json:"topic"`
	Hook         string   `json:"hook,omitempty"`
	Problem      string   `json:"problem,omitempty"`
	Solution     string   `json:"solution,omitempty"`
	HowItWorks   string   `json:"how_it_works,omitempty"`
	TechnicalWin string   `json:"technical_win,omitempty"`
	Vision       string   `json:"vision,omitempty"`
	CTA          string   `json:"cta,omitempty"`
	Draft        string   `json:"draft"`
	Hashtags     []string `json:"hashtags"`
}

type LinkedIn struct {
	PostIdeas      []PostIdea `json:"post_ideas"`
	ProfileSummary string     `json:"profile_summary"`
	SkillsToAdd    []string   `json:"skills_to_add"`
}

func (l LinkedIn) IsZero() bool {
	return len(l.PostIdeas) == 0 && strings.TrimSpace(l.ProfileSummary) == "" && len(l.SkillsToAdd) == 0
}

// EnsureLists replaces nil lists with empty ones.
func (l *LinkedIn) EnsureLists() {
	if l.PostIdeas == nil {
		l.PostIdeas = []PostIdea{}
	}
	if l.SkillsToAdd == nil {
		l.SkillsToAdd = []string{}
	}
}

type Profile struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Resume        Resume
	LinkedIn      LinkedIn
	LastGenerated *time.Time
}

// New returns an empty profile for the user.
func New(userID uuid.UUID) Profile {
	p := Profile{ID: uuid.New(), UserID: userID}
	p.Resume.EnsureLists()
	p.LinkedIn.EnsureLists()
	return p
}

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	// Upsert inserts or replaces the profile keyed by user id.
	Upsert(ctx context.Context, p Profile) (Profile, error)
}
