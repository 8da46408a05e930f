package dto

import (
	"time"

	"skillpath/internal/domain/progress"
	"skillpath/internal/domain/roadmap"

	"github.com/google/uuid"
)

type GrowthPathResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Phase       int             `json:"phase"`
	Roadmap     roadmap.Roadmap `json:"roadmap"`
	GeneratedAt time.Time       `json:"generated_at"`
	IsActive    bool            `json:"is_active"`
}

type GenerateGrowthPathResponse struct {
	GrowthPath      GrowthPathResponse `json:"growth_path"`
	TrackersCreated int                `json:"trackers_created"`
	SideEffects     []SideEffect       `json:"side_effects"`
}

type ExtendGrowthPathResponse struct {
	GrowthPath      GrowthPathResponse `json:"growth_path"`
	Phase           roadmap.Phase      `json:"phase"`
	TrackersCreated int                `json:"trackers_created"`
	SideEffects     []SideEffect       `json:"side_effects"`
}

type ActiveGrowthPathResponse struct {
	GrowthPath      GrowthPathResponse `json:"growth_path"`
	EnrichedRoadmap EnrichedRoadmap    `json:"enriched_roadmap"`
}

// ItemProgress is the tracker state attached to an enriched roadmap item.
type ItemProgress struct {
	Status               progress.Status `json:"status"`
	CompletionDate       *time.Time      `json:"completion_date,omitempty"`
	Notes                string          `json:"notes,omitempty"`
	EncouragementMessage string          `json:"encouragement_message,omitempty"`
}

type EnrichedItem struct {
	roadmap.Item
	Progress ItemProgress `json:"progress"`
}

type EnrichedPhase struct {
	Phase         int            `json:"phase"`
	Title         string         `json:"title"`
	Focus         string         `json:"focus"`
	WeeklyRoutine string         `json:"weekly_routine,omitempty"`
	Courses       []EnrichedItem `json:"courses"`
	Tests         []EnrichedItem `json:"tests"`
	Internships   []EnrichedItem `json:"internships"`
	Certificates  []EnrichedItem `json:"certificates"`
	Projects      []EnrichedItem `json:"projects"`
}

type EnrichedRoadmap struct {
	Phases []EnrichedPhase `json:"phases"`
}

func NewGrowthPathResponse(gp roadmap.GrowthPath) GrowthPathResponse {
	return GrowthPathResponse{
		ID:          gp.ID,
		UserID:      gp.UserID,
		Phase:       gp.Phase,
		Roadmap:     gp.Roadmap,
		GeneratedAt: gp.GeneratedAt,
		IsActive:    gp.IsActive,
	}
}

// NewEnrichedRoadmap attaches tracker state to every item. Items without a
// tracker are reported as not started.
func NewEnrichedRoadmap(r roadmap.Roadmap, trackers map[string]progress.Tracker) EnrichedRoadmap {
	out := EnrichedRoadmap{Phases: make([]EnrichedPhase, 0, len(r.Phases))}
	for _, p := range r.Phases {
		out.Phases = append(out.Phases, EnrichedPhase{
			Phase:         p.Phase,
			Title:         p.Title,
			Focus:         p.Focus,
			WeeklyRoutine: p.WeeklyRoutine,
			Courses:       enrichItems(p.Courses, trackers),
			Tests:         enrichItems(p.Tests, trackers),
			Internships:   enrichItems(p.Internships, trackers),
			Certificates:  enrichItems(p.Certificates, trackers),
			Projects:      enrichItems(p.Projects, trackers),
		})
	}
	return out
}

func enrichItems(items []roadmap.Item, trackers map[string]progress.Tracker) []EnrichedItem {
	out := make([]EnrichedItem, 0, len(items))
	for _, it := range items {
		p := ItemProgress{Status: progress.StatusNotStarted}
		if t, ok := trackers[it.ID]; ok {
			p = ItemProgress{
				Status:               t.Status,
				CompletionDate:       t.CompletionDate,
				Notes:                t.Notes,
				EncouragementMessage: t.EncouragementMessage,
			}
		}
		out = append(out, EnrichedItem{Item: it, Progress: p})
	}
	return out
}
