package roadmap

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRoadmap = errors.New("invalid roadmap")

type ItemType string

const (
	ItemCourse      ItemType = "course"
	ItemTest        ItemType = "test"
	ItemInternship  ItemType = "internship"
	ItemCertificate ItemType = "certificate"
	ItemProject     ItemType = "project"
)

// ItemTypes lists the item types in roadmap category order.
var ItemTypes = []ItemType{ItemCourse, ItemTest, ItemInternship, ItemCertificate, ItemProject}

func ParseItemType(s string) (ItemType, bool) {
	t := ItemType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ItemTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// IDPrefix is the prefix used when synthesizing item ids: c, t, i, cert, p.
func (t ItemType) IDPrefix() string {
	switch t {
	case ItemCourse:
		return "c"
	case ItemTest:
		return "t"
	case ItemInternship:
		return "i"
	case ItemCertificate:
		return "cert"
	case ItemProject:
		return "p"
	default:
		return "x"
	}
}

type Roadmap struct {
	Phases []Phase `json:"phases"`
}

type Phase struct {
	Phase         int    `json:"phase"`
	Title         string `json:"title"`
	Focus         string `json:"focus"`
	WeeklyRoutine string `json:"weekly_routine,omitempty"`
	Courses       []Item `json:"courses"`
	Tests         []Item `json:"tests"`
	Internships   []Item `json:"internships"`
	Certificates  []Item `json:"certificates"`
	Projects      []Item `json:"projects"`
}

// Item is one actionable roadmap entry. Fields are the union of what the five
// categories carry; unused ones stay empty.
type Item struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name,omitempty"`
	Type               string   `json:"type,omitempty"`
	Platform           string   `json:"platform,omitempty"`
	Duration           string   `json:"duration,omitempty"`
	TargetScore        string   `json:"target_score,omitempty"`
	Timing             string   `json:"timing,omitempty"`
	When               string   `json:"when,omitempty"`
	Companies          []string `json:"companies,omitempty"`
	Provider           string   `json:"provider,omitempty"`
	Description        string   `json:"description,omitempty"`
	SkillsDemonstrated []string `json:"skills_demonstrated,omitempty"`
	Rationale          string   `json:"rationale,omitempty"`
}

// TrackedItem is an item paired with its type and derived display name.
type TrackedItem struct {
	Type ItemType
	Name string
	Item Item
}

// Category returns the slice backing the given item type.
func (p *Phase) Category(t ItemType) *[]Item {
	switch t {
	case ItemCourse:
		return &p.Courses
	case ItemTest:
		return &p.Tests
	case ItemInternship:
		return &p.Internships
	case ItemCertificate:
		return &p.Certificates
	case ItemProject:
		return &p.Projects
	default:
		return nil
	}
}

// EnsureCategories replaces nil category slices with empty ones so they
// encode as [] instead of null.
func (p *Phase) EnsureCategories() {
	for _, t := range ItemTypes {
		c := p.Category(t)
		if *c == nil {
			*c = []Item{}
		}
	}
}

// Normalize fills in missing or repeated ids as <prefix><phase><index> and
// reports how many were synthesized.
func (p *Phase) Normalize() int {
	return p.normalize(make(map[string]struct{}))
}

// NormalizeAgainst normalizes a phase about to be appended to r so that none
// of its ids, supplied or synthesized, is already used by r.
func (p *Phase) NormalizeAgainst(r Roadmap) int {
	return p.normalize(r.IDs())
}

// normalize keeps supplied ids not yet in taken and synthesizes the rest,
// bumping the index until unused. Every final id is added to taken.
func (p *Phase) normalize(taken map[string]struct{}) int {
	p.EnsureCategories()
	for _, t := range ItemTypes {
		items := *p.Category(t)
		for i := range items {
			id := strings.TrimSpace(items[i].ID)
			if _, used := taken[id]; used {
				id = ""
			}
			items[i].ID = id
			if id != "" {
				taken[id] = struct{}{}
			}
		}
	}

	synthesized := 0
	for _, t := range ItemTypes {
		items := *p.Category(t)
		for i := range items {
			if items[i].ID != "" {
				continue
			}
			n := i + 1
			id := SynthesizeID(t, p.Phase, n)
			for {
				if _, used := taken[id]; !used {
					break
				}
				n++
				id = SynthesizeID(t, p.Phase, n)
			}
			items[i].ID = id
			taken[id] = struct{}{}
			synthesized++
		}
	}
	return synthesized
}

// Items walks the phase's categories in order.
func (p Phase) Items() []TrackedItem {
	out := make([]TrackedItem, 0, p.ItemCount())
	for _, t := range ItemTypes {
		for _, it := range *p.Category(t) {
			out = append(out, TrackedItem{Type: t, Name: DisplayName(t, it), Item: it})
		}
	}
	return out
}

func (p Phase) ItemCount() int {
	n := 0
	for _, t := range ItemTypes {
		n += len(*p.Category(t))
	}
	return n
}

func SynthesizeID(t ItemType, phase int, index int) string {
	return fmt.Sprintf("%s%d%d", t.IDPrefix(), phase, index)
}

// DisplayName picks the human readable label for an item. Internships are
// described by their type first; everything else by name.
func DisplayName(t ItemType, it Item) string {
	candidates := []string{it.Name, it.Type}
	if t == ItemInternship {
		candidates = []string{it.Type, it.Name}
	}
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return it.ID
}

// Normalize normalizes every phase in place so item ids are unique across
// the whole roadmap.
func (r *Roadmap) Normalize() {
	taken := make(map[string]struct{})
	for i := range r.Phases {
		if r.Phases[i].Phase <= 0 {
			r.Phases[i].Phase = i + 1
		}
		r.Phases[i].normalize(taken)
	}
}

// IDs returns the set of item ids in the roadmap.
func (r Roadmap) IDs() map[string]struct{} {
	out := make(map[string]struct{})
	for _, it := range r.Items() {
		out[it.Item.ID] = struct{}{}
	}
	return out
}

func (r Roadmap) Items() []TrackedItem {
	out := make([]TrackedItem, 0)
	for _, p := range r.Phases {
		out = append(out, p.Items()...)
	}
	return out
}

// Append adds the phase to the end of the roadmap.
func (r *Roadmap) Append(p Phase) {
	r.Phases = append(r.Phases, p)
}

func (r Roadmap) NextPhase() int {
	return len(r.Phases) + 1
}

// Validate checks the shape of a decoded roadmap.
func (r Roadmap) Validate() error {
	seen := make(map[string]struct{})
	for i, p := range r.Phases {
		if p.Phase < 1 {
			return fmt.Errorf("%w: phase %d has number %d", ErrInvalidRoadmap, i, p.Phase)
		}
		for _, it := range p.Items() {
			id := strings.TrimSpace(it.Item.ID)
			if id == "" {
				return fmt.Errorf("%w: phase %d has a %s without id", ErrInvalidRoadmap, p.Phase, it.Type)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: duplicate item id %q", ErrInvalidRoadmap, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}
