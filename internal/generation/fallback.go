package generation

import (
	"fmt"
	"strings"

	"skillpath/internal/domain/professional"
	"skillpath/internal/domain/roadmap"
	"skillpath/internal/domain/user"
)

func FallbackAnalysis() user.Analysis {
	return user.Analysis{
		Strengths:    []string{"Motivated to learn", "Clear career direction"},
		Gaps:         []string{"Need more hands-on experience"},
		CareerPaths:  []string{"Technology Professional", "Industry Specialist", "General Professional"},
		LearningTips: []string{"Start with foundational courses", "Build portfolio projects"},
	}
}

// FallbackRoadmap is a single phase with one course (c1) and one project (p1).
func FallbackRoadmap() roadmap.Roadmap {
	p := roadmap.Phase{
		Phase: 1,
		Title: "Foundation Building",
		Focus: "Build core fundamentals",
		Courses: []roadmap.Item{{
			ID:        "c1",
			Name:      "Introduction to Programming",
			Platform:  "Coursera",
			Duration:  "4 weeks",
			Rationale: "Essential programming foundation",
		}},
		Projects: []roadmap.Item{{
			ID:                 "p1",
			Name:               "Personal Portfolio Website",
			Description:        "Build a professional portfolio",
			SkillsDemonstrated: []string{"HTML", "CSS", "JavaScript"},
			Rationale:          "Demonstrate web development skills",
		}},
	}
	p.EnsureCategories()
	return roadmap.Roadmap{Phases: []roadmap.Phase{p}}
}

// FallbackPhase is phase n with one course c<n>1 and one project p<n>1.
func FallbackPhase(n int) roadmap.Phase {
	p := roadmap.Phase{
		Phase:         n,
		Title:         fmt.Sprintf("Year %d: Advanced Development", n),
		Focus:         "Building on completed foundations",
		WeeklyRoutine: "Continue learning and building projects",
		Courses: []roadmap.Item{{
			ID:        roadmap.SynthesizeID(roadmap.ItemCourse, n, 1),
			Name:      "Advanced Course",
			Platform:  "TBD",
			Duration:  "8 weeks",
			Rationale: "Continue skill development",
		}},
		Projects: []roadmap.Item{{
			ID:                 roadmap.SynthesizeID(roadmap.ItemProject, n, 1),
			Name:               "Advanced Project",
			Description:        "Build on previous skills",
			SkillsDemonstrated: []string{"Advanced Skills"},
			Rationale:          "Apply learned concepts",
		}},
	}
	p.EnsureCategories()
	return p
}

func FallbackBullets(in BulletsInput) []string {
	skills := "various skills"
	if len(in.Skills) > 0 {
		skills = strings.Join(in.Skills, ", ")
	}
	return []string{
		fmt.Sprintf("Completed %s demonstrating proficiency in %s", in.Title, skills),
		fmt.Sprintf("Applied technical knowledge to solve real-world problems in %s context", in.ItemType),
	}
}

func FallbackEncouragement(itemName string) string {
	return fmt.Sprintf("Great job completing %s!", itemName)
}

func FallbackLinkedIn(in LinkedInInput) professional.LinkedIn {
	goal := in.CareerGoal
	if strings.TrimSpace(goal) == "" {
		goal = "my career development"
	}
	skills := append([]string(nil), in.NewSkills...)
	if len(skills) == 0 {
		skills = []string{"Problem Solving", "Project Management"}
	}
	draft := fmt.Sprintf("Sharing my progress in %s.", goal)
	if len(in.Profile.CurrentSkills) > 0 {
		draft += fmt.Sprintf(" Recent projects are helping me deepen skills in %s.", strings.Join(in.Profile.CurrentSkills, ", "))
	}
	return professional.LinkedIn{
		PostIdeas: []professional.PostIdea{{
			Topic:    "Learning Journey",
			CTA:      "What resources helped you level up in this area?",
			Draft:    draft,
			Hashtags: []string{"learning", "growth", "career"},
		}},
		ProfileSummary: fmt.Sprintf("Aspiring professional focused on %s with hands-on experience in recent projects.", goal),
		SkillsToAdd:    skills,
	}
}
