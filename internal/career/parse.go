package career

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"mentorpath/internal/model"
)

const (
	DefaultTitle       = "Custom Career Path"
	defaultDescription = "A personalized career path based on your profile."
	defaultTimeframe   = "Varies"
	defaultTimeline    = "Varies based on dedication and prior experience"
	defaultResource    = "Resource"
)

// ErrNoSteps rejects completions that parse but carry no roadmap at all.
var ErrNoSteps = errors.New("career path has no steps")

type rawResource struct {
	ID          *string `json:"id"`
	Title       *string `json:"title"`
	Type        *string `json:"type"`
	Link        *string `json:"link"`
	Description *string `json:"description"`
}

type rawStep struct {
	ID          *string       `json:"id"`
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Resources   []rawResource `json:"resources"`
	Timeframe   *string       `json:"timeframe"`
}

type rawCareerPath struct {
	Title             *string   `json:"title"`
	Description       *string   `json:"description"`
	Steps             []rawStep `json:"steps"`
	Skills            []string  `json:"skills"`
	PotentialRoles    []string  `json:"potentialRoles"`
	EstimatedTimeline *string   `json:"estimatedTimeline"`
}

// Parse turns a free-text completion into a normalized career path. Errors
// say which stage failed: extraction, validation or decoding.
func Parse(text string, now time.Time) (model.CareerPath, error) {
	document, err := ExtractObject(text)
	if err != nil {
		return model.CareerPath{}, err
	}
	if err := ValidateDocument(document); err != nil {
		return model.CareerPath{}, err
	}

	var raw rawCareerPath
	if err := json.Unmarshal([]byte(document), &raw); err != nil {
		return model.CareerPath{}, fmt.Errorf("decode career path failed: %w", err)
	}
	if len(raw.Steps) == 0 {
		return model.CareerPath{}, ErrNoSteps
	}
	return normalize(raw, now), nil
}

func normalize(raw rawCareerPath, now time.Time) model.CareerPath {
	path := model.CareerPath{
		ID:                pathID(now),
		Title:             orDefault(raw.Title, DefaultTitle),
		Description:       orDefault(raw.Description, defaultDescription),
		Steps:             make([]model.CareerStep, 0, len(raw.Steps)),
		Skills:            nonNil(raw.Skills),
		PotentialRoles:    nonNil(raw.PotentialRoles),
		EstimatedTimeline: orDefault(raw.EstimatedTimeline, defaultTimeline),
	}

	for i, step := range raw.Steps {
		normalized := model.CareerStep{
			ID:          orDefault(step.ID, fmt.Sprintf("step-%d", i+1)),
			Title:       orDefault(step.Title, fmt.Sprintf("Step %d", i+1)),
			Description: orDefault(step.Description, ""),
			Resources:   make([]model.Resource, 0, len(step.Resources)),
			Timeframe:   orDefault(step.Timeframe, defaultTimeframe),
		}
		for j, res := range step.Resources {
			normalized.Resources = append(normalized.Resources, model.Resource{
				ID:          orDefault(res.ID, fmt.Sprintf("resource-%d-%d", i, j)),
				Title:       orDefault(res.Title, defaultResource),
				Type:        resourceType(orDefault(res.Type, "")),
				Link:        orDefault(res.Link, ""),
				Description: orDefault(res.Description, ""),
			})
		}
		path.Steps = append(path.Steps, normalized)
	}
	return path
}

// Fallback is returned whenever a completion cannot be parsed.
func Fallback(now time.Time) model.CareerPath {
	return model.CareerPath{
		ID:          pathID(now),
		Title:       DefaultTitle,
		Description: "We encountered an issue creating your detailed career path. Here's a general outline to get you started.",
		Steps: []model.CareerStep{
			{
				ID:          "step-1",
				Title:       "Assess Your Current Skills",
				Description: "Take time to evaluate your current skillset and identify gaps relative to your career goals.",
				Resources: []model.Resource{
					{
						ID:          "resource-1",
						Title:       "Skills Assessment Tools",
						Type:        model.ResourceWebsite,
						Link:        "https://www.myskillsfuture.gov.sg/content/portal/en/assessment/landing.html",
						Description: "Free skills assessment tools to identify your strengths and areas for improvement.",
					},
				},
				Timeframe: "1-2 weeks",
			},
			{
				ID:          "step-2",
				Title:       "Develop Core Skills",
				Description: "Focus on building the fundamental skills required for your target career path.",
				Resources: []model.Resource{
					{
						ID:          "resource-2",
						Title:       "Online Learning Platforms",
						Type:        model.ResourceWebsite,
						Link:        "https://www.coursera.org/",
						Description: "Coursera offers courses from top universities and companies.",
					},
				},
				Timeframe: "3-6 months",
			},
		},
		Skills:            []string{"Critical Thinking", "Communication", "Technical Proficiency", "Problem Solving"},
		PotentialRoles:    []string{"Entry-level positions", "Mid-level roles with experience"},
		EstimatedTimeline: "1-2 years depending on current experience and learning pace",
	}
}

func pathID(now time.Time) string {
	return fmt.Sprintf("path-%d", now.UnixMilli())
}

func orDefault(value *string, fallback string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return fallback
	}
	return strings.TrimSpace(*value)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func resourceType(raw string) model.ResourceType {
	switch model.ResourceType(strings.ToLower(raw)) {
	case model.ResourceCourse:
		return model.ResourceCourse
	case model.ResourceBook:
		return model.ResourceBook
	case model.ResourceWebsite:
		return model.ResourceWebsite
	default:
		return model.ResourceOther
	}
}
