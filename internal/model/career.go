package model

// Profile is the input of one career path synthesis call.
type Profile struct {
	Education  string   `json:"education" binding:"max=2000" validate:"max=2000"`
	Experience []string `json:"experience" validate:"max=30,dive,max=1000"`
	Skills     []string `json:"skills" validate:"max=50,dive,max=200"`
	Interests  []string `json:"interests" validate:"max=50,dive,max=200"`
	Goals      string   `json:"goals" binding:"max=2000" validate:"max=2000"`
	WorkStyle  string   `json:"preferredWorkStyle" binding:"max=500" validate:"max=500"`
}

type ResourceType string

const (
	ResourceCourse  ResourceType = "course"
	ResourceBook    ResourceType = "book"
	ResourceWebsite ResourceType = "website"
	ResourceOther   ResourceType = "other"
)

type CareerPath struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Steps             []CareerStep `json:"steps"`
	Skills            []string     `json:"skills"`
	PotentialRoles    []string     `json:"potentialRoles"`
	EstimatedTimeline string       `json:"estimatedTimeline"`
}

type CareerStep struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Resources   []Resource `json:"resources"`
	Timeframe   string     `json:"timeframe"`
}

type Resource struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Type        ResourceType `json:"type"`
	Link        string       `json:"link,omitempty"`
	Description string       `json:"description"`
}
