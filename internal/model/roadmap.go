package model

import "gorm.io/datatypes"

// ResourceType classifies a learning resource.
type ResourceType string

const (
	ResourceArticle ResourceType = "article"
	ResourceVideo   ResourceType = "video"
	ResourceCourse  ResourceType = "course"
)

// Valid reports whether t is one of the known resource types.
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceArticle, ResourceVideo, ResourceCourse:
		return true
	}
	return false
}

// Resource is a single external learning artifact attached to a step.
type Resource struct {
	Type     ResourceType `json:"type" yaml:"type"`
	Title    string       `json:"title" yaml:"title"`
	URL      string       `json:"url" yaml:"url"`
	Duration string       `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Step is a stage of a roadmap. Its ID is unique within the owning roadmap and is
// the key recorded in Progress.CompletedSteps.
type Step struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Resources   []Resource `json:"resources" yaml:"resources"`
}

// Roadmap is the ordered curriculum for one skill. Steps are embedded and stored as JSON.
type Roadmap struct {
	ID          uint                      `json:"id" yaml:"id" gorm:"primaryKey;autoIncrement:false"`
	SkillID     uint                      `json:"skillId" yaml:"skillId" gorm:"index;not null"`
	Title       string                    `json:"title" yaml:"title" gorm:"size:255;not null"`
	Description string                    `json:"description" yaml:"description" gorm:"type:text;not null"`
	Steps       datatypes.JSONSlice[Step] `json:"steps" yaml:"steps" gorm:"not null"`
}

// HasStep reports whether id names one of the roadmap's steps.
func (r *Roadmap) HasStep(id string) bool {
	for _, s := range r.Steps {
		if s.ID == id {
			return true
		}
	}
	return false
}
