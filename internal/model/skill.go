package model

// Skill is a catalog entry for a learnable subject area.
type Skill struct {
	ID          uint   `json:"id" yaml:"id" gorm:"primaryKey;autoIncrement:false"`
	Name        string `json:"name" yaml:"name" gorm:"size:255;not null"`
	Description string `json:"description" yaml:"description" gorm:"type:text;not null"`
	Image       string `json:"image" yaml:"image" gorm:"size:1024;not null"`
}
