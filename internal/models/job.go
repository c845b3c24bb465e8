package models

import (
	"time"
)

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

type JobCategory string

const (
	CategoryPlumbing   JobCategory = "plumbing"
	CategoryElectrical JobCategory = "electrical"
	CategoryPainting   JobCategory = "painting"
	CategoryCarpentry  JobCategory = "carpentry"
	CategoryMasonry    JobCategory = "masonry"
	CategoryRoofing    JobCategory = "roofing"
	CategoryGardening  JobCategory = "gardening"
	CategoryCleaning   JobCategory = "cleaning"
	CategorySecurity   JobCategory = "security"
	CategoryOther      JobCategory = "other"
)

// Categories is the closed set of job categories, in display order.
var Categories = []JobCategory{
	CategoryPlumbing,
	CategoryElectrical,
	CategoryPainting,
	CategoryCarpentry,
	CategoryMasonry,
	CategoryRoofing,
	CategoryGardening,
	CategoryCleaning,
	CategorySecurity,
	CategoryOther,
}

// Job is a work request posted by a homeowner. Budget is in KES.
type Job struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	Title         string      `gorm:"type:varchar(200);not null" json:"title"`
	Description   string      `gorm:"type:text;not null" json:"description"`
	Category      JobCategory `gorm:"type:varchar(50);not null;index" json:"category"`
	PreferredDate time.Time   `gorm:"not null" json:"preferred_date"`
	Budget        float64     `gorm:"not null" json:"budget"`
	Status        JobStatus   `gorm:"type:varchar(10);not null;default:'open';index" json:"status"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
