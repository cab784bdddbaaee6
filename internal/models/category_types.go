package models

import "time"

// Category is the model for the 'categories' table.
type Category struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Slug         string    `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Icon         string    `json:"icon"`
	Image        string    `json:"image"`
	ProductCount int       `json:"productCount" gorm:"default:0"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
