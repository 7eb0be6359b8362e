package models

import (
	"time"
)

type Location struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	City      string    `json:"city" gorm:"not null"`
	Name      string    `json:"name" gorm:"not null"`
	Area      *float64  `json:"area"` // m²
	Lat       *float64  `json:"lat"`
	Lng       *float64  `json:"lng"`
	CreatedAt time.Time `json:"created_at"`
}
