package models

import (
	"time"
)

// Record is a field-service visit. The location_* columns are a snapshot of
// the referenced Location taken at creation time; editing the Location later
// does not touch them.
type Record struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	OperatorID   uint       `json:"operator_id" gorm:"not null;index"`
	ServiceType  string     `json:"service_type" gorm:"not null"`
	LocationID   *uint      `json:"location_id"`
	LocationName *string    `json:"location_name"`
	LocationCity *string    `json:"location_city" gorm:"index"`
	LocationArea *float64   `json:"location_area"`
	GPSUsed      bool       `json:"gps_used" gorm:"not null;default:true"`
	StartTime    *time.Time `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	CreatedAt    time.Time  `json:"created_at"`
}
