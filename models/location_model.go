package models

import "gorm.io/gorm"

type Location struct {
	gorm.Model
	LocationCode     string `json:"location_code" gorm:"unique"`
	Zone             string `json:"zone" gorm:"uniqueIndex:idx_location_path"`
	Rack             string `json:"rack" gorm:"uniqueIndex:idx_location_path"`
	Shelf            string `json:"shelf" gorm:"uniqueIndex:idx_location_path"`
	Bin              string `json:"bin" gorm:"uniqueIndex:idx_location_path"`
	Capacity         *int   `json:"capacity"` // nil means unlimited
	CurrentOccupancy int    `json:"current_occupancy" gorm:"default:0"`
	IsActive         bool   `json:"is_active" gorm:"default:true"`
	CreatedBy        int
	UpdatedBy        int
	DeletedBy        int
}

// AvailableCapacity returns how much quantity still fits. The second
// return is false when the location has no capacity limit.
func (l *Location) AvailableCapacity() (int, bool) {
	if l.Capacity == nil {
		return 0, false
	}
	return *l.Capacity - l.CurrentOccupancy, true
}
