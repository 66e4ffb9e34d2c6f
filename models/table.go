package models

import "time"

const (
	TableStatusAvailable = "Available"
	TableStatusOccupied  = "Occupied"
)

// Table -> meja billiard. OccupiedUntil berisi label akhir sesi
// ("Open Time" atau jam 12-hour) dan hanya terisi saat status Occupied.
type Table struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Available'" json:"status"`
	OccupiedUntil *string   `gorm:"type:varchar(20)" json:"occupied_until"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// IsOccupied -> true jika meja sedang dipakai walk-in
func (t *Table) IsOccupied() bool {
	return t.Status == TableStatusOccupied
}
