package models

import "time"

// Reservation -> reservasi meja. TableName mengacu ke nama meja saat ini
// (bukan id), sehingga rename meja harus meng-update semua reservasi terkait.
// RawDate/RawTime adalah sumber kebenaran; field Display* diturunkan sekali
// saat pembuatan dan tidak diubah lagi.
type Reservation struct {
	ID          string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	TableName   string    `gorm:"type:varchar(50);not null;index" json:"table_name"`
	GuestName   string    `gorm:"type:varchar(255);not null" json:"guest_name"`
	RawDate     string    `gorm:"type:varchar(10);not null" json:"raw_date"` // YYYY-MM-DD
	RawTime     string    `gorm:"type:varchar(5);not null" json:"raw_time"`  // HH:MM (24h)
	DisplayDate string    `gorm:"type:varchar(20);not null" json:"display_date"`
	DisplayTime string    `gorm:"type:varchar(20);not null" json:"display_time"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
