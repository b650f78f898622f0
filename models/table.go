package models

import "time"

type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    int       `gorm:"not null;unique" json:"number"`
	Section   string    `gorm:"type:varchar(100)" json:"section"`
	Seats     int       `gorm:"not null;default:4" json:"seats"`
	Status    string    `gorm:"type:varchar(50);not null;default:'available'" json:"status"`
	QRCode    string    `gorm:"type:varchar(100)" json:"qr_code"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
