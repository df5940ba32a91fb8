package models

import "time"

// Kebele names are deliberately not unique within a Woreda; repeated
// imports of the same row produce repeated Kebele rows.
type Kebele struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	WoredaID  uint64    `gorm:"not null" json:"woreda_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Woreda Woreda `gorm:"foreignKey:WoredaID" json:"woreda,omitempty"`
}
