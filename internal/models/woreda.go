package models

import "time"

type Woreda struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Kebeles []Kebele `gorm:"foreignKey:WoredaID" json:"kebeles,omitempty"`
}
