package models

import "time"

// HierarchySnapshot holds the Woreda and Kebele names as they were at
// registration time. The values are copies, not foreign keys: renaming
// or deleting hierarchy rows never rewrites a farmer's snapshot.
type HierarchySnapshot struct {
	Woreda string `gorm:"type:varchar(255);not null" json:"woreda"`
	Kebele string `gorm:"type:varchar(255);not null" json:"kebele"`
}

type Farmer struct {
	ID                uint64 `gorm:"primarykey" json:"id"`
	Name              string `gorm:"type:varchar(255);not null" json:"name"`
	HierarchySnapshot `gorm:"embedded"`
	Phone             string    `gorm:"type:varchar(50);not null" json:"phone"`
	RegisteredBy      string    `gorm:"type:varchar(255);not null" json:"registered_by"`
	Timestamp         time.Time `json:"timestamp"`
}
