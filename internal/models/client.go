package models

import "time"

// Client belongs to a city. Deleting a city that still has clients is refused
// by the store.
type Client struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:150;not null;index" json:"name"`
	Email  string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	CityID uint   `gorm:"not null;index" json:"cityId"`
	City   *City  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
