package models

import "time"

type City struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:60;not null;index" json:"name"`
	StateID int    `gorm:"not null" json:"stateId"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
