package entity

import (
	"gorm.io/gorm"
)

const (
	TableFree     = "free"
	TableOccupied = "occupied"
)

type Table struct {
	gorm.Model
	Number   int    `gorm:"not null" json:"number"`
	Seats    int    `json:"seats"`
	Status   string `gorm:"size:20;not null;default:'free'" json:"status"` // free | occupied

	RestaurantID uint       `gorm:"index;not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Orders []Order `json:"-"`
}
