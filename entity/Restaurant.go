package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name    string `gorm:"size:150;not null" json:"name"`
	Address string `json:"address"`
	Phone   string `gorm:"size:30" json:"phone"`

	Products []Product `json:"-"`
	Tables   []Table   `json:"-"`
	Orders   []Order   `json:"-"`
	Shifts   []Shift   `json:"-"`
}
