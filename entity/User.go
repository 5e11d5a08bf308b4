package entity

import (
	"gorm.io/gorm"
)

// User is a back-office operator (cashier, kitchen, waiter, admin).
type User struct {
	gorm.Model
	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Email     string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	Role      string `gorm:"size:30;not null;default:'cashier'" json:"role"` // admin | cashier | kitchen | waiter

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}
