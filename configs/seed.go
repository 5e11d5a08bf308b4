package configs

import (
	"log"

	"comandero/entity"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// SeedRestaurant makes sure at least one restaurant exists so a fresh
// install is usable. Returns its id.
func SeedRestaurant() (uint, error) {
	var r entity.Restaurant
	err := db.Where("name = ?", "Casa Comandero").First(&r).Error
	if err == nil {
		return r.ID, nil
	}

	r = entity.Restaurant{Name: "Casa Comandero"}
	if err := db.Create(&r).Error; err != nil {
		return 0, err
	}

	tables := []entity.Table{
		{Number: 1, Seats: 2, Status: entity.TableFree, RestaurantID: r.ID},
		{Number: 2, Seats: 4, Status: entity.TableFree, RestaurantID: r.ID},
		{Number: 3, Seats: 4, Status: entity.TableFree, RestaurantID: r.ID},
		{Number: 4, Seats: 6, Status: entity.TableFree, RestaurantID: r.ID},
	}
	if err := db.Create(&tables).Error; err != nil {
		return 0, err
	}

	products := []entity.Product{
		{Name: "Espresso", Category: "drinks", Price: decimal.NewFromFloat(2.50), RestaurantID: r.ID, Active: true},
		{Name: "House Burger", Category: "kitchen", Price: decimal.NewFromFloat(10.00), TrackStock: true, RestaurantID: r.ID, Active: true},
		{Name: "Fries", Category: "kitchen", Price: decimal.NewFromFloat(5.00), TrackStock: true, RestaurantID: r.ID, Active: true},
	}
	if err := db.Create(&products).Error; err != nil {
		return 0, err
	}

	return r.ID, nil
}

// SeedAdmin creates the bootstrap admin operator if it is missing.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD with dev defaults.
func SeedAdmin(restaurantID uint) error {
	email := getEnv("ADMIN_EMAIL", "admin@comandero.local")

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := getEnv("ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.User{
		FirstName:    "Admin",
		Email:        email,
		Password:     string(hash),
		Role:         "admin",
		RestaurantID: restaurantID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("seeded admin operator %s", email)
	return nil
}
