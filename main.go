package main

import (
	"fmt"
	"log"

	"comandero/configs"
	"comandero/middlewares"
	"comandero/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// migrate + seed
	configs.SetupDatabase()
	restaurantID, err := configs.SeedRestaurant()
	if err != nil {
		log.Fatalf("seed restaurant failed: %v", err)
	}
	if err := configs.SeedAdmin(restaurantID); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	hub := routes.RegisterRoutes(r, db, cfg)
	go hub.Run()

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("comandero running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
