package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Ramneek99/shopcarts/middleware"
	"github.com/Ramneek99/shopcarts/models"
	"github.com/Ramneek99/shopcarts/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// exitStoreInit is returned when the database cannot be reached or the
// schema cannot be created. Boot is fail-fast: no retry loop.
const exitStoreInit = 2

func main() {
	log.Println("Starting shopcarts service...")

	// Load environment variables
	_ = godotenv.Load()

	db := initDatabase()

	if err := db.AutoMigrate(
		&models.Shopcart{},
		&models.Product{},
	); err != nil {
		log.Printf("AutoMigrate failed: %v", err)
		os.Exit(exitStoreInit)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Location", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID)

	routes.SetupRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase opens the GORM connection from DATABASE_URI, falling back to
// the discrete DB_* variables.
func initDatabase() *gorm.DB {
	if databaseURI := os.Getenv("DATABASE_URI"); databaseURI != "" {
		db, err := gorm.Open(postgres.Open(databaseURI), &gorm.Config{})
		if err != nil {
			log.Printf("DB connection failed: %v", err)
			os.Exit(exitStoreInit)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Failed to connect DB: %v", err)
		os.Exit(exitStoreInit)
	}
	return db
}
