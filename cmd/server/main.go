package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/actionlog"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/config"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/database"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/routes"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Log)

	gin.SetMode(cfg.Server.Mode)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	if err := createUploadDirs(cfg.File.UploadPath); err != nil {
		log.Fatalf("Failed to create upload directories: %v", err)
	}

	actions := actionlog.New(cfg.Log)
	defer actions.Close()

	router := routes.Setup(db, cfg, actions)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func createUploadDirs(basePath string) error {
	dirs := []string{
		basePath,
		basePath + "/avatars",
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}
