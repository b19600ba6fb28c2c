package main

import (
	"context"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/binaryash/redbud/config"
	"github.com/binaryash/redbud/pkg/logger"
	"github.com/binaryash/redbud/routes"
	"github.com/binaryash/redbud/services"
)

func main() {
	log := logger.New()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found")
	}

	config.InitDB()

	// Fail fast: a missing API key should stop the process here, not the
	// first summarize call
	summarizer, err := services.NewGeminiSummarizer(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("could not build summarizer")
	}
	defer summarizer.Close()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r = routes.SetupRouter(r, config.DB, summarizer)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("server running")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
