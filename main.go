package main

import (
	"time"

	"sellerhub-api/config"
	"sellerhub-api/database"
	routes "sellerhub-api/internal/app/http"
	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()
	database.InitDB()

	log := logger.New(config.LOG_LEVEL, config.LOG_FORMAT)
	services.Init(database.DB, log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
