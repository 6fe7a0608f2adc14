package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"tatvadirect/backend/config"
	"tatvadirect/backend/database"
	"tatvadirect/backend/middlewares"
	"tatvadirect/backend/routes"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg.DatabaseURL)
	if err := database.EnsureSchema(); err != nil {
		log.Fatalf("migrate error: %v", err)
	}
	store := database.NewStore(database.Pool)

	r := gin.New()
	r.Use(gin.Logger(), middlewares.Recovery())
	r.MaxMultipartMemory = cfg.MaxUploadBytes
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	routes.Register(r, cfg, store)
	log.Printf("server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c
}
