// @title Quiz App API
// @version 1.0
// @description Backend for creating quizzes, collecting public submissions and auto-scoring them.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"github.com/prafuldivani/quiz-app/internal/app"
	"github.com/prafuldivani/quiz-app/internal/config"
	"github.com/prafuldivani/quiz-app/pkg/configwatcher"
	"github.com/prafuldivani/quiz-app/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", application.OnConfigReload)

	application.Run()
}
