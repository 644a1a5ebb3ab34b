package main

import (
	"flag"

	"todoview-api/internal/database"
	"todoview-api/internal/logging"
	"todoview-api/internal/seed"
)

func main() {
	count := flag.Int("count", seed.DefaultCount, "number of todos to create")
	flag.Parse()

	logging.InitLogger(logging.NewLogConfigFromEnv())

	dbConfig := database.NewConfigFromEnv()
	db, err := database.Connect(dbConfig)
	if err != nil {
		logging.Logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logging.Logger.Fatalf("Failed to run migrations: %v", err)
	}

	todos, err := seed.Todos(db, *count)
	if err != nil {
		logging.Logger.Fatalf("Failed to seed todos: %v", err)
	}

	logging.Logger.Infof("Seeded %d todos", len(todos))
}
