package main

import "bookgraph/internal/config"

func migrationsDir() string {
	return config.GetEnv("MIGRATIONS_DIR", "db/migrations")
}

func databaseDSN() string {
	return config.GetEnv("DB_DSN", config.DefaultPostgresDSN)
}
