// cmd/dbtools/migrate/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultMigrationsPath = "internal/db/migrations"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		dbPath         = flag.String("db", "", "Path to SQLite database")
		migrationsPath = flag.String("migrations", defaultMigrationsPath, "Path to migrations directory")
		command        = flag.String("command", "", "Command to run (up, down, steps, force, version)")
		steps          = flag.Int("n", 0, "Step count for steps, or target version for force")
	)
	flag.Parse()

	if *dbPath == "" || *command == "" {
		flag.Usage()
		os.Exit(1)
	}
	if _, err := os.Stat(*migrationsPath); err != nil {
		log.Fatal().Err(err).Str("migrations", *migrationsPath).Msg("Migrations directory not found")
	}

	m, err := migrate.New(
		fmt.Sprintf("file://%s", *migrationsPath),
		fmt.Sprintf("sqlite3://%s?_fk=1", *dbPath),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Migration init failed")
	}
	defer m.Close()

	logger := log.With().Str("db", *dbPath).Str("command", *command).Logger()

	switch *command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		if *steps == 0 {
			logger.Fatal().Msg("steps requires a non-zero -n")
		}
		err = m.Steps(*steps)
	case "force":
		err = m.Force(*steps)
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			fmt.Println("Version: none")
			return
		}
		if verr != nil {
			logger.Fatal().Err(verr).Msg("Get version failed")
		}
		fmt.Printf("Version: %d, Dirty: %v\n", version, dirty)
		return
	default:
		logger.Fatal().Msg("Unknown command")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal().Err(err).Msg("Migration failed")
	}
	logger.Info().Msg("Migration complete")
}
