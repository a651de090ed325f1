// cmd/dbtools/seed/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/auth"
	"github.com/codr1/Fixturely/internal/api/authz"
	"github.com/codr1/Fixturely/internal/config"
	"github.com/codr1/Fixturely/internal/db"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		configPath = flag.String("config", "config/app.yaml", "Path to the YAML configuration file")
		email      = flag.String("email", "", "Email address of the first administrator")
		fullName   = flag.String("name", "Administrator", "Display name of the first administrator")
	)
	flag.Parse()

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if strings.TrimSpace(*email) == "" {
		log.Fatal().Msg("-email is required")
	}
	if err := auth.ValidatePassword(password); err != nil {
		log.Fatal().Err(err).Msg("SEED_ADMIN_PASSWORD is invalid")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("Failed to load configuration")
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, created, err := seedAdmin(ctx, database.Queries, *email, *fullName, password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed administrator")
	}
	if !created {
		log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("Administrator already exists; nothing to do")
		return
	}
	log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("Administrator created")
}

// seedAdmin creates the administrator unless a user with that email exists.
func seedAdmin(ctx context.Context, q *dbgen.Queries, email, fullName, password string) (dbgen.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := q.GetUserByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return dbgen.User{}, false, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return dbgen.User{}, false, err
	}
	user, err := q.CreateUser(ctx, dbgen.CreateUserParams{
		Email:        email,
		PasswordHash: sql.NullString{String: hash, Valid: true},
		FullName:     strings.TrimSpace(fullName),
		Role:         authz.RoleAdmin,
	})
	if err != nil {
		return dbgen.User{}, false, err
	}
	return user, true, nil
}
