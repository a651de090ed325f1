// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api"
	"github.com/codr1/Fixturely/internal/api/announcements"
	"github.com/codr1/Fixturely/internal/api/auth"
	"github.com/codr1/Fixturely/internal/api/authz"
	"github.com/codr1/Fixturely/internal/api/cups"
	"github.com/codr1/Fixturely/internal/api/dashboard"
	"github.com/codr1/Fixturely/internal/api/leagues"
	"github.com/codr1/Fixturely/internal/api/live"
	"github.com/codr1/Fixturely/internal/api/matches"
	"github.com/codr1/Fixturely/internal/api/players"
	"github.com/codr1/Fixturely/internal/api/search"
	"github.com/codr1/Fixturely/internal/api/sponsorships"
	"github.com/codr1/Fixturely/internal/cognito"
	"github.com/codr1/Fixturely/internal/config"
	"github.com/codr1/Fixturely/internal/db"
	"github.com/codr1/Fixturely/internal/email"
	leaguesvc "github.com/codr1/Fixturely/internal/leagues"
	"github.com/codr1/Fixturely/internal/storage"
)

// dependencies holds the optional external services. Each field stays a nil
// interface when its service is not configured.
type dependencies struct {
	sender      email.EmailSender
	uploader    storage.Uploader
	provisioner auth.UserProvisioner
}

func buildDependencies(cfg *config.Config) (dependencies, error) {
	var deps dependencies

	if cfg.EmailEnabled() {
		client, err := email.NewSESClient(cfg.Secrets.AWSAccessKeyID, cfg.Secrets.AWSSecretAccessKey, cfg.Secrets.AWSRegion, cfg.Email.Sender)
		if err != nil {
			return deps, fmt.Errorf("ses: %w", err)
		}
		deps.sender = client
		log.Info().Str("sender", cfg.Email.Sender).Msg("Email notifications enabled")
	} else {
		log.Info().Msg("Email not configured; notifications disabled")
	}

	if cfg.StorageEnabled() {
		uploader, err := storage.NewS3Uploader(storage.S3Config{
			AccessKeyID:     cfg.Secrets.AWSAccessKeyID,
			SecretAccessKey: cfg.Secrets.AWSSecretAccessKey,
			Region:          cfg.Secrets.AWSRegion,
			Bucket:          cfg.Storage.Bucket,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
			Endpoint:        cfg.Storage.Endpoint,
		})
		if err != nil {
			return deps, fmt.Errorf("s3: %w", err)
		}
		deps.uploader = uploader
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("Logo uploads enabled")
	}

	if cfg.CognitoEnabled() {
		client, err := cognito.NewClient(cfg.Auth.CognitoPoolID, cfg.Secrets.AWSAccessKeyID, cfg.Secrets.AWSSecretAccessKey)
		if err != nil {
			return deps, fmt.Errorf("cognito: %w", err)
		}
		deps.provisioner = client
		log.Info().Str("pool_id", cfg.Auth.CognitoPoolID).Msg("Cognito user provisioning enabled")
	}

	auth.InitClerk(cfg.Secrets.ClerkSecretKey)
	return deps, nil
}

func initHandlers(cfg *config.Config, database *db.DB, service *leaguesvc.Service, hub *live.Hub, deps dependencies) {
	auth.InitHandlers(database.Queries, cfg, deps.provisioner)
	leagues.InitHandlers(database, service, deps.uploader)
	cups.InitHandlers(database, service, deps.uploader)
	matches.InitHandlers(database, service, deps.sender)
	players.InitHandlers(database, deps.sender)
	announcements.InitHandlers(database.Queries)
	sponsorships.InitHandlers(database.Queries, cfg, deps.sender)
	dashboard.InitHandlers(database)
	search.InitHandlers(database.Queries)
	live.InitHandlers(hub)
}

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithAuth,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	// Register routes
	registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
	})

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Auth
	mux.HandleFunc("POST /api/v1/auth/login", auth.HandleLogin)
	mux.HandleFunc("POST /api/v1/auth/logout", auth.HandleLogout)
	mux.HandleFunc("GET /api/v1/auth/me", auth.HandleMe)
	mux.Handle("GET /auth/clerk/callback", auth.WithClerkSession(http.HandlerFunc(auth.HandleClerkCallback)))
	mux.HandleFunc("GET /api/v1/admin/users", auth.HandleListUsers)
	mux.HandleFunc("POST /api/v1/admin/users", auth.HandleCreateUser)
	mux.HandleFunc("PUT /api/v1/admin/users/{id}/status", auth.HandleUpdateUserStatus)
	mux.HandleFunc("DELETE /api/v1/admin/users/{id}", auth.HandleDeleteUser)

	// Dashboard and search
	mux.Handle("GET /admin/dashboard", api.WithRole(authz.Roles...)(http.HandlerFunc(dashboard.HandleDashboardPage)))
	mux.HandleFunc("GET /api/v1/dashboard", dashboard.HandleDashboardMetrics)
	mux.HandleFunc("GET /api/v1/search", search.HandleSearch)

	// Leagues and divisions
	mux.HandleFunc("GET /api/v1/leagues", leagues.HandleLeaguesList)
	mux.HandleFunc("GET /api/v1/leagues/archived", leagues.HandleArchivedLeaguesList)
	mux.HandleFunc("POST /api/v1/leagues", leagues.HandleLeagueCreate)
	mux.HandleFunc("GET /api/v1/leagues/{id}", leagues.HandleLeagueDetail)
	mux.HandleFunc("PUT /api/v1/leagues/{id}", leagues.HandleLeagueUpdate)
	mux.HandleFunc("DELETE /api/v1/leagues/{id}", leagues.HandleLeagueDelete)
	mux.HandleFunc("POST /api/v1/leagues/{id}/archive", leagues.HandleLeagueArchive)
	mux.HandleFunc("POST /api/v1/leagues/{id}/restore", leagues.HandleLeagueRestore)
	mux.HandleFunc("GET /api/v1/leagues/{id}/divisions", leagues.HandleDivisionsList)
	mux.HandleFunc("POST /api/v1/leagues/{id}/divisions", leagues.HandleDivisionCreate)
	mux.HandleFunc("GET /api/v1/divisions/{id}", leagues.HandleDivisionDetail)
	mux.HandleFunc("PUT /api/v1/divisions/{id}", leagues.HandleDivisionUpdate)
	mux.HandleFunc("DELETE /api/v1/divisions/{id}", leagues.HandleDivisionDelete)
	mux.HandleFunc("POST /api/v1/divisions/{id}/fixtures/generate", leagues.HandleGenerateFixtures)
	mux.HandleFunc("POST /api/v1/divisions/{id}/fixtures/regenerate", leagues.HandleRegenerateFixtures)
	mux.HandleFunc("GET /api/v1/divisions/{id}/fixtures", leagues.HandleFixturesList)
	mux.HandleFunc("DELETE /api/v1/divisions/{id}/fixtures", leagues.HandleFixturesClear)
	mux.HandleFunc("GET /api/v1/divisions/{id}/standings", leagues.HandleDivisionStandings)
	mux.HandleFunc("POST /api/v1/divisions/{id}/standings/recompute", leagues.HandleDivisionStandingsRecompute)
	mux.HandleFunc("GET /api/v1/divisions/{id}/top-scorers", leagues.HandleDivisionTopScorers)
	mux.HandleFunc("GET /api/v1/divisions/{id}/teams", leagues.HandleTeamsList)
	mux.HandleFunc("POST /api/v1/divisions/{id}/teams", leagues.HandleTeamCreate)
	mux.HandleFunc("GET /api/v1/teams/{id}", leagues.HandleTeamDetail)
	mux.HandleFunc("PUT /api/v1/teams/{id}", leagues.HandleTeamUpdate)
	mux.HandleFunc("DELETE /api/v1/teams/{id}", leagues.HandleTeamDelete)
	mux.HandleFunc("POST /api/v1/teams/{id}/logo", leagues.HandleTeamLogoUpload)

	// Matches and events
	mux.HandleFunc("GET /api/v1/divisions/{id}/matches", matches.HandleDivisionMatchesList)
	mux.HandleFunc("POST /api/v1/divisions/{id}/matches", matches.HandleMatchCreate)
	mux.HandleFunc("GET /api/v1/matches/{id}", matches.HandleMatchDetail)
	mux.HandleFunc("PUT /api/v1/matches/{id}", matches.HandleMatchDetailsUpdate)
	mux.HandleFunc("DELETE /api/v1/matches/{id}", matches.HandleMatchDelete)
	mux.HandleFunc("PUT /api/v1/matches/{id}/result", matches.HandleMatchResultUpdate)
	mux.HandleFunc("GET /api/v1/matches/{id}/events", matches.HandleMatchEventsList)
	mux.HandleFunc("POST /api/v1/matches/{id}/events", matches.HandleMatchEventCreate)
	mux.HandleFunc("DELETE /api/v1/matches/{id}/events/{event_id}", matches.HandleMatchEventDelete)
	mux.HandleFunc("GET /api/v1/officials/me/matches", matches.HandleOfficialMatches)

	// Players and transfers
	mux.HandleFunc("GET /api/v1/teams/{id}/players", players.HandleTeamPlayersList)
	mux.HandleFunc("POST /api/v1/teams/{id}/players", players.HandlePlayerCreate)
	mux.HandleFunc("GET /api/v1/players/unattached", players.HandleUnattachedPlayersList)
	mux.HandleFunc("GET /api/v1/players/{id}", players.HandlePlayerDetail)
	mux.HandleFunc("PUT /api/v1/players/{id}", players.HandlePlayerUpdate)
	mux.HandleFunc("DELETE /api/v1/players/{id}", players.HandlePlayerDelete)
	mux.HandleFunc("GET /api/v1/transfers", players.HandleTransfersList)
	mux.HandleFunc("POST /api/v1/transfers", players.HandleTransferRequest)
	mux.HandleFunc("POST /api/v1/transfers/{id}/approve", players.HandleTransferApprove)
	mux.HandleFunc("POST /api/v1/transfers/{id}/reject", players.HandleTransferReject)

	// Cups
	mux.HandleFunc("GET /api/v1/cups", cups.HandleCupsList)
	mux.HandleFunc("POST /api/v1/cups", cups.HandleCupCreate)
	mux.HandleFunc("GET /api/v1/cups/{id}", cups.HandleCupDetail)
	mux.HandleFunc("PUT /api/v1/cups/{id}", cups.HandleCupUpdate)
	mux.HandleFunc("DELETE /api/v1/cups/{id}", cups.HandleCupDelete)
	mux.HandleFunc("POST /api/v1/cups/{id}/status", cups.HandleCupStatusUpdate)
	mux.HandleFunc("GET /api/v1/cups/{id}/teams", cups.HandleCupTeamsList)
	mux.HandleFunc("POST /api/v1/cups/{id}/teams", cups.HandleCupTeamCreate)
	mux.HandleFunc("PUT /api/v1/cups/{id}/teams/{team_id}", cups.HandleCupTeamUpdate)
	mux.HandleFunc("DELETE /api/v1/cups/{id}/teams/{team_id}", cups.HandleCupTeamDelete)
	mux.HandleFunc("POST /api/v1/cups/{id}/teams/{team_id}/logo", cups.HandleCupTeamLogoUpload)
	mux.HandleFunc("GET /api/v1/cups/{id}/teams/{team_id}/players", cups.HandleCupPlayersList)
	mux.HandleFunc("POST /api/v1/cups/{id}/teams/{team_id}/players", cups.HandleCupPlayerCreate)
	mux.HandleFunc("DELETE /api/v1/cups/{id}/teams/{team_id}/players/{player_id}", cups.HandleCupPlayerDelete)
	mux.HandleFunc("GET /api/v1/cups/{id}/groups", cups.HandleCupGroupsList)
	mux.HandleFunc("POST /api/v1/cups/{id}/groups", cups.HandleCupGroupCreate)
	mux.HandleFunc("POST /api/v1/cups/{id}/groups/draw", cups.HandleCupGroupsDraw)
	mux.HandleFunc("DELETE /api/v1/cups/{id}/groups/{group_id}", cups.HandleCupGroupDelete)
	mux.HandleFunc("GET /api/v1/cups/{id}/fixtures", cups.HandleCupFixturesList)
	mux.HandleFunc("POST /api/v1/cups/{id}/fixtures", cups.HandleCupFixtureCreate)
	mux.HandleFunc("POST /api/v1/cups/{id}/fixtures/generate", cups.HandleCupFixturesGenerate)
	mux.HandleFunc("PUT /api/v1/cups/{id}/fixtures/{match_id}", cups.HandleCupFixtureUpdate)
	mux.HandleFunc("DELETE /api/v1/cups/{id}/fixtures/{match_id}", cups.HandleCupFixtureDelete)
	mux.HandleFunc("GET /api/v1/cups/{id}/standings", cups.HandleCupStandings)
	mux.HandleFunc("POST /api/v1/cups/{id}/standings/recompute", cups.HandleCupStandingsRecompute)

	// Announcements and sponsorships
	mux.HandleFunc("GET /api/v1/announcements", announcements.HandlePublishedAnnouncements)
	mux.HandleFunc("GET /api/v1/admin/announcements", announcements.HandleAnnouncementsList)
	mux.HandleFunc("POST /api/v1/admin/announcements", announcements.HandleAnnouncementCreate)
	mux.HandleFunc("PUT /api/v1/admin/announcements/{id}", announcements.HandleAnnouncementUpdate)
	mux.HandleFunc("DELETE /api/v1/admin/announcements/{id}", announcements.HandleAnnouncementDelete)
	mux.HandleFunc("POST /api/v1/sponsorships", sponsorships.HandleInquirySubmit)
	mux.HandleFunc("GET /api/v1/admin/sponsorships", sponsorships.HandleInquiriesList)
	mux.HandleFunc("PUT /api/v1/admin/sponsorships/{id}/status", sponsorships.HandleInquiryStatusUpdate)

	// Live updates
	mux.HandleFunc("GET /ws/matches/{id}", live.HandleMatchSocket)
	mux.HandleFunc("GET /ws/divisions/{id}", live.HandleDivisionSocket)
	mux.HandleFunc("GET /ws/cups/{id}", live.HandleCupSocket)

	// Static file handling with logging and environment awareness
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		// Default to the build directory if not specified
		staticDir = "build/bin/static"
	}
	fs := http.FileServer(http.Dir(staticDir))

	mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
