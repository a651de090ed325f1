package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/apiutil"
	"github.com/codr1/Fixturely/internal/api/authz"
	"github.com/codr1/Fixturely/internal/api/htmx"
	"github.com/codr1/Fixturely/internal/cognito"
	"github.com/codr1/Fixturely/internal/config"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	"github.com/codr1/Fixturely/internal/ratelimit"
)

const authQueryTimeout = 5 * time.Second

// UserProvisioner mirrors administrator accounts into an external identity pool.
type UserProvisioner interface {
	CreateUser(ctx context.Context, user cognito.NewUser) error
	DisableUser(ctx context.Context, email string) error
	EnableUser(ctx context.Context, email string) error
}

var (
	queries     *dbgen.Queries
	appConfig   *config.Config
	limiter     *ratelimit.Limiter
	provisioner UserProvisioner
)

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type userResponse struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	FullName        string `json:"fullName"`
	Phone           string `json:"phone,omitempty"`
	Role            string `json:"role"`
	ManagedLeagueID *int64 `json:"managedLeagueId,omitempty"`
	ManagedCupID    *int64 `json:"managedCupId,omitempty"`
	ManagedTeamID   *int64 `json:"managedTeamId,omitempty"`
	Status          string `json:"status"`
}

// InitHandlers must be called during server startup before handling requests.
// provisioner may be nil when no identity pool is configured.
func InitHandlers(q *dbgen.Queries, cfg *config.Config, p UserProvisioner) {
	queries = q
	appConfig = cfg
	provisioner = p
	if limiter != nil {
		limiter.Close()
	}
	limiter = ratelimit.New(nil)
}

// POST /api/v1/auth/login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil || limiter == nil {
		logger.Error().Msg("Auth handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	req, err := decodeLoginRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" || req.Password == "" {
		http.Error(w, "Identifier and password are required", http.StatusBadRequest)
		return
	}

	ip := ratelimit.GetClientIP(r, appConfig != nil && appConfig.App.TrustProxy)
	if result := limiter.CheckLogin(identifier, ip); !result.Allowed {
		ratelimit.LogRateLimitExceeded("login", identifier, ip, result.Reason)
		w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())+1))
		http.Error(w, "Too many login attempts. Try again later.", http.StatusTooManyRequests)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	user, err := lookupUser(ctx, identifier)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Msg("Failed to look up user for login")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if err != nil || !user.PasswordHash.Valid || !VerifyPassword(user.PasswordHash.String, req.Password) || user.Status != userStatusActive {
		if limiter.RecordLoginFailure(identifier, ip) {
			ratelimit.LogRateLimitExceeded("login", identifier, ip, "lockout_started")
		}
		logger.Warn().Str("identifier", ratelimit.SanitizeIdentifier(identifier)).Msg("Login rejected")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	limiter.ResetLogin(identifier)
	if err := CreateSession(w, user.ID, SessionTypeLocal); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to create session")
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("User logged in")

	if htmx.IsRequest(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, newUserResponse(user)); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to write login response")
	}
}

// POST /api/v1/auth/logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ClearSession(w, r)

	if htmx.IsRequest(r) {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/auth/me
func HandleMe(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user := authz.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	record, err := queries.GetUserByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to load current user")
		http.Error(w, "Failed to load user", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, newUserResponse(record)); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to write user response")
	}
}

func lookupUser(ctx context.Context, identifier string) (dbgen.User, error) {
	if cognito.IsPhoneNumber(identifier) {
		return queries.GetUserByPhone(ctx, sql.NullString{String: cognito.NormalizePhone(identifier), Valid: true})
	}
	return queries.GetUserByEmail(ctx, identifier)
}

func decodeLoginRequest(r *http.Request) (loginRequest, error) {
	var req loginRequest
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return req, fmt.Errorf("invalid JSON body")
		}
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("invalid form data")
	}
	req.Identifier = apiutil.FirstNonEmpty(r.FormValue("identifier"), r.FormValue("email"))
	req.Password = r.FormValue("password")
	return req, nil
}

func newUserResponse(user dbgen.User) userResponse {
	return userResponse{
		ID:              user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		Phone:           user.Phone.String,
		Role:            user.Role,
		ManagedLeagueID: nullInt64Ptr(user.ManagedLeagueID),
		ManagedCupID:    nullInt64Ptr(user.ManagedCupID),
		ManagedTeamID:   nullInt64Ptr(user.ManagedTeamID),
		Status:          user.Status,
	}
}
