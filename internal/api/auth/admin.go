package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/mail"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/apiutil"
	"github.com/codr1/Fixturely/internal/api/authz"
	"github.com/codr1/Fixturely/internal/api/htmx"
	"github.com/codr1/Fixturely/internal/cognito"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

type createUserRequest struct {
	Email           string `json:"email"`
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	Role            string `json:"role"`
	Password        string `json:"password"`
	ManagedLeagueID *int64 `json:"managedLeagueId"`
	ManagedCupID    *int64 `json:"managedCupId"`
	ManagedTeamID   *int64 `json:"managedTeamId"`
}

type userStatusRequest struct {
	Status string `json:"status"`
}

// GET /api/v1/admin/users
func HandleListUsers(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !apiutil.RequireRole(w, r, authz.RoleAdmin) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	users, err := queries.ListUsers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list users")
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, usersListComponent(users), nil, "Failed to render users list", "Failed to render list") {
			return
		}
		return
	}

	response := make([]userResponse, 0, len(users))
	for _, user := range users {
		response = append(response, newUserResponse(user))
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"users": response}); err != nil {
		logger.Error().Err(err).Msg("Failed to write users response")
	}
}

// POST /api/v1/admin/users
// Creates a local administrator account and mirrors it into the identity pool
// when one is configured.
func HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !apiutil.RequireRole(w, r, authz.RoleAdmin) {
		return
	}

	req, err := decodeCreateUserRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, err := buildCreateUserParams(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	user, err := queries.CreateUser(ctx, params)
	if err != nil {
		switch {
		case apiutil.IsSQLiteUniqueViolation(err):
			http.Error(w, "A user with that email already exists", http.StatusConflict)
		case apiutil.IsSQLiteForeignKeyViolation(err):
			http.Error(w, "Managed league, cup, or team not found", http.StatusNotFound)
		default:
			logger.Error().Err(err).Str("role", params.Role).Msg("Failed to create user")
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
		}
		return
	}

	if provisioner != nil {
		err := provisioner.CreateUser(ctx, cognito.NewUser{
			Email:    user.Email,
			FullName: user.FullName,
			Phone:    user.Phone.String,
			Role:     user.Role,
		})
		switch {
		case err == nil:
		case errors.Is(err, cognito.ErrCognitoUserExists):
			logger.Info().Int64("user_id", user.ID).Msg("Identity already provisioned")
		default:
			logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to provision identity")
			if _, delErr := queries.DeleteUser(ctx, user.ID); delErr != nil {
				logger.Error().Err(delErr).Int64("user_id", user.ID).Msg("Failed to roll back local user")
			}
			http.Error(w, "Failed to provision identity", http.StatusBadGateway)
			return
		}
	}

	logger.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("User created")

	if htmx.IsRequest(r) {
		headers := htmx.Trigger("refreshUsersList")
		if !apiutil.RenderHTMLComponent(r.Context(), w, userRowComponent(user), headers, "Failed to render user", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, newUserResponse(user)); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to write user response")
	}
}

// PUT /api/v1/admin/users/{id}/status
func HandleUpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !apiutil.RequireRole(w, r, authz.RoleAdmin) {
		return
	}

	userID, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req userStatusRequest
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
	} else {
		req.Status = apiutil.FirstNonEmpty(r.FormValue("status"))
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != "active" && status != "disabled" {
		http.Error(w, "status must be active or disabled", http.StatusBadRequest)
		return
	}
	if current := authz.UserFromContext(r.Context()); current != nil && current.ID == userID && status == "disabled" {
		http.Error(w, "You cannot disable your own account", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	affected, err := queries.UpdateUserStatus(ctx, dbgen.UpdateUserStatusParams{Status: status, ID: userID})
	if err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to update user status")
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	user, err := queries.GetUserByID(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to reload user")
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}

	if status == "disabled" {
		clearExistingSessionsForUser(userID)
	}
	if provisioner != nil {
		var syncErr error
		if status == "disabled" {
			syncErr = provisioner.DisableUser(ctx, user.Email)
		} else {
			syncErr = provisioner.EnableUser(ctx, user.Email)
		}
		if syncErr != nil {
			logger.Warn().Err(syncErr).Int64("user_id", userID).Str("status", status).Msg("Failed to sync identity status")
		}
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, userRowComponent(user), nil, "Failed to render user", "Failed to render response") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, newUserResponse(user)); err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to write user response")
	}
}

// DELETE /api/v1/admin/users/{id}
func HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !apiutil.RequireRole(w, r, authz.RoleAdmin) {
		return
	}

	userID, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	if current := authz.UserFromContext(r.Context()); current != nil && current.ID == userID {
		http.Error(w, "You cannot delete your own account", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	affected, err := queries.DeleteUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to delete user")
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	clearExistingSessionsForUser(userID)

	if htmx.IsRequest(r) {
		htmx.SetTrigger(w, "refreshUsersList")
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"deleted": userID}); err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to write delete response")
	}
}

func decodeCreateUserRequest(r *http.Request) (createUserRequest, error) {
	var req createUserRequest
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			if errors.Is(err, io.EOF) {
				return req, fmt.Errorf("missing request body")
			}
			return req, fmt.Errorf("invalid JSON body")
		}
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("invalid form data")
	}

	var err error
	req.Email = apiutil.FirstNonEmpty(r.FormValue("email"))
	req.FullName = apiutil.FirstNonEmpty(r.FormValue("full_name"), r.FormValue("fullName"))
	req.Phone = apiutil.FirstNonEmpty(r.FormValue("phone"))
	req.Role = apiutil.FirstNonEmpty(r.FormValue("role"))
	req.Password = r.FormValue("password")
	if req.ManagedLeagueID, err = apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("managed_league_id"), r.FormValue("managedLeagueId")), "managed_league_id"); err != nil {
		return req, err
	}
	if req.ManagedCupID, err = apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("managed_cup_id"), r.FormValue("managedCupId")), "managed_cup_id"); err != nil {
		return req, err
	}
	if req.ManagedTeamID, err = apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("managed_team_id"), r.FormValue("managedTeamId")), "managed_team_id"); err != nil {
		return req, err
	}
	return req, nil
}

// buildCreateUserParams validates the request and keeps only the scope that
// matches the role.
func buildCreateUserParams(req createUserRequest) (dbgen.CreateUserParams, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return dbgen.CreateUserParams{}, apiutil.FieldError{Field: "email", Reason: "must be a valid email address"}
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return dbgen.CreateUserParams{}, apiutil.FieldError{Field: "fullName", Reason: "is required"}
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if !authz.IsValidRole(role) {
		return dbgen.CreateUserParams{}, apiutil.FieldError{Field: "role", Reason: "must be one of " + strings.Join(authz.Roles, ", ")}
	}

	params := dbgen.CreateUserParams{
		Email:    email,
		FullName: fullName,
		Role:     role,
	}

	if phone := strings.TrimSpace(req.Phone); phone != "" {
		normalized := cognito.NormalizePhone(phone)
		if normalized == "" {
			return dbgen.CreateUserParams{}, apiutil.FieldError{Field: "phone", Reason: "must be a valid phone number"}
		}
		params.Phone = sql.NullString{String: normalized, Valid: true}
	}

	if req.Password != "" {
		if err := ValidatePassword(req.Password); err != nil {
			return dbgen.CreateUserParams{}, apiutil.FieldError{Field: "password", Reason: strings.TrimPrefix(err.Error(), "password ")}
		}
		hash, err := HashPassword(req.Password)
		if err != nil {
			return dbgen.CreateUserParams{}, fmt.Errorf("hash password: %w", err)
		}
		params.PasswordHash = sql.NullString{String: hash, Valid: true}
	}

	switch role {
	case authz.RoleLeagueAdmin:
		if req.ManagedLeagueID == nil {
			return dbgen.CreateUserParams{}, apiutil.FieldError{Field: "managedLeagueId", Reason: "is required for league admins"}
		}
		params.ManagedLeagueID = apiutil.ToNullInt64(req.ManagedLeagueID)
	case authz.RoleCupAdmin:
		if req.ManagedCupID == nil {
			return dbgen.CreateUserParams{}, apiutil.FieldError{Field: "managedCupId", Reason: "is required for cup admins"}
		}
		params.ManagedCupID = apiutil.ToNullInt64(req.ManagedCupID)
	case authz.RoleTeamManager:
		if req.ManagedTeamID == nil {
			return dbgen.CreateUserParams{}, apiutil.FieldError{Field: "managedTeamId", Reason: "is required for team managers"}
		}
		params.ManagedTeamID = apiutil.ToNullInt64(req.ManagedTeamID)
	}

	return params, nil
}

func usersListComponent(users []dbgen.User) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div id="users-list" class="divide-y divide-gray-200">`)
		if len(users) == 0 {
			b.WriteString(`<p class="p-4 text-sm text-gray-500">No users yet.</p>`)
		}
		for _, user := range users {
			b.WriteString(buildUserRowHTML(user))
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func userRowComponent(user dbgen.User) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildUserRowHTML(user))
		return err
	})
}

func buildUserRowHTML(user dbgen.User) string {
	statusClass := "bg-green-100 text-green-800"
	if user.Status != userStatusActive {
		statusClass = "bg-gray-100 text-gray-600"
	}
	return fmt.Sprintf(
		`<div id="user-%d" class="flex items-center justify-between p-4"><div><p class="font-medium text-gray-900">%s</p><p class="text-sm text-gray-500">%s</p></div><div class="flex items-center gap-2"><span class="rounded px-2 py-1 text-xs font-medium bg-blue-100 text-blue-800">%s</span><span class="rounded px-2 py-1 text-xs font-medium %s">%s</span></div></div>`,
		user.ID,
		html.EscapeString(user.FullName),
		html.EscapeString(user.Email),
		html.EscapeString(strings.ReplaceAll(user.Role, "_", " ")),
		statusClass,
		html.EscapeString(user.Status),
	)
}
