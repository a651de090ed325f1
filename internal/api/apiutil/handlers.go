package apiutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/authz"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

// WriteHandlerError replies with the status and message of a HandlerError
// and logs the wrapped cause for server errors. Other errors become a 500.
func WriteHandlerError(w http.ResponseWriter, r *http.Request, err error) {
	var handlerErr HandlerError
	if !errors.As(err, &handlerErr) {
		log.Ctx(r.Context()).Error().Err(err).Msg("Unhandled handler error")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if handlerErr.Status >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(handlerErr.Err).Msg(handlerErr.Message)
	}
	http.Error(w, handlerErr.Message, handlerErr.Status)
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

func IsJSONRequest(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

// FirstNonEmpty returns the first value that is non-empty after trimming.
func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// RenderHTMLComponent renders component with any extra headers set first.
// It logs logMsg and replies 500 with errMsg when rendering fails.
func RenderHTMLComponent(ctx context.Context, w http.ResponseWriter, component templ.Component, headers map[string]string, logMsg string, errMsg string) bool {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg(logMsg)
		http.Error(w, errMsg, http.StatusInternalServerError)
		return false
	}

	for key, value := range headers {
		w.Header().Set(key, value)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to write HTML response")
		return false
	}
	return true
}

// RequireAccess runs check and writes 401/403/500 when it fails.
// scope names the resource for the log line.
func RequireAccess(w http.ResponseWriter, r *http.Request, scope string, check func(context.Context) error) bool {
	logger := log.Ctx(r.Context())
	user := authz.UserFromContext(r.Context())
	err := check(r.Context())
	if err == nil {
		return true
	}

	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		logger.Warn().Str("scope", scope).Msg("Access denied: unauthenticated")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, authz.ErrForbidden):
		logEvent := logger.Warn().Str("scope", scope)
		if user != nil {
			logEvent = logEvent.Int64("user_id", user.ID).Str("role", user.Role)
		}
		logEvent.Msg("Access denied: forbidden")
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		logEvent := logger.Error().Err(err).Str("scope", scope)
		if user != nil {
			logEvent = logEvent.Int64("user_id", user.ID)
		}
		logEvent.Msg("Access denied: error")
		http.Error(w, "Failed to authorize request", http.StatusInternalServerError)
	}
	return false
}

func RequireLeagueAccess(w http.ResponseWriter, r *http.Request, leagueID int64) bool {
	return RequireAccess(w, r, fmt.Sprintf("league:%d", leagueID), func(ctx context.Context) error {
		return authz.RequireLeagueAccess(ctx, leagueID)
	})
}

func RequireCupAccess(w http.ResponseWriter, r *http.Request, cupID int64) bool {
	return RequireAccess(w, r, fmt.Sprintf("cup:%d", cupID), func(ctx context.Context) error {
		return authz.RequireCupAccess(ctx, cupID)
	})
}

func RequireTeamAccess(w http.ResponseWriter, r *http.Request, teamID, leagueID int64) bool {
	return RequireAccess(w, r, fmt.Sprintf("team:%d", teamID), func(ctx context.Context) error {
		return authz.RequireTeamAccess(ctx, teamID, leagueID)
	})
}

func RequireMatchOfficial(w http.ResponseWriter, r *http.Request, matchID, leagueID int64, refereeID sql.NullInt64) bool {
	return RequireAccess(w, r, fmt.Sprintf("match:%d", matchID), func(ctx context.Context) error {
		return authz.RequireMatchOfficial(ctx, leagueID, refereeID)
	})
}

func RequireRole(w http.ResponseWriter, r *http.Request, roles ...string) bool {
	return RequireAccess(w, r, "role:"+strings.Join(roles, ","), func(ctx context.Context) error {
		return authz.RequireRole(ctx, roles...)
	})
}
