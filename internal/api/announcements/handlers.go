// internal/api/announcements/handlers.go
package announcements

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/api/apiutil"
	"github.com/codr1/Fixturely/internal/api/authz"
	"github.com/codr1/Fixturely/internal/api/htmx"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

const (
	announcementQueryTimeout = 5 * time.Second
	announcementIDPathKey    = "id"
	defaultPublishedLimit    = 10
	maxPublishedLimit        = 50
	maxTitleLength           = 200
	priorityNormal           = "normal"
)

var priorities = []string{"low", priorityNormal, "high"}

var queries *dbgen.Queries

type announcementRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Priority  string `json:"priority"`
	Published bool   `json:"published"`
}

func InitHandlers(q *dbgen.Queries) {
	queries = q
}

// GET /api/v1/announcements
func HandlePublishedAnnouncements(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	limit := int64(defaultPublishedLimit)
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(parsed, maxPublishedLimit)
	}

	ctx, cancel := context.WithTimeout(r.Context(), announcementQueryTimeout)
	defer cancel()

	announcements, err := q.ListPublishedAnnouncements(ctx, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list published announcements")
		http.Error(w, "Failed to load announcements", http.StatusInternalServerError)
		return
	}
	writeList(w, r, announcements)
}

// GET /api/v1/admin/announcements
func HandleAnnouncementsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !requireEditor(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), announcementQueryTimeout)
	defer cancel()

	announcements, err := q.ListAnnouncements(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list announcements")
		http.Error(w, "Failed to load announcements", http.StatusInternalServerError)
		return
	}
	writeList(w, r, announcements)
}

// POST /api/v1/admin/announcements
func HandleAnnouncementCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !requireEditor(w, r) {
		return
	}

	req, err := decodeAnnouncementRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateAnnouncementRequest(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var authorID sql.NullInt64
	if user := authz.UserFromContext(r.Context()); user != nil && user.ID > 0 {
		authorID = sql.NullInt64{Int64: user.ID, Valid: true}
	}

	ctx, cancel := context.WithTimeout(r.Context(), announcementQueryTimeout)
	defer cancel()

	announcement, err := q.CreateAnnouncement(ctx, dbgen.CreateAnnouncementParams{
		Title:     req.Title,
		Body:      req.Body,
		Priority:  req.Priority,
		Published: req.Published,
		AuthorID:  authorID,
	})
	if err != nil {
		if apiutil.IsSQLiteForeignKeyViolation(err) {
			http.Error(w, "Unknown author", http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Msg("Failed to create announcement")
		http.Error(w, "Failed to create announcement", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("announcement_id", announcement.ID).Bool("published", announcement.Published).Msg("Announcement created")

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, announcementCardComponent(announcement), htmx.Trigger("announcementsChanged"), "Failed to render announcement", "Failed to render announcement")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusCreated, announcement); err != nil {
		logger.Error().Err(err).Int64("announcement_id", announcement.ID).Msg("Failed to write announcement response")
	}
}

// PUT /api/v1/admin/announcements/{id}
func HandleAnnouncementUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !requireEditor(w, r) {
		return
	}

	announcementID, err := apiutil.PathID(r, announcementIDPathKey)
	if err != nil {
		http.Error(w, "Invalid announcement ID", http.StatusBadRequest)
		return
	}

	req, err := decodeAnnouncementRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateAnnouncementRequest(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), announcementQueryTimeout)
	defer cancel()

	announcement, err := q.UpdateAnnouncement(ctx, dbgen.UpdateAnnouncementParams{
		Title:     req.Title,
		Body:      req.Body,
		Priority:  req.Priority,
		Published: req.Published,
		ID:        announcementID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Announcement not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("announcement_id", announcementID).Msg("Failed to update announcement")
		http.Error(w, "Failed to update announcement", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, announcementCardComponent(announcement), htmx.Trigger("announcementsChanged"), "Failed to render announcement", "Failed to render announcement")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, announcement); err != nil {
		logger.Error().Err(err).Int64("announcement_id", announcement.ID).Msg("Failed to write announcement response")
	}
}

// DELETE /api/v1/admin/announcements/{id}
func HandleAnnouncementDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !requireEditor(w, r) {
		return
	}

	announcementID, err := apiutil.PathID(r, announcementIDPathKey)
	if err != nil {
		http.Error(w, "Invalid announcement ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), announcementQueryTimeout)
	defer cancel()

	deleted, err := q.DeleteAnnouncement(ctx, announcementID)
	if err != nil {
		logger.Error().Err(err).Int64("announcement_id", announcementID).Msg("Failed to delete announcement")
		http.Error(w, "Failed to delete announcement", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "Announcement not found", http.StatusNotFound)
		return
	}

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, deletedComponent(), htmx.Trigger("announcementsChanged"), "Failed to render delete response", "Failed to render response")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requireEditor(w http.ResponseWriter, r *http.Request) bool {
	return apiutil.RequireRole(w, r, authz.RoleLeagueAdmin, authz.RoleCupAdmin)
}

func writeList(w http.ResponseWriter, r *http.Request, announcements []dbgen.Announcement) {
	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, announcementsListComponent(announcements), nil, "Failed to render announcements", "Failed to render announcements")
		return
	}
	if announcements == nil {
		announcements = []dbgen.Announcement{}
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"announcements": announcements}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write announcements response")
	}
}

func decodeAnnouncementRequest(r *http.Request) (announcementRequest, error) {
	var req announcementRequest
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			if errors.Is(err, io.EOF) {
				return req, errors.New("missing request body")
			}
			return req, errors.New("invalid JSON body")
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, errors.New("invalid form data")
	}
	req.Title = r.FormValue("title")
	req.Body = r.FormValue("body")
	req.Priority = r.FormValue("priority")
	req.Published = apiutil.ParseBool(r.FormValue("published"))
	return req, nil
}

func validateAnnouncementRequest(req *announcementRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Body = strings.TrimSpace(req.Body)
	req.Priority = strings.ToLower(strings.TrimSpace(req.Priority))

	if req.Title == "" {
		return apiutil.FieldError{Field: "title", Reason: "is required"}
	}
	if len(req.Title) > maxTitleLength {
		return apiutil.FieldError{Field: "title", Reason: "must be 200 characters or fewer"}
	}
	if req.Body == "" {
		return apiutil.FieldError{Field: "body", Reason: "is required"}
	}
	if req.Priority == "" {
		req.Priority = priorityNormal
	}
	if !slices.Contains(priorities, req.Priority) {
		return apiutil.FieldError{Field: "priority", Reason: "must be low, normal, or high"}
	}
	return nil
}

func loadQueries() *dbgen.Queries {
	return queries
}
