// internal/api/sponsorships/handlers.go
package sponsorships

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/mail"
	"slices"
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
	"github.com/codr1/Fixturely/internal/email"
	"github.com/codr1/Fixturely/internal/ratelimit"
)

const (
	sponsorshipQueryTimeout = 5 * time.Second
	sponsorshipIDPathKey    = "id"
	maxMessageLength        = 4000
	statusNew               = "new"
)

var statuses = []string{statusNew, "contacted", "in_progress", "completed", "declined"}

var (
	queries     *dbgen.Queries
	appConfig   *config.Config
	emailSender email.EmailSender
	limiter     *ratelimit.Limiter
)

type inquiryRequest struct {
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Package     string `json:"package"`
	Message     string `json:"message"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// InitHandlers must be called during server startup before handling requests.
// sender may be nil, in which case inquiries are stored without notification.
func InitHandlers(q *dbgen.Queries, cfg *config.Config, sender email.EmailSender) {
	queries = q
	appConfig = cfg
	emailSender = sender
	if limiter != nil {
		limiter.Close()
	}
	limiter = ratelimit.New(nil)
}

// POST /api/v1/sponsorships
func HandleInquirySubmit(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	q := loadQueries()
	if q == nil || limiter == nil {
		logger.Error().Msg("Sponsorship handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	req, err := decodeInquiryRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, err := validateInquiryRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ip := ratelimit.GetClientIP(r, appConfig != nil && appConfig.App.TrustProxy)
	if result := limiter.CheckSubmit(params.Email, ip); !result.Allowed {
		ratelimit.LogRateLimitExceeded("sponsorship", params.Email, ip, result.Reason)
		w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())+1))
		http.Error(w, "Too many submissions, please try again later", http.StatusTooManyRequests)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sponsorshipQueryTimeout)
	defer cancel()

	inquiry, err := q.CreateSponsorship(ctx, params)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create sponsorship inquiry")
		http.Error(w, "Failed to submit inquiry", http.StatusInternalServerError)
		return
	}
	limiter.RecordSubmit(params.Email, ip)

	logger.Info().
		Int64("sponsorship_id", inquiry.ID).
		Str("email", ratelimit.SanitizeIdentifier(inquiry.Email)).
		Msg("Sponsorship inquiry submitted")

	notifyInquiry(r, inquiry)

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, submittedComponent(inquiry), nil, "Failed to render inquiry confirmation", "Failed to render confirmation")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusCreated, inquiry); err != nil {
		logger.Error().Err(err).Int64("sponsorship_id", inquiry.ID).Msg("Failed to write inquiry response")
	}
}

// GET /api/v1/admin/sponsorships
func HandleInquiriesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !apiutil.RequireRole(w, r, authz.RoleAdmin) {
		return
	}

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !slices.Contains(statuses, status) {
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sponsorshipQueryTimeout)
	defer cancel()

	inquiries, err := q.ListSponsorships(ctx, status)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list sponsorship inquiries")
		http.Error(w, "Failed to load inquiries", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, inquiriesListComponent(inquiries), nil, "Failed to render inquiries", "Failed to render inquiries")
		return
	}
	if inquiries == nil {
		inquiries = []dbgen.Sponsorship{}
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"sponsorships": inquiries}); err != nil {
		logger.Error().Err(err).Msg("Failed to write inquiries response")
	}
}

// PUT /api/v1/admin/sponsorships/{id}/status
func HandleInquiryStatusUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !apiutil.RequireRole(w, r, authz.RoleAdmin) {
		return
	}

	inquiryID, err := apiutil.PathID(r, sponsorshipIDPathKey)
	if err != nil {
		http.Error(w, "Invalid sponsorship ID", http.StatusBadRequest)
		return
	}

	var req statusRequest
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			if errors.Is(err, io.EOF) {
				http.Error(w, "missing request body", http.StatusBadRequest)
				return
			}
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}
		req.Status = r.FormValue("status")
	}
	req.Status = strings.TrimSpace(req.Status)
	if !slices.Contains(statuses, req.Status) {
		http.Error(w, apiutil.FieldError{Field: "status", Reason: "is not a valid inquiry status"}.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sponsorshipQueryTimeout)
	defer cancel()

	inquiry, err := q.UpdateSponsorshipStatus(ctx, dbgen.UpdateSponsorshipStatusParams{Status: req.Status, ID: inquiryID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Sponsorship inquiry not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("sponsorship_id", inquiryID).Msg("Failed to update sponsorship status")
		http.Error(w, "Failed to update inquiry", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("sponsorship_id", inquiry.ID).Str("status", inquiry.Status).Msg("Sponsorship status updated")

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, inquiryRowComponent(inquiry), htmx.Trigger("sponsorshipsChanged"), "Failed to render inquiry", "Failed to render inquiry")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, inquiry); err != nil {
		logger.Error().Err(err).Int64("sponsorship_id", inquiry.ID).Msg("Failed to write inquiry response")
	}
}

func notifyInquiry(r *http.Request, inquiry dbgen.Sponsorship) {
	if appConfig == nil || strings.TrimSpace(appConfig.Email.NotifyAddress) == "" {
		return
	}
	message := email.BuildSponsorshipInquiry(email.SponsorshipDetails{
		CompanyName: inquiry.CompanyName,
		ContactName: inquiry.ContactName,
		Email:       inquiry.Email,
		Phone:       inquiry.Phone.String,
		Package:     inquiry.Package.String,
		Message:     inquiry.Message.String,
	})
	email.SendAsync(context.WithoutCancel(r.Context()), emailSender, appConfig.Email.NotifyAddress, message, appConfig.Email.Sender, log.Ctx(r.Context()))
}

func decodeInquiryRequest(r *http.Request) (inquiryRequest, error) {
	var req inquiryRequest
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
	req.CompanyName = apiutil.FirstNonEmpty(r.FormValue("company_name"), r.FormValue("companyName"))
	req.ContactName = apiutil.FirstNonEmpty(r.FormValue("contact_name"), r.FormValue("contactName"))
	req.Email = r.FormValue("email")
	req.Phone = r.FormValue("phone")
	req.Package = r.FormValue("package")
	req.Message = r.FormValue("message")
	return req, nil
}

func validateInquiryRequest(req inquiryRequest) (dbgen.CreateSponsorshipParams, error) {
	params := dbgen.CreateSponsorshipParams{
		CompanyName: strings.TrimSpace(req.CompanyName),
		ContactName: strings.TrimSpace(req.ContactName),
		Package:     apiutil.ToNullString(strings.TrimSpace(req.Package)),
		Message:     apiutil.ToNullString(strings.TrimSpace(req.Message)),
	}
	if params.CompanyName == "" {
		return params, apiutil.FieldError{Field: "company_name", Reason: "is required"}
	}
	if params.ContactName == "" {
		return params, apiutil.FieldError{Field: "contact_name", Reason: "is required"}
	}

	rawEmail := strings.TrimSpace(req.Email)
	if rawEmail == "" {
		return params, apiutil.FieldError{Field: "email", Reason: "is required"}
	}
	address, err := mail.ParseAddress(rawEmail)
	if err != nil || address.Address != rawEmail {
		return params, apiutil.FieldError{Field: "email", Reason: "must be a valid email address"}
	}
	params.Email = strings.ToLower(address.Address)

	if rawPhone := strings.TrimSpace(req.Phone); rawPhone != "" {
		phone := cognito.NormalizePhone(rawPhone)
		if phone == "" {
			return params, apiutil.FieldError{Field: "phone", Reason: "must be a valid phone number"}
		}
		params.Phone = sql.NullString{String: phone, Valid: true}
	}

	if len(params.Message.String) > maxMessageLength {
		return params, apiutil.FieldError{Field: "message", Reason: "must be 4000 characters or fewer"}
	}
	return params, nil
}

func loadQueries() *dbgen.Queries {
	return queries
}
