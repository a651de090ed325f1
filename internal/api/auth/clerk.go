package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Fixturely/internal/cognito"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

// clerkInitialized indicates whether the Clerk SDK has been initialized
var clerkInitialized bool

// InitClerk initializes Clerk SDK with the secret key
func InitClerk(secretKey string) {
	if secretKey == "" {
		log.Info().Msg("Clerk secret key not configured; hosted sign-in disabled")
		return
	}
	clerk.SetKey(secretKey)
	clerkInitialized = true
	log.Info().Msg("Clerk SDK initialized")
}

// HandleClerkCallback handles the redirect after Clerk authentication.
// It maps the Clerk user to an active local administrator and starts a local session.
func HandleClerkCallback(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !clerkInitialized {
		logger.Error().Msg("Clerk not configured")
		http.Error(w, "Authentication service not available", http.StatusServiceUnavailable)
		return
	}

	claims, ok := clerk.SessionClaimsFromContext(r.Context())
	if !ok {
		logger.Warn().Msg("No Clerk session claims in context")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	clerkUser, err := user.Get(r.Context(), claims.Subject)
	if err != nil {
		logger.Error().Err(err).Str("clerk_user_id", claims.Subject).Msg("Failed to get Clerk user")
		http.Error(w, "Failed to verify user", http.StatusInternalServerError)
		return
	}

	localUser, err := findLocalUserFromClerk(r.Context(), clerkUser)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warn().
				Str("clerk_user_id", claims.Subject).
				Msg("Clerk user has no matching local account")
			http.Error(w, "Account not found. Ask an administrator to create it.", http.StatusForbidden)
			return
		}
		logger.Error().Err(err).Msg("Failed to look up local user")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if localUser.Status != userStatusActive {
		logger.Warn().Int64("user_id", localUser.ID).Msg("Clerk sign-in for disabled account")
		http.Error(w, "Account disabled", http.StatusForbidden)
		return
	}

	if err := CreateSession(w, localUser.ID, SessionTypeClerk); err != nil {
		logger.Error().Err(err).Int64("user_id", localUser.ID).Msg("Failed to create session")
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("user_id", localUser.ID).Str("role", localUser.Role).Msg("Clerk sign-in completed")
	http.Redirect(w, r, "/", http.StatusFound)
}

// findLocalUserFromClerk looks up the local user by email or phone from Clerk user data.
// Primary identifiers are tried before the rest.
func findLocalUserFromClerk(ctx context.Context, clerkUser *clerk.User) (dbgen.User, error) {
	if queries == nil {
		return dbgen.User{}, errors.New("database not initialized")
	}

	var emails, phones []string
	for _, email := range clerkUser.EmailAddresses {
		if clerkUser.PrimaryEmailAddressID != nil && email.ID == *clerkUser.PrimaryEmailAddressID {
			emails = append([]string{email.EmailAddress}, emails...)
			continue
		}
		emails = append(emails, email.EmailAddress)
	}
	for _, phone := range clerkUser.PhoneNumbers {
		normalized := cognito.NormalizePhone(phone.PhoneNumber)
		if normalized == "" {
			continue
		}
		if clerkUser.PrimaryPhoneNumberID != nil && phone.ID == *clerkUser.PrimaryPhoneNumberID {
			phones = append([]string{normalized}, phones...)
			continue
		}
		phones = append(phones, normalized)
	}

	for _, email := range emails {
		found, err := queries.GetUserByEmail(ctx, email)
		if err == nil {
			return found, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return dbgen.User{}, err
		}
	}

	for _, phone := range phones {
		found, err := queries.GetUserByPhone(ctx, sql.NullString{String: phone, Valid: true})
		if err == nil {
			return found, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return dbgen.User{}, err
		}
	}

	return dbgen.User{}, sql.ErrNoRows
}

// WithClerkSession is middleware that validates Clerk session tokens
// and adds session claims to the request context
func WithClerkSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !clerkInitialized {
			next.ServeHTTP(w, r)
			return
		}

		sessionToken, err := r.Cookie("__session")
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := jwt.Verify(r.Context(), &jwt.VerifyParams{
			Token: sessionToken.Value,
		})
		if err != nil {
			log.Ctx(r.Context()).Debug().Err(err).Msg("Invalid Clerk session token")
			next.ServeHTTP(w, r)
			return
		}

		ctx := clerk.ContextWithSessionClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
