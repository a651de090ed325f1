package authz

import (
	"context"
	"database/sql"
	"errors"
	"slices"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

const (
	RoleAdmin         = "admin"
	RoleLeagueAdmin   = "league_admin"
	RoleCupAdmin      = "cup_admin"
	RoleTeamManager   = "team_manager"
	RoleMatchOfficial = "match_official"
)

var Roles = []string{RoleAdmin, RoleLeagueAdmin, RoleCupAdmin, RoleTeamManager, RoleMatchOfficial}

type AuthUser struct {
	ID              int64
	Email           string
	FullName        string
	Role            string
	SessionType     string
	ManagedLeagueID *int64
	ManagedCupID    *int64
	ManagedTeamID   *int64
}

type userContextKey struct{}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the AuthUser stored in ctx.
// It returns nil if ctx is nil, if no user is stored, or if the stored value has a different type.
func UserFromContext(ctx context.Context) *AuthUser {
	if ctx == nil {
		return nil
	}

	user, ok := ctx.Value(userContextKey{}).(*AuthUser)
	if !ok {
		return nil
	}

	return user
}

func IsValidRole(role string) bool {
	return slices.Contains(Roles, role)
}

func IsAdmin(user *AuthUser) bool {
	return user != nil && user.Role == RoleAdmin
}

// RequireRole passes for admins and for any user holding one of roles.
func RequireRole(ctx context.Context, roles ...string) error {
	user := UserFromContext(ctx)
	if user == nil {
		return ErrUnauthenticated
	}
	if IsAdmin(user) || slices.Contains(roles, user.Role) {
		return nil
	}
	return ErrForbidden
}

func RequireLeagueAccess(ctx context.Context, leagueID int64) error {
	user := UserFromContext(ctx)
	if user == nil {
		return ErrUnauthenticated
	}
	if IsAdmin(user) || managesLeague(user, leagueID) {
		return nil
	}
	return ErrForbidden
}

func RequireCupAccess(ctx context.Context, cupID int64) error {
	user := UserFromContext(ctx)
	if user == nil {
		return ErrUnauthenticated
	}
	if IsAdmin(user) {
		return nil
	}
	if user.Role == RoleCupAdmin && user.ManagedCupID != nil && *user.ManagedCupID == cupID {
		return nil
	}
	return ErrForbidden
}

// RequireTeamAccess allows the team's manager and anyone administering the
// league the team plays in.
func RequireTeamAccess(ctx context.Context, teamID, leagueID int64) error {
	user := UserFromContext(ctx)
	if user == nil {
		return ErrUnauthenticated
	}
	if IsAdmin(user) || managesLeague(user, leagueID) {
		return nil
	}
	if user.Role == RoleTeamManager && user.ManagedTeamID != nil && *user.ManagedTeamID == teamID {
		return nil
	}
	return ErrForbidden
}

// RequireMatchOfficial allows the assigned referee of a match as well as the
// league's administrators.
func RequireMatchOfficial(ctx context.Context, leagueID int64, refereeID sql.NullInt64) error {
	user := UserFromContext(ctx)
	if user == nil {
		return ErrUnauthenticated
	}
	if IsAdmin(user) || managesLeague(user, leagueID) {
		return nil
	}
	if user.Role == RoleMatchOfficial && refereeID.Valid && refereeID.Int64 == user.ID {
		return nil
	}
	return ErrForbidden
}

func managesLeague(user *AuthUser, leagueID int64) bool {
	return user.Role == RoleLeagueAdmin && user.ManagedLeagueID != nil && *user.ManagedLeagueID == leagueID
}
