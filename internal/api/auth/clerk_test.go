package auth

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clerk/clerk-sdk-go/v2"

	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	"github.com/codr1/Fixturely/internal/testutil"
)

func setupClerkTest(t *testing.T) {
	t.Helper()

	database := testutil.NewTestDB(t)

	prevQueries := queries
	prevClerkInit := clerkInitialized
	t.Cleanup(func() {
		queries = prevQueries
		clerkInitialized = prevClerkInit
	})
	queries = dbgen.New(database.DB)

	testutil.MustExec(t, database,
		`INSERT INTO users (email, phone, full_name, role, status) VALUES ('referee@test.com', '+12125551234', 'Rita Referee', 'match_official', 'active')`,
		`INSERT INTO users (email, full_name, role, status) VALUES ('secretary@test.com', 'League Secretary', 'admin', 'active')`,
		`INSERT INTO users (email, phone, full_name, role, status) VALUES ('cups@test.com', '+13105559876', 'Cup Organiser', 'cup_admin', 'active')`,
	)
}

func clerkIdentity(primaryEmail, primaryPhone string, emails, phones []string) *clerk.User {
	u := &clerk.User{}
	for i, address := range emails {
		id := "email_" + address
		u.EmailAddresses = append(u.EmailAddresses, &clerk.EmailAddress{ID: id, EmailAddress: address})
		if i == 0 && primaryEmail != "" {
			u.PrimaryEmailAddressID = &id
		}
	}
	for i, number := range phones {
		id := "phone_" + number
		u.PhoneNumbers = append(u.PhoneNumbers, &clerk.PhoneNumber{ID: id, PhoneNumber: number})
		if i == 0 && primaryPhone != "" {
			u.PrimaryPhoneNumberID = &id
		}
	}
	return u
}

func TestInitClerk(t *testing.T) {
	prevClerkInit := clerkInitialized
	t.Cleanup(func() {
		clerkInitialized = prevClerkInit
	})

	clerkInitialized = false
	InitClerk("")
	if clerkInitialized {
		t.Fatal("expected empty key to leave Clerk disabled")
	}

	InitClerk("sk_test_xxx")
	if !clerkInitialized {
		t.Fatal("expected key to enable Clerk")
	}
}

func TestFindLocalUserFromClerk(t *testing.T) {
	setupClerkTest(t)

	cases := []struct {
		name      string
		clerkUser *clerk.User
		wantEmail string
	}{
		{
			name:      "primary email",
			clerkUser: clerkIdentity("primary", "", []string{"referee@test.com"}, nil),
			wantEmail: "referee@test.com",
		},
		{
			name:      "primary phone normalized to E.164",
			clerkUser: clerkIdentity("", "primary", nil, []string{"(212) 555-1234"}),
			wantEmail: "referee@test.com",
		},
		{
			name:      "secondary email after unknown primary",
			clerkUser: clerkIdentity("primary", "", []string{"nobody@test.com", "secretary@test.com"}, nil),
			wantEmail: "secretary@test.com",
		},
		{
			name:      "secondary phone after unknown primary",
			clerkUser: clerkIdentity("", "primary", nil, []string{"+14155550000", "(310) 555-9876"}),
			wantEmail: "cups@test.com",
		},
		{
			name:      "email wins over phone",
			clerkUser: clerkIdentity("primary", "primary", []string{"secretary@test.com"}, []string{"+12125551234"}),
			wantEmail: "secretary@test.com",
		},
		{
			name:      "unparseable phone skipped",
			clerkUser: clerkIdentity("primary", "primary", []string{"referee@test.com"}, []string{"not-a-phone"}),
			wantEmail: "referee@test.com",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := findLocalUserFromClerk(t.Context(), tc.clerkUser)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Email != tc.wantEmail {
				t.Fatalf("expected %s, got %s", tc.wantEmail, user.Email)
			}
		})
	}

	for name, clerkUser := range map[string]*clerk.User{
		"unknown identifiers": clerkIdentity("primary", "", []string{"ghost@test.com"}, nil),
		"no identifiers":      {},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := findLocalUserFromClerk(t.Context(), clerkUser); !errors.Is(err, sql.ErrNoRows) {
				t.Fatalf("expected sql.ErrNoRows, got %v", err)
			}
		})
	}
}

func TestHandleClerkCallbackGuards(t *testing.T) {
	prevClerkInit := clerkInitialized
	t.Cleanup(func() {
		clerkInitialized = prevClerkInit
	})

	clerkInitialized = false
	recorder := httptest.NewRecorder()
	HandleClerkCallback(recorder, httptest.NewRequest(http.MethodGet, "/auth/clerk/callback", nil))
	if recorder.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when Clerk is disabled, got %d", recorder.Code)
	}

	clerkInitialized = true
	recorder = httptest.NewRecorder()
	HandleClerkCallback(recorder, httptest.NewRequest(http.MethodGet, "/auth/clerk/callback", nil))
	if recorder.Code != http.StatusFound || recorder.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login without claims, got %d %q", recorder.Code, recorder.Header().Get("Location"))
	}
}

func TestWithClerkSessionPassesThroughWithoutCookie(t *testing.T) {
	prevClerkInit := clerkInitialized
	t.Cleanup(func() {
		clerkInitialized = prevClerkInit
	})
	clerkInitialized = true

	called := false
	handler := WithClerkSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := clerk.SessionClaimsFromContext(r.Context()); ok {
			t.Error("expected no session claims")
		}
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Fatal("expected next handler to run")
	}
}
