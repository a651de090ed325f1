package announcements

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codr1/Fixturely/internal/api/authz"
	dbgen "github.com/codr1/Fixturely/internal/db/generated"
	"github.com/codr1/Fixturely/internal/testutil"
)

func setupAnnouncementsTest(t *testing.T) (*dbgen.Queries, *authz.AuthUser) {
	t.Helper()

	database := testutil.NewTestDB(t)
	prev := queries
	t.Cleanup(func() { queries = prev })
	InitHandlers(database.Queries)

	author, err := database.Queries.CreateUser(context.Background(), dbgen.CreateUserParams{
		Email:    "press@example.com",
		FullName: "Press Office",
		Role:     authz.RoleLeagueAdmin,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return database.Queries, &authz.AuthUser{ID: author.ID, Email: author.Email, Role: authz.RoleLeagueAdmin}
}

func newRequest(method, body string, user *authz.AuthUser, id int64) *http.Request {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if id > 0 {
		req.SetPathValue("id", fmt.Sprint(id))
	}
	if user != nil {
		req = req.WithContext(authz.ContextWithUser(req.Context(), user))
	}
	return req
}

func TestHandleAnnouncementCreateValidation(t *testing.T) {
	_, editor := setupAnnouncementsTest(t)
	manager := &authz.AuthUser{ID: 77, Role: authz.RoleTeamManager}

	tests := []struct {
		name string
		user *authz.AuthUser
		body string
		want int
	}{
		{name: "anonymous", body: `{"title":"Hi","body":"There"}`, want: http.StatusUnauthorized},
		{name: "team manager", user: manager, body: `{"title":"Hi","body":"There"}`, want: http.StatusForbidden},
		{name: "missing title", user: editor, body: `{"body":"There"}`, want: http.StatusBadRequest},
		{name: "missing body", user: editor, body: `{"title":"Hi"}`, want: http.StatusBadRequest},
		{name: "bad priority", user: editor, body: `{"title":"Hi","body":"There","priority":"urgent"}`, want: http.StatusBadRequest},
		{name: "empty body", user: editor, body: ``, want: http.StatusBadRequest},
		{name: "created", user: editor, body: `{"title":"Hi","body":"There"}`, want: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleAnnouncementCreate(rec, newRequest(http.MethodPost, tt.body, tt.user, 0))
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPublishedAnnouncementsHideDrafts(t *testing.T) {
	_, editor := setupAnnouncementsTest(t)

	rec := httptest.NewRecorder()
	HandleAnnouncementCreate(rec, newRequest(http.MethodPost, `{"title":"Fixtures released","body":"See the calendar.","priority":"high","published":true}`, editor, 0))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var published dbgen.Announcement
	if err := json.Unmarshal(rec.Body.Bytes(), &published); err != nil {
		t.Fatalf("decode announcement: %v", err)
	}
	if published.AuthorID.Int64 != editor.ID {
		t.Fatalf("expected author %d, got %+v", editor.ID, published.AuthorID)
	}

	rec = httptest.NewRecorder()
	HandleAnnouncementCreate(rec, newRequest(http.MethodPost, `{"title":"Draft notice","body":"Not yet."}`, editor, 0))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create draft: expected 201, got %d", rec.Code)
	}
	var draft dbgen.Announcement
	if err := json.Unmarshal(rec.Body.Bytes(), &draft); err != nil {
		t.Fatalf("decode announcement: %v", err)
	}
	if draft.Priority != priorityNormal {
		t.Fatalf("expected default priority, got %q", draft.Priority)
	}

	rec = httptest.NewRecorder()
	HandlePublishedAnnouncements(rec, newRequest(http.MethodGet, "", nil, 0))
	var listed struct {
		Announcements []dbgen.Announcement `json:"announcements"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Announcements) != 1 || listed.Announcements[0].ID != published.ID {
		t.Fatalf("expected only the published announcement, got %+v", listed.Announcements)
	}

	rec = httptest.NewRecorder()
	HandleAnnouncementUpdate(rec, newRequest(http.MethodPut, `{"title":"Draft notice","body":"Now live.","published":true}`, editor, draft.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req := newRequest(http.MethodGet, "", nil, 0)
	req.Header.Set("HX-Request", "true")
	HandlePublishedAnnouncements(rec, req)
	if body := rec.Body.String(); !strings.Contains(body, "Now live.") || !strings.Contains(body, "Fixtures released") {
		t.Fatalf("expected both announcements rendered, got: %s", body)
	}

	rec = httptest.NewRecorder()
	HandleAnnouncementsList(rec, newRequest(http.MethodGet, "", nil, 0))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected admin list to require login, got %d", rec.Code)
	}
}

func TestHandleAnnouncementDelete(t *testing.T) {
	q, editor := setupAnnouncementsTest(t)

	announcement, err := q.CreateAnnouncement(context.Background(), dbgen.CreateAnnouncementParams{
		Title:    "Pitch closed",
		Body:     "Waterlogged.",
		Priority: "low",
	})
	if err != nil {
		t.Fatalf("create announcement: %v", err)
	}

	rec := httptest.NewRecorder()
	HandleAnnouncementDelete(rec, newRequest(http.MethodDelete, "", editor, announcement.ID))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	HandleAnnouncementDelete(rec, newRequest(http.MethodDelete, "", editor, announcement.ID))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	HandleAnnouncementUpdate(rec, newRequest(http.MethodPut, `{"title":"x","body":"y"}`, editor, announcement.ID))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on update, got %d", rec.Code)
	}
}
