package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/scaffold/internal/models"
	"github.com/desertthunder/scaffold/internal/repositories"
	"github.com/desertthunder/scaffold/internal/shared"
	tu "github.com/desertthunder/scaffold/internal/testing"
	"github.com/goccy/go-json"
)

type fixture struct {
	handler http.Handler
	users   *repositories.UserRepository
	entries *repositories.EntryRepository
}

func setupAPI(t *testing.T, limit float64, burst int) fixture {
	t.Helper()

	db := tu.MustOpenDB(t)

	logger := shared.NewLogger(io.Discard)
	gdb, err := repositories.Open(db, logger)
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	f := fixture{
		users:   repositories.NewUserRepository(gdb),
		entries: repositories.NewEntryRepository(gdb),
	}
	f.handler = NewAPI(APIOpts{Users: f.users, Entries: f.entries, Logger: logger, RateLimit: limit, Burst: burst})
	return f
}

func (f fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestAPI(t *testing.T) {
	ctx := context.Background()

	t.Run("health", func(t *testing.T) {
		f := setupAPI(t, 0, 0)
		rec := f.do(t, http.MethodGet, "/health", "")
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("list users empty", func(t *testing.T) {
		f := setupAPI(t, 0, 0)
		rec := f.do(t, http.MethodGet, "/api/users", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Errorf("expected empty array, got %s", rec.Body.String())
		}
	})

	t.Run("get user", func(t *testing.T) {
		f := setupAPI(t, 0, 0)
		user := models.NewUser("jdoe", "jdoe@example.com")
		if err := f.users.Create(ctx, user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		rec := f.do(t, http.MethodGet, "/api/users/1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var got models.User
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if !got.Equals(user) {
			t.Errorf("expected %v, got %v", user, &got)
		}
		if strings.Contains(rec.Body.String(), user.ActivationKey) {
			t.Error("activation key must not be exposed")
		}
	})

	t.Run("get user errors", func(t *testing.T) {
		f := setupAPI(t, 0, 0)

		if rec := f.do(t, http.MethodGet, "/api/users/42", ""); rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
		if rec := f.do(t, http.MethodGet, "/api/users/abc", ""); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if rec := f.do(t, http.MethodGet, "/api/users?activated=maybe", ""); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if rec := f.do(t, http.MethodDelete, "/api/users/1", ""); rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("create entry assigns id", func(t *testing.T) {
		f := setupAPI(t, 0, 0)
		user := models.NewUser("jdoe", "jdoe@example.com")
		if err := f.users.Create(ctx, user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		rec := f.do(t, http.MethodPost, "/api/entries", `{"title":"Hello","content":"First","userId":1}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if rec.Header().Get("Location") != "/api/entries/1" {
			t.Errorf("unexpected location %q", rec.Header().Get("Location"))
		}

		var created models.Entry
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if !created.HasID() || created.Date.IsZero() {
			t.Errorf("expected id and date to be set, got %v", &created)
		}

		rec = f.do(t, http.MethodGet, "/api/entries?userId=1", "")
		var listed []models.Entry
		if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if len(listed) != 1 || !listed[0].Equals(&created) {
			t.Errorf("unexpected entries %v", listed)
		}

		if rec := f.do(t, http.MethodGet, "/api/entries/1", ""); rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("create entry rejects ids and bad input", func(t *testing.T) {
		f := setupAPI(t, 0, 0)
		if err := f.users.Create(ctx, models.NewUser("jdoe", "jdoe@example.com")); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		tc := []struct {
			name string
			body string
			want int
		}{
			{name: "id present", body: `{"id":7,"title":"Hello","userId":1}`, want: http.StatusBadRequest},
			{name: "missing title", body: `{"userId":1}`, want: http.StatusBadRequest},
			{name: "malformed", body: `{"title":`, want: http.StatusBadRequest},
			{name: "unknown owner", body: `{"title":"Hello","userId":99}`, want: http.StatusNotFound},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				rec := f.do(t, http.MethodPost, "/api/entries", tt.body)
				if rec.Code != tt.want {
					t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
				}
			})
		}
	})

	t.Run("rate limit", func(t *testing.T) {
		f := setupAPI(t, 0.001, 1)

		if rec := f.do(t, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
			t.Fatalf("expected first request to pass, got %d", rec.Code)
		}
		if rec := f.do(t, http.MethodGet, "/health", ""); rec.Code != http.StatusTooManyRequests {
			t.Errorf("expected 429, got %d", rec.Code)
		}
	})
}

func TestBasicRouter(t *testing.T) {
	t.Run("middleware runs in registration order", func(t *testing.T) {
		var order bytes.Buffer
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order.WriteString(name)
					next.ServeHTTP(w, r)
				})
			}
		}

		r := NewBasicRouter()
		r.Use(mark("a"), mark("b"))
		r.Handle(http.MethodGet, "/x", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order.WriteString("h")
		}))

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
		if order.String() != "abh" {
			t.Errorf("expected abh, got %s", order.String())
		}
	})

	t.Run("statusFor", func(t *testing.T) {
		tc := []struct {
			err  error
			want int
		}{
			{err: shared.ErrNotFound, want: http.StatusNotFound},
			{err: shared.ErrValidation, want: http.StatusBadRequest},
			{err: shared.ErrAlreadyPersisted, want: http.StatusBadRequest},
			{err: io.EOF, want: http.StatusInternalServerError},
		}

		for _, tt := range tc {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		}
	})
}

// failingResponseWriter accepts headers but rejects every body write.
type failingResponseWriter struct {
	*httptest.ResponseRecorder
}

func (failingResponseWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestWriteJSON(t *testing.T) {
	t.Run("logs encode failures", func(t *testing.T) {
		var logs bytes.Buffer
		logger := shared.NewLogger(&logs)
		w := failingResponseWriter{httptest.NewRecorder()}

		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200 to be sent, got %d", w.Code)
		}
		if !strings.Contains(logs.String(), "failed to encode response") {
			t.Errorf("expected encode failure to be logged, got %q", logs.String())
		}
		if !strings.Contains(logs.String(), io.ErrClosedPipe.Error()) {
			t.Errorf("expected underlying error in log, got %q", logs.String())
		}
	})

	t.Run("successful writes log nothing", func(t *testing.T) {
		var logs bytes.Buffer
		rec := httptest.NewRecorder()

		writeJSON(rec, shared.NewLogger(&logs), http.StatusCreated, map[string]int{"id": 1})

		if rec.Code != http.StatusCreated {
			t.Errorf("expected 201, got %d", rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != `{"id":1}` {
			t.Errorf("unexpected body %q", rec.Body.String())
		}
		if logs.Len() != 0 {
			t.Errorf("expected no log output, got %q", logs.String())
		}
	})
}
