package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scaffold/internal/models"
	"github.com/desertthunder/scaffold/internal/shared"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

// API serves the entity resources under /api.
type API struct {
	users   models.Repository[*models.User]
	entries models.Repository[*models.Entry]
	logger  *log.Logger
}

// APIOpts contains the dependencies of an [API].
type APIOpts struct {
	Users     models.Repository[*models.User]
	Entries   models.Repository[*models.Entry]
	Logger    *log.Logger
	RateLimit float64
	Burst     int
}

// NewAPI builds a router exposing users and entries as JSON.
func NewAPI(opts APIOpts) *BasicRouter {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	api := &API{users: opts.Users, entries: opts.Entries, logger: opts.Logger}

	r := NewBasicRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, Logging(opts.Logger), RateLimit(opts.RateLimit, opts.Burst, opts.Logger))

	r.Handler(healthHandler{logger: opts.Logger})
	r.Handle(http.MethodGet, "/api/users", http.HandlerFunc(api.listUsers))
	r.Handle(http.MethodGet, "/api/users/{id}", http.HandlerFunc(api.getUser))
	r.Handle(http.MethodGet, "/api/entries", http.HandlerFunc(api.listEntries))
	r.Handle(http.MethodPost, "/api/entries", http.HandlerFunc(api.createEntry))
	r.Handle(http.MethodGet, "/api/entries/{id}", http.HandlerFunc(api.getEntry))

	return r
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	criteria := map[string]any{}
	if login := r.URL.Query().Get("login"); login != "" {
		criteria["login"] = login
	}
	if activated := r.URL.Query().Get("activated"); activated != "" {
		v, err := strconv.ParseBool(activated)
		if err != nil {
			a.writeError(w, fmt.Errorf("%w: activated must be a boolean", shared.ErrInvalidArgument))
			return
		}
		criteria["activated"] = v
	}

	users, err := a.users.List(r.Context(), criteria)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, a.logger, http.StatusOK, nonNil(users))
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	user, err := a.users.Get(r.Context(), id)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, a.logger, http.StatusOK, user)
}

func (a *API) listEntries(w http.ResponseWriter, r *http.Request) {
	criteria := map[string]any{}
	if raw := r.URL.Query().Get("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			a.writeError(w, fmt.Errorf("%w: userId must be an integer", shared.ErrInvalidArgument))
			return
		}
		criteria["user_id"] = userID
	}

	entries, err := a.entries.List(r.Context(), criteria)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, a.logger, http.StatusOK, nonNil(entries))
}

func (a *API) getEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	entry, err := a.entries.Get(r.Context(), id)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, a.logger, http.StatusOK, entry)
}

// createEntry stores a new entry. The body must not carry an id: the database assigns it.
func (a *API) createEntry(w http.ResponseWriter, r *http.Request) {
	var entry models.Entry
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&entry); err != nil {
		a.writeError(w, fmt.Errorf("%w: malformed body: %v", shared.ErrInvalidInput, err))
		return
	}

	if entry.HasID() {
		a.writeError(w, fmt.Errorf("%w: a new entry cannot already have an id", shared.ErrAlreadyPersisted))
		return
	}

	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	if err := a.entries.Create(r.Context(), &entry); err != nil {
		a.writeError(w, err)
		return
	}

	a.logger.Debug("created entry", "entry", entry.String())
	w.Header().Set("Location", fmt.Sprintf("/api/entries/%d", *entry.GetID()))
	writeJSON(w, a.logger, http.StatusCreated, &entry)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		a.logger.Error("request failed", "error", err)
	}
	writeJSONError(w, a.logger, status, err.Error())
}

// statusFor maps sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrValidation),
		errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrInvalidArgument),
		errors.Is(err, shared.ErrAlreadyPersisted):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q is not an integer", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// writeJSON sends body with status. The header is already out when encoding fails, so the failure is only logged.
func writeJSON(w http.ResponseWriter, logger *log.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "status", status, "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, logger *log.Logger, status int, message string) {
	writeJSON(w, logger, status, map[string]string{"error": message})
}

// healthHandler answers liveness probes on every method.
type healthHandler struct {
	logger *log.Logger
}

func (healthHandler) Routes() []string { return []string{"/health"} }

func (h healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}
