package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/csg33k/hrnet/internal/adapters/pdf"
	"github.com/csg33k/hrnet/internal/dates"
	"github.com/csg33k/hrnet/internal/domain"
	"github.com/csg33k/hrnet/internal/form"
	"github.com/csg33k/hrnet/internal/observability"
	"github.com/csg33k/hrnet/internal/ports"
	"github.com/csg33k/hrnet/internal/session"
	"github.com/csg33k/hrnet/internal/templates"
	"github.com/csg33k/hrnet/pkg/apperr"
)

// Config carries the presentation settings the handlers need.
type Config struct {
	AppName    string
	CookieName string
	SessionTTL time.Duration
}

type Handler struct {
	sessions *session.Manager
	repo     ports.EmployeeRepository
	states   []domain.State
	metrics  *observability.Metrics
	logger   *zap.Logger
	cfg      Config
}

func New(sessions *session.Manager, repo ports.EmployeeRepository, states []domain.State, metrics *observability.Metrics, logger *zap.Logger, cfg Config) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "hrnet_form"
	}
	return &Handler{
		sessions: sessions,
		repo:     repo,
		states:   states,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
	}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("PATCH /form/fields/{field}", h.updateField)
	mux.HandleFunc("POST /employees", h.submit)
	mux.HandleFunc("GET /employees/{id}", h.getEmployee)
	mux.HandleFunc("GET /employees/{id}/pdf", h.employeePDF)
	mux.HandleFunc("POST /confirmation/dismiss", h.dismissConfirmation)
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.HandleFunc("GET /metrics", h.metricsSnapshot)
	return mux
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	id := h.sessionID(w, r)
	var view templates.FormView
	err := h.sessions.Do(r.Context(), id, func(c *form.Controller) error {
		view = h.formView(c, nil)
		return nil
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	render(w, r, http.StatusOK, templates.Page(view))
}

// updateField handles PATCH /form/fields/{field} and renders the control
// again so its invalid mark follows the new value.
func (h *Handler) updateField(w http.ResponseWriter, r *http.Request) {
	f, ok := domain.ParseField(r.PathValue("field"))
	if !ok {
		h.writeError(w, apperr.NewNotFound("field", map[string]any{"field": r.PathValue("field")}))
		return
	}
	if err := r.ParseForm(); err != nil {
		h.writeError(w, apperr.NewBadRequest(err.Error()))
		return
	}
	id := h.sessionID(w, r)
	var control templates.ControlView
	err := h.sessions.Do(r.Context(), id, func(c *form.Controller) error {
		if err := applyField(c, f, r.PostForm.Get(string(f))); err != nil {
			return err
		}
		control = templates.NewControlView(f, c.Draft().Get(f), c.Annotations().Failed(f), h.states)
		return nil
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	render(w, r, http.StatusOK, templates.Control(control))
}

// submit handles POST /employees. Posted fields are applied first, then the
// controller decides: 422 with annotations, or 200 with an empty form and
// the confirmation.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, apperr.NewBadRequest(err.Error()))
		return
	}
	id := h.sessionID(w, r)
	signal := &form.ConfirmationSignal{}
	var (
		out  form.Outcome
		view templates.FormView
	)
	err := h.sessions.Do(r.Context(), id, func(c *form.Controller) error {
		if err := applyPosted(c, r.PostForm); err != nil {
			return err
		}
		out = c.Submit(r.Context())
		var confirmation *form.Confirmation
		if signal.Take() {
			confirmation = &form.EmployeeCreated
		}
		view = h.formView(c, confirmation)
		return nil
	}, form.WithNotifier(signal))
	if err != nil {
		h.writeError(w, err)
		return
	}
	status := http.StatusOK
	if !out.Committed {
		status = http.StatusUnprocessableEntity
	}
	render(w, r, status, templates.Form(view))
}

func (h *Handler) getEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.repo.GetEmployee(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// employeePDF handles GET /employees/{id}/pdf with a printable record sheet.
func (h *Handler) employeePDF(w http.ResponseWriter, r *http.Request) {
	e, err := h.repo.GetEmployee(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := pdf.GenerateEmployeePDF(e, h.stateName(e.State), &buf); err != nil {
		h.writeError(w, apperr.NewInternalError(err))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="employee-`+e.ID+`.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) stateName(abbreviation string) string {
	for _, s := range h.states {
		if s.Abbreviation == abbreviation {
			return s.Name
		}
	}
	return ""
}

func (h *Handler) dismissConfirmation(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, templates.ConfirmationSlot(nil))
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) metricsSnapshot(w http.ResponseWriter, _ *http.Request) {
	if h.metrics == nil {
		h.writeError(w, apperr.NewNotFound("metrics", nil))
		return
	}
	writeJSON(w, http.StatusOK, h.metrics.Snapshot())
}

func (h *Handler) formView(c *form.Controller, confirmation *form.Confirmation) templates.FormView {
	return templates.NewFormView(h.cfg.AppName, c.Draft(), c.Annotations(), h.states, confirmation)
}

// sessionID returns the caller's session, issuing a new ID when the cookie is
// missing or malformed. The cookie is written on every request so its
// lifetime tracks the backend's sliding TTL.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	var id string
	if ck, err := r.Cookie(h.cfg.CookieName); err == nil && session.ValidID(ck.Value) {
		id = ck.Value
	} else {
		id = session.NewID()
	}
	ck := &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if h.cfg.SessionTTL > 0 {
		ck.MaxAge = int(h.cfg.SessionTTL.Seconds())
	}
	http.SetCookie(w, ck)
	return id
}

// applyPosted applies every field present in the posted form.
func applyPosted(c *form.Controller, values url.Values) error {
	for _, f := range domain.Fields {
		if _, ok := values[string(f)]; !ok {
			continue
		}
		if err := applyField(c, f, values.Get(string(f))); err != nil {
			return err
		}
	}
	return nil
}

// applyField stores one posted value. A value carrying markup is rejected
// untouched. Date inputs post the picker format; a value that does not parse
// leaves the field empty.
func applyField(c *form.Controller, f domain.Field, raw string) error {
	if hasMarkup(raw) {
		return apperr.New("INVALID_INPUT", f.Label()+" contains markup", http.StatusBadRequest, map[string]any{"field": string(f)})
	}
	v := raw
	if f.IsDate() {
		if d, ok := dates.FromPicker(v); ok {
			_, err := c.SetDate(f, d)
			return err
		}
		v = ""
	}
	_, err := c.SetField(f, v)
	return err
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrInvalidID) {
		err = apperr.NewBadRequest(err.Error())
	}
	de := apperr.ToDomainError(err, ports.ErrEmployeeNotFound, domain.ErrUnknownField)
	if de.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	body := map[string]any{"code": de.Code, "message": de.Message}
	if len(de.Details) > 0 {
		body["details"] = de.Details
	}
	writeJSON(w, de.HTTPStatus, body)
}
