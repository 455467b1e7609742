package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/guestbook/internal/api/shared"
	"github.com/phrazzld/guestbook/internal/domain"
	"github.com/phrazzld/guestbook/internal/platform/logger"
	"github.com/phrazzld/guestbook/internal/service"
	"github.com/phrazzld/guestbook/internal/service/auth"
)

// GuestFormField is the form field carrying the submitted name.
const GuestFormField = "guest"

// indexPage is the data rendered by templates/index.html.
type indexPage struct {
	Guests        []domain.Guest
	Session       *auth.Session
	ProfileJSON   string
	LoginEnabled  bool
	MaxNameLength int
}

// GuestHandler serves the guest list and the sign form.
type GuestHandler struct {
	guestbook    service.GuestbookService
	loginEnabled bool
	logger       *slog.Logger
}

// NewGuestHandler creates a new GuestHandler. loginEnabled controls whether
// the page links to the login routes.
func NewGuestHandler(guestbook service.GuestbookService, loginEnabled bool, log *slog.Logger) *GuestHandler {
	if log == nil {
		log = slog.Default()
	}
	return &GuestHandler{
		guestbook:    guestbook,
		loginEnabled: loginEnabled,
		logger:       log.With("component", "guest_handler"),
	}
}

// ListGuests handles GET / requests
func (h *GuestHandler) ListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.guestbook.Guests(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to load guests", err)
		return
	}

	page := indexPage{
		Guests:        guests,
		LoginEnabled:  h.loginEnabled,
		MaxNameLength: domain.MaxGuestNameLength,
	}
	if session, ok := shared.GetSession(r.Context()); ok {
		page.Session = session
		if session.ProfileKnown {
			page.ProfileJSON = h.profileJSON(r, session.Profile)
		}
	}

	shared.RespondWithHTML(w, r, http.StatusOK, indexTemplate, page)
}

// SignGuestbook handles POST / requests.
// An empty name is not recorded; the visitor is sent back to the list.
func (h *GuestHandler) SignGuestbook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := r.ParseForm(); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid form submission", err)
		return
	}

	name := r.PostForm.Get(GuestFormField)
	if strings.TrimSpace(name) == "" {
		log.Debug("ignoring empty guest name")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if _, err := h.guestbook.Sign(r.Context(), name); err != nil {
		status := MapErrorToStatusCode(err)
		if errors.Is(err, domain.ErrValidation) {
			shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *GuestHandler) profileJSON(r *http.Request, profile map[string]any) string {
	out, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Warn("failed to format profile", "error", err)
		return ""
	}
	return string(out)
}
