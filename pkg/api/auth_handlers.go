package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/easiio/sflow-server/pkg/auth"
	"github.com/easiio/sflow-server/pkg/httputil"
	"github.com/easiio/sflow-server/pkg/middleware"
	"github.com/easiio/sflow-server/pkg/observability"
	"github.com/easiio/sflow-server/pkg/storage"
)

// AuthHandlers implements the four login-surface operations. All four are
// authless: they are the endpoints that establish or tear down a session,
// so the session middleware never runs in front of them.
type AuthHandlers struct {
	users     storage.UserStore
	codec     *auth.TokenCodec
	bootstrap *auth.BootstrapDetector
	settings  auth.Settings
	metrics   *observability.Metrics
	log       *logrus.Entry
}

// NewAuthHandlers creates a new auth handlers instance. metrics may be nil.
func NewAuthHandlers(users storage.UserStore, codec *auth.TokenCodec, settings auth.Settings, metrics *observability.Metrics, log *logrus.Entry) *AuthHandlers {
	return &AuthHandlers{
		users:     users,
		codec:     codec,
		bootstrap: auth.NewBootstrapDetector(settings, users),
		settings:  settings,
		metrics:   metrics,
		log:       log,
	}
}

// RegisterRoutes registers the authentication routes under the REST prefix.
func (h *AuthHandlers) RegisterRoutes(router *mux.Router, restPrefix string) {
	sub := router.PathPrefix("/" + restPrefix).Subrouter()
	sub.HandleFunc("/sflowauth", h.sflowLogin).Methods("POST")
	sub.HandleFunc("/login", h.passwordLogin).Methods("POST")
	sub.HandleFunc("/login", h.cookieProbe).Methods("GET")
	sub.HandleFunc("/logout", h.logout).Methods("POST")
}

// setSessionCookie writes the session cookie carrying a freshly issued
// token. Host-only: no Domain attribute.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenLifetime.Seconds()),
		HttpOnly: true,
	})
}

// clearSessionCookie deletes the session cookie by overwriting it with an
// empty, already-expired value under the same name and path.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// parseBody decodes a JSON body, treating an empty body as an empty
// request so field validation produces the specific missing-field errors.
func parseBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	err := httputil.ParseJSON(r, dest)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	httputil.WriteBadRequest(w, err.Error())
	return false
}

// recordLogin is a nil-safe metrics helper.
func (h *AuthHandlers) recordLogin(method string, success bool) {
	if h.metrics != nil {
		h.metrics.RecordLogin(method, success)
	}
}

// sflowLogin handles POST /{prefix}/sflowauth, the machine-to-machine
// login path. Validation order is fixed: missing key, wrong key, missing
// user id, then the user lookup.
func (h *AuthHandlers) sflowLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"apikey"`
		UserID string `json:"userid"`
	}
	if !parseBody(w, r, &req) {
		return
	}

	if req.APIKey == "" {
		h.recordLogin("apikey", false)
		httputil.WriteBadRequest(w, "API Key is required to authorize Sflow request")
		return
	}
	if !auth.VerifyAPIKey(req.APIKey, h.settings.SflowAPIKey()) {
		h.recordLogin("apikey", false)
		httputil.WriteUnauthorized(w, "API Key is invalid")
		return
	}
	if req.UserID == "" {
		h.recordLogin("apikey", false)
		httputil.WriteBadRequest(w, "UserID is required to log in")
		return
	}

	user, err := h.users.GetByID(r.Context(), req.UserID)
	if err != nil {
		h.recordLogin("apikey", false)
		if errors.Is(err, auth.ErrUserNotFound) {
			// 404 rather than a generic 401: the caller holds a valid
			// machine credential, so revealing existence is accepted here.
			httputil.WriteNotFoundError(w, "UserID is not found, please check it again.")
			return
		}
		h.log.WithError(err).Error("Failed to look up user for sflow login")
		httputil.WriteInternalErrorMessage(w, "Unable to access database.")
		return
	}

	token, err := h.codec.Issue(user)
	if err != nil {
		h.recordLogin("apikey", false)
		h.log.WithError(err).Error("Failed to issue session token")
		httputil.WriteInternalErrorMessage(w, "Unable to issue session token.")
		return
	}

	setSessionCookie(w, token)
	h.recordLogin("apikey", true)
	h.log.WithField("user_id", user.ID).Info("Sflow API key login")
	httputil.WriteSuccess(w, user.Sanitize())
}

// passwordLogin handles POST /{prefix}/login. Unknown email and wrong
// password share one message so account existence does not leak.
func (h *AuthHandlers) passwordLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !parseBody(w, r, &req) {
		return
	}

	if req.Email == "" {
		h.recordLogin("password", false)
		httputil.WriteBadRequest(w, "Email is required to log in")
		return
	}
	if req.Password == "" {
		h.recordLogin("password", false)
		httputil.WriteBadRequest(w, "Password is required to log in")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, auth.ErrUserNotFound) {
		h.recordLogin("password", false)
		h.log.WithError(err).Error("Failed to look up user for password login")
		httputil.WriteInternalErrorMessage(w, "Unable to access database.")
		return
	}

	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash()) {
		h.recordLogin("password", false)
		httputil.WriteUnauthorized(w, "Wrong username or password. Do you have caps lock on?")
		return
	}

	token, err := h.codec.Issue(user)
	if err != nil {
		h.recordLogin("password", false)
		h.log.WithError(err).Error("Failed to issue session token")
		httputil.WriteInternalErrorMessage(w, "Unable to issue session token.")
		return
	}

	setSessionCookie(w, token)
	h.recordLogin("password", true)
	h.log.WithField("user_id", user.ID).Info("Password login")
	httputil.WriteSuccess(w, user.Sanitize())
}

// cookieProbe handles GET /{prefix}/login. State machine:
//
//	cookie resolves            -> return the user, leave the cookie alone
//	cookie fails to resolve    -> clear it, continue as anonymous
//	anonymous, owner set up    -> 401
//	anonymous, owner not set   -> log the unclaimed placeholder owner in
//
// The bootstrap branch is what lets a fresh install, which has no
// credentials at all yet, reach the setup flow.
func (h *AuthHandlers) cookieProbe(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		user, err := h.codec.Resolve(r.Context(), cookie.Value)
		if err == nil {
			h.recordLogin("cookie", true)
			httputil.WriteSuccess(w, user.Sanitize())
			return
		}
		// Expired, tampered, or orphaned cookies are expected flow, not
		// failures: drop the cookie and fall through to the anonymous
		// branch.
		h.log.WithError(err).Debug("Session cookie failed to resolve")
		clearSessionCookie(w)
	}

	if h.bootstrap.IsOwnerSetUp() {
		h.recordLogin("cookie", false)
		httputil.WriteUnauthorized(w, "Not logged in")
		return
	}

	user, err := h.bootstrap.FindOwnerlessUser(r.Context())
	if err != nil {
		h.recordLogin("bootstrap", false)
		switch {
		case errors.Is(err, auth.ErrNoUsers):
			httputil.WriteInternalErrorMessage(w, "No users found in database - did you wipe the users table? Create at least one user.")
		case errors.Is(err, auth.ErrInvalidBootstrapState):
			httputil.WriteInternalErrorMessage(w, "Invalid database state - user has password set.")
		default:
			h.log.WithError(err).Error("Failed to look up owner placeholder")
			httputil.WriteInternalErrorMessage(w, "Unable to access database.")
		}
		return
	}

	token, err := h.codec.Issue(user)
	if err != nil {
		h.recordLogin("bootstrap", false)
		h.log.WithError(err).Error("Failed to issue session token")
		httputil.WriteInternalErrorMessage(w, "Unable to issue session token.")
		return
	}

	setSessionCookie(w, token)
	h.recordLogin("bootstrap", true)
	h.log.WithField("user_id", user.ID).Info("Bootstrap owner login")
	httputil.WriteSuccess(w, user.Sanitize())
}

// logout handles POST /{prefix}/logout. It never fails: the cookie is
// cleared unconditionally whether or not one was presented.
func (h *AuthHandlers) logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	if h.metrics != nil {
		h.metrics.LogoutsTotal.Inc()
	}
	httputil.WriteSuccess(w, map[string]bool{"loggedOut": true})
}
