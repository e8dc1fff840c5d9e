package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneybook/internal/logger"
	"moneybook/internal/middleware"
	"moneybook/internal/oauth"
	"moneybook/internal/services"
)

// AuthHandler handles the OAuth login flow and session lifecycle.
type AuthHandler struct {
	userService    services.UserServicer
	sessionService services.SessionServicer
	provider       services.IdentityProvider

	stateSecret  string
	cookieMaxAge int
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler. cookieMaxAge is the session TTL
// in seconds; cookieSecure should be true in production.
func NewAuthHandler(
	userService services.UserServicer,
	sessionService services.SessionServicer,
	provider services.IdentityProvider,
	stateSecret string,
	cookieMaxAge int,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		userService:    userService,
		sessionService: sessionService,
		provider:       provider,
		stateSecret:    stateSecret,
		cookieMaxAge:   cookieMaxAge,
		cookieSecure:   cookieSecure,
	}
}

// Login redirects the browser to the provider's consent screen with a signed
// state parameter.
func (h *AuthHandler) Login(c *gin.Context) {
	state, err := oauth.NewState(h.stateSecret)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// Callback completes the login: it verifies the state, exchanges the code,
// resolves the local user, and binds a session. The session write is awaited
// before the redirect is sent so the client's next request observes it.
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		// Missing or consumed code: back to the unauthenticated entry
		// point, no error detail for the client.
		logger.Get().Warnw("login callback without code", "client_ip", c.ClientIP())
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := oauth.VerifyState(h.stateSecret, c.Query("state")); err != nil {
		logger.Get().Warnw("login callback with bad state",
			"error", err.Error(),
			"client_ip", c.ClientIP(),
		)
		c.Redirect(http.StatusFound, "/")
		return
	}

	profile, err := h.provider.ResolveCode(c.Request.Context(), code)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.Resolve(profile)
	if err != nil {
		respondWithError(c, err)
		return
	}

	session, err := h.sessionService.Create(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	middleware.SetSessionCookie(c, session.ID, h.cookieMaxAge, h.cookieSecure)
	c.Redirect(http.StatusFound, "/")
}

// Logout destroys the session (if any), clears the cookie, and redirects to
// the entry point.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if err := h.sessionService.Destroy(token); err != nil {
			respondWithError(c, err)
			return
		}
	}
	middleware.ClearSessionCookie(c, h.cookieSecure)
	c.Redirect(http.StatusFound, "/")
}

// GetUser returns the authenticated identity snapshot.
func (h *AuthHandler) GetUser(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"kakao_id": c.GetString("kakaoID"),
		"nickname": c.GetString("nickname"),
	})
}
