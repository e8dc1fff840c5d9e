package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneybook/internal/errors"
	"moneybook/internal/services"
)

// SessionCookieName is the name of the cookie carrying the session token.
const SessionCookieName = "session_id"

// SetSessionCookie writes the session cookie. Secure is enabled in
// production so the token only travels over HTTPS.
func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}

// SessionAuth verifies the session cookie and sets the resolved identity in
// the context. Requests without a live session are rejected with 401 before
// any handler logic runs.
func SessionAuth(sessions services.SessionServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			abortUnauthorized(c)
			return
		}

		session, err := sessions.Get(token)
		if err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && appErr.Code == apperrors.ErrUnauthorized.Code {
				abortUnauthorized(c)
				return
			}
			c.AbortWithStatusJSON(apperrors.ErrInternalServer.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrInternalServer.Code,
					"message": apperrors.ErrInternalServer.Message,
				},
			})
			return
		}

		// The owner key and identity snapshot are resolved once here and
		// only read downstream.
		c.Set("userID", session.UserID)
		c.Set("kakaoID", session.KakaoID)
		c.Set("nickname", session.Nickname)
		c.Set("sessionID", session.ID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrUnauthorized.Code,
			"message": apperrors.ErrUnauthorized.Message,
		},
	})
}
