package api

import (
	"time"

	domain "github.com/example/taskboard/domain/user"
	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// setSessionCookie writes a freshly issued session to the response.
func (h *Handlers) setSessionCookie(c *fiber.Ctx, session *domain.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.Expires,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSessionCookie overwrites the session cookie with an expired empty one.
func (h *Handlers) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// currentSession returns the verified claims of the request's session
// cookie, or nil when there is no usable session.
func (h *Handlers) currentSession(c *fiber.Ctx) *domain.Claims {
	token := c.Cookies(SessionCookie)
	if token == "" {
		return nil
	}

	claims, err := h.auth.VerifySession(c.UserContext(), token)
	if err != nil {
		h.logger.Error("Session verification failed", "error", err)
		return nil
	}
	return claims
}
