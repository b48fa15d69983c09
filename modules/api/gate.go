package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

var (
	// Pages reachable without a session; signed-in users are sent home.
	publicPages = map[string]bool{
		"/login":  true,
		"/signup": true,
	}
	// Paths the gate never touches.
	ungatedPaths = map[string]bool{
		"/health":      true,
		"/favicon.ico": true,
	}
)

// PageGate guards every page outside /api. API handlers check the session
// themselves.
func (h *Handlers) PageGate(c *fiber.Ctx) error {
	path := c.Path()
	if path == "/api" || strings.HasPrefix(path, "/api/") || ungatedPaths[path] {
		return c.Next()
	}

	public := publicPages[path]
	if c.Cookies(SessionCookie) == "" {
		if public {
			return c.Next()
		}
		return c.Redirect("/login", fiber.StatusFound)
	}

	if h.currentSession(c) == nil {
		h.clearSessionCookie(c)
		return c.Redirect("/login", fiber.StatusFound)
	}

	if public {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Next()
}
