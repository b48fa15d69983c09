package api

import (
	"errors"

	"github.com/example/taskboard/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// Signup handles account creation and opens a session.
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError(c, fiber.StatusBadRequest, formError(msgInvalidBody))
	}
	if errs := h.validator.Check(&req); errs != nil {
		return validationError(c, fiber.StatusBadRequest, errs)
	}

	user, session, err := h.auth.Signup(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			return validationError(c, fiber.StatusBadRequest, formError("Email already in use"))
		case errors.Is(err, auth.ErrPasswordTooLong):
			return validationError(c, fiber.StatusBadRequest, fieldErrors(map[string][]string{
				"password": {messages["password.max"]},
			}))
		default:
			h.logger.Error("Signup failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Error: "Failed to create account",
			})
		}
	}

	h.setSessionCookie(c, session)
	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Success: true,
		User:    *user,
	})
}

// Login authenticates a user and opens a session.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError(c, fiber.StatusBadRequest, formError(msgInvalidBody))
	}
	if errs := h.validator.Check(&req); errs != nil {
		return validationError(c, fiber.StatusBadRequest, errs)
	}

	user, session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return validationError(c, fiber.StatusUnauthorized, formError("Invalid email or password"))
		}
		h.logger.Error("Login failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to authenticate",
		})
	}

	h.setSessionCookie(c, session)
	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		Success: true,
		User:    *user,
	})
}

// Me returns the signed-in user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	claims := h.currentSession(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(MeResponse{})
	}

	user, err := h.auth.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(MeResponse{})
		}
		h.logger.Error("Failed to load current user", "user_id", claims.UserID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(MeResponse{})
	}

	return c.JSON(MeResponse{User: user})
}

// Logout clears the session cookie. It succeeds without a session.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)
	return c.JSON(SuccessResponse{Success: true})
}
