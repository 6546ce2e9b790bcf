package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/IRX358/RouteSaathi-2.0/internal/config"
	"github.com/IRX358/RouteSaathi-2.0/internal/model"
	"github.com/IRX358/RouteSaathi-2.0/internal/repository"
	"github.com/IRX358/RouteSaathi-2.0/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPart is the sanitized user returned to clients; the password
// hash never leaves the handler layer.
type userPart struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	BusID   string `json:"bus_id,omitempty"`
	RouteID string `json:"route_id,omitempty"`
}

type loginResp struct {
	Success     bool      `json:"success"`
	User        userPart  `json:"user"`
	AccessToken string    `json:"access_token"`
	Expires     time.Time `json:"expires"`
	Message     string    `json:"message"`
}

func sanitize(u model.User) userPart {
	return userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, BusID: u.BusID, RouteID: u.RouteID}
}

// Login authenticates a user and returns the sanitized identity with a
// signed access token.  Invalid credentials produce a 401 with a
// human-readable detail field; the two failure modes (unknown email,
// wrong password) are indistinguishable to the caller.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Invalid email or password"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "issue access failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		Success:     true,
		User:        sanitize(u),
		AccessToken: access.Token,
		Expires:     access.Exp,
		Message:     "Login successful",
	})
}

// ListUsers lists all users, sanitized, for admin screens.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, sanitize(u))
	}
	return c.JSON(http.StatusOK, out)
}

// GetUser returns one user by id, sanitized.
func (h *AuthHandler) GetUser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, sanitize(u))
}

type conductorPart struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BusID      string `json:"bus_id"`
	RouteID    string `json:"route_id"`
	Status     string `json:"status"`
	LastActive string `json:"last_active"`
}

// Conductors lists all conductors for the communication panel.
// Presence tracking is not implemented, so everyone reports online.
func (h *AuthHandler) Conductors(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.ListConductors(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]conductorPart, 0, len(users))
	for _, u := range users {
		out = append(out, conductorPart{
			ID: u.ID, Name: u.Name, BusID: u.BusID, RouteID: u.RouteID,
			Status: "online", LastActive: "Now",
		})
	}
	return c.JSON(http.StatusOK, out)
}
