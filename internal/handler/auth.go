package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farwill/travel-booking/internal/config"
	"github.com/farwill/travel-booking/internal/middleware"
	"github.com/farwill/travel-booking/internal/model"
	"github.com/farwill/travel-booking/internal/queue"
	"github.com/farwill/travel-booking/internal/repository"
	"github.com/farwill/travel-booking/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Events EventPublisher
}

// EventPublisher pushes notification events onto the email queue.  A nil
// publisher is allowed; notified actions then complete without mail.
type EventPublisher interface {
	Publish(ctx context.Context, event queue.EmailEvent) error
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, ev EventPublisher) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Events: ev}
}

// ----- DTOs -----

type registerReq struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type forgotReq struct {
	Email string `json:"email"`
}
type resetReq struct {
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID       uint64 `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
type authData struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// Register creates a USER account and returns a token pair immediately.
// A welcome email event is queued on success.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Fullname, email and password are required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Password must be at least 6 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.FullName, req.Email, req.Password, model.RoleUser, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	data, err := h.issueTokens(ctx, userPart{ID: uid, FullName: req.FullName, Email: req.Email, Role: model.RoleUser})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	if h.Events != nil {
		ev := queue.EmailEvent{Kind: queue.KindWelcome, To: req.Email, Name: req.FullName}
		if err := h.Events.Publish(ctx, ev); err != nil {
			c.Logger().Warnf("welcome event not published for %s: %v", req.Email, err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Registration successful", "data": data})
}

// Login verifies credentials and returns a fresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, "")
}

// AdminLogin is Login restricted to ADMIN accounts.  A valid USER
// credential gets the same rejection as a wrong password so the endpoint
// does not reveal which emails belong to staff.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, model.RoleAdmin)
}

func (h *AuthHandler) login(c echo.Context, requireRole string) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid credentials"})
	}
	if requireRole != "" && u.Role != requireRole {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid credentials"})
	}

	data, err := h.issueTokens(ctx, userPart{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Login successful", "data": data})
}

// issueTokens signs an access token and stores a hashed refresh token.
func (h *AuthHandler) issueTokens(ctx context.Context, user userPart) (authData, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, user.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return authData{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return authData{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, user.ID, utils.HashTokenRaw(refresh.Raw), refresh.Exp); err != nil {
		return authData{}, err
	}
	return authData{
		User:    user,
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	}, nil
}

// Refresh validates a refresh token by hash, revokes it, and issues a new
// pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "refresh_token required"})
	}
	hash := utils.HashTokenRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid refresh token"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	data, err := h.issueTokens(ctx, userPart{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Token refreshed", "data": data})
}

// Logout revokes the supplied refresh token, or every session of the
// authenticated caller when no token is in the body.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	refreshToken := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if refreshToken != "" {
		hash := utils.HashTokenRaw(refreshToken)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid refresh token"})
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
		}
		return c.NoContent(http.StatusNoContent)
	}

	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Provide refresh_token or an access token"})
	}
	if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Profile returns the authenticated account without credential fields.
func (h *AuthHandler) Profile(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    userPart{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role},
	})
}

// ForgotPassword stores a hashed single-use reset token and queues the
// reset email.  The response is the same whether or not the email exists.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Email is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	accepted := echo.Map{"success": true, "message": "If that account exists, a reset link has been sent"}

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusOK, accepted)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	reset, err := utils.NewResetToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	if err := h.Users.SetResetToken(ctx, u.ID, utils.HashTokenRaw(reset.Raw), reset.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	if h.Events != nil {
		ev := queue.EmailEvent{
			Kind:     queue.KindPasswordReset,
			To:       u.Email,
			ResetURL: strings.TrimRight(h.Cfg.ClientURL, "/") + "/reset-password/" + reset.Raw,
		}
		if err := h.Events.Publish(ctx, ev); err != nil {
			c.Logger().Warnf("reset event not published for %s: %v", u.Email, err)
		}
	}
	return c.JSON(http.StatusOK, accepted)
}

// ResetPassword consumes the emailed token and sets a new password.  All
// refresh tokens of the account are revoked so stolen sessions die with
// the old password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	token := strings.TrimSpace(c.Param("token"))
	var req resetReq
	if err := c.Bind(&req); err != nil || token == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Token and new password are required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Password must be at least 6 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByResetToken(ctx, utils.HashTokenRaw(token))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid or expired reset token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	if err := h.Users.UpdatePassword(ctx, u.ID, req.Password, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}
	_ = h.Tokens.RevokeAllForUser(ctx, u.ID)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Password updated, please log in"})
}
