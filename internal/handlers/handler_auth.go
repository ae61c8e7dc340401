package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
	"github.com/SscSPs/bank_backoffice/internal/platform/config"
	"github.com/SscSPs/bank_backoffice/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// AuthHandler opens sessions bound to a single account.
type AuthHandler struct {
	accountService portssvc.AccountAuthenticatorSvc
	jwtSecret      string
	jwtDuration    time.Duration
	jwtIssuer      string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AccountAuthenticatorSvc, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		accountService: as,
		jwtSecret:      cfg.JWTSecret,
		jwtDuration:    cfg.JWTExpiryDuration,
		jwtIssuer:      cfg.JWTIssuer,
	}
}

// registerAuthRoutes sets up the public authentication routes. Login attempts
// are rate limited per client IP when a limiter is given.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, accountService portssvc.AccountAuthenticatorSvc, loginLimiter *limiter.Limiter) {
	h := NewAuthHandler(accountService, cfg)

	auth := r.Group("/auth")
	if loginLimiter != nil {
		auth.Use(middleware.RateLimit(loginLimiter))
	}
	auth.POST("/account-login", h.AccountLogin)
}

// AccountLogin verifies an account credential and issues a token whose
// subject is the account owner and whose session is bound to the account.
// @Summary Log in to an account
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.AccountLoginRequest true "Account ID and credential"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid account or credential"
// @Failure 429 {object} map[string]string "Too many login attempts"
// @Router /auth/account-login [post]
func (h *AuthHandler) AccountLogin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AccountLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AccountLogin", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", req.AccountID))
	account, err := h.accountService.AuthenticateAccount(c.Request.Context(), req.AccountID, req.Credential)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorizedAccess) {
			logger.Warn("Account login failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid account credentials"})
			return
		}
		logger.Error("Failed to authenticate account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	token, err := utils.GenerateJWT(account.OwnerID, string(domain.RoleCustomer), account.AccountID, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		logger.Error("Failed to generate JWT", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Info("Account session opened")
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, AccountID: account.AccountID})
}
