package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"talentdash/internal/api/middleware"
	"talentdash/internal/auth"
	"talentdash/internal/database"
)

const (
	refreshTokenCookieName = "refresh_token"
	refreshBlacklistPrefix = "auth:refresh:blacklist:"
)

// AuthHandler handles register, login, refresh and logout.
type AuthHandler struct {
	users         UserRepo
	authService   *auth.AuthService
	redis         redis.UniversalClient
	logger        *slog.Logger
	loginsPerHour int
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(users UserRepo, authService *auth.AuthService, redisClient redis.UniversalClient, logger *slog.Logger, loginsPerHour int) *AuthHandler {
	return &AuthHandler{
		users:         users,
		authService:   authService,
		redis:         redisClient,
		logger:        logger,
		loginsPerHour: loginsPerHour,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// Register creates a recruiter account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := h.requestLogger(c).With(slog.String("username", req.Username))

	if _, err := h.users.FindByUsername(ctx, req.Username); err == nil {
		logger.Info("register conflict: user already exists")
		Conflict(c, "username already taken")
		return
	} else if !errors.Is(err, errUserNotFound) {
		logger.Error("register lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("hash password failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	user := database.User{Username: req.Username, PasswordHash: hashed}
	if err := h.users.Create(ctx, &user); err != nil {
		logger.Error("create user failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("user registered", slog.Uint64("user_id", uint64(user.ID)))
	c.Status(http.StatusCreated)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Login verifies credentials and returns a token pair. Attempts are counted
// per IP and username in hourly buckets.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := h.requestLogger(c).With(slog.String("username", req.Username))

	bucket := time.Now().UTC().Format("2006010215")
	rateKey := "rate:login:" + c.ClientIP() + ":" + strings.ToLower(req.Username) + ":" + bucket
	attempts, err := incrWithTTL(ctx, h.redis, rateKey, time.Hour)
	if err != nil {
		// A broken counter never locks every user out.
		attempts = 0
	}
	if attempts > int64(h.loginsPerHour) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	user, err := h.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			logger.Info("login failed: user not found")
			Unauthorized(c)
			return
		}
		logger.Error("login query failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Info("login failed: password mismatch", slog.Uint64("user_id", uint64(user.ID)))
		Unauthorized(c)
		return
	}

	pair, err := h.authService.GenerateTokenPair(user.ID)
	if err != nil {
		logger.Error("generate token pair failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	h.replyWithTokenPair(c, pair)
}

// Refresh validates the refresh token and rotates the token pair. The old
// token's jti goes on the blacklist so it cannot be replayed.
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	logger := h.requestLogger(c)

	claims, ok := h.refreshClaims(c, logger)
	if !ok {
		return
	}

	blacklistKey := refreshBlacklistPrefix + claims.ID
	if err := h.redis.Get(ctx, blacklistKey).Err(); err == nil {
		logger.Info("refresh token revoked", slog.String("jti", claims.ID))
		Unauthorized(c)
		return
	} else if !errors.Is(err, redis.Nil) {
		logger.Error("refresh token blacklist lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if _, err := h.users.FindByID(ctx, claims.UserID); err != nil {
		logger.Info("refresh user not found", slog.Any("error", err))
		Unauthorized(c)
		return
	}

	pair, err := h.authService.GenerateTokenPair(claims.UserID)
	if err != nil {
		logger.Error("refresh generate token pair failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if err := h.revokeRefreshToken(ctx, blacklistKey, claims.ExpiresAt.Time); err != nil {
		logger.Error("refresh revoke old token failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	h.replyWithTokenPair(c, pair)
}

// Logout blacklists the refresh token and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	logger := h.requestLogger(c)

	claims, ok := h.refreshClaims(c, logger)
	if !ok {
		return
	}

	if err := h.revokeRefreshToken(ctx, refreshBlacklistPrefix+claims.ID, claims.ExpiresAt.Time); err != nil {
		logger.Error("logout revoke token failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	h.writeRefreshCookie(c, "", -1)
	c.Status(http.StatusOK)
}

// refreshClaims extracts and validates the refresh token from the cookie or
// body. On failure it writes the error response and returns ok=false.
func (h *AuthHandler) refreshClaims(c *gin.Context, logger *slog.Logger) (*auth.TokenClaims, bool) {
	token := h.extractRefreshToken(c)
	if token == "" {
		Unauthorized(c)
		return nil, false
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		logger.Info("refresh token invalid", slog.Any("error", err))
		Unauthorized(c)
		return nil, false
	}
	if claims.TokenType != auth.TokenTypeRefresh || claims.ID == "" || claims.ExpiresAt == nil {
		logger.Info("refresh token malformed", slog.String("token_type", claims.TokenType))
		Unauthorized(c)
		return nil, false
	}
	return claims, true
}

func (h *AuthHandler) replyWithTokenPair(c *gin.Context, pair auth.TokenPair) {
	maxAge := int(h.authService.RefreshTokenTTL().Seconds())
	if maxAge <= 0 {
		maxAge = int(time.Hour.Seconds())
	}
	h.writeRefreshCookie(c, pair.RefreshToken, maxAge)

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.authService.AccessTokenTTL().Seconds()),
	})
}

func (h *AuthHandler) extractRefreshToken(c *gin.Context) string {
	if token, err := c.Cookie(refreshTokenCookieName); err == nil && token != "" {
		return token
	}

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&body); err == nil {
		return body.RefreshToken
	}
	return ""
}

func (h *AuthHandler) writeRefreshCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     refreshTokenCookieName,
		Value:    value,
		MaxAge:   maxAge,
		Path:     "/",
		Secure:   isHTTPSRequest(c),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) revokeRefreshToken(ctx context.Context, key string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	return h.redis.Set(ctx, key, "revoked", ttl).Err()
}

func (h *AuthHandler) requestLogger(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

func isHTTPSRequest(c *gin.Context) bool {
	if c.Request == nil {
		return false
	}
	if c.Request.TLS != nil {
		return true
	}
	return strings.EqualFold(c.Request.Header.Get("X-Forwarded-Proto"), "https")
}
