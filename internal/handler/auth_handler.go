package handler

import (
	"net/http"

	"service-plus/internal/apperr"
	"service-plus/internal/auth"
	"service-plus/internal/directory"
	"service-plus/pkg/logger"
	"service-plus/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler serves the login and client-picker endpoints.
type AuthHandler struct {
	auth *auth.Authenticator
	dir  *directory.Resolver
}

// NewAuthHandler wires the handler's collaborators.
func NewAuthHandler(authenticator *auth.Authenticator, dir *directory.Resolver) *AuthHandler {
	return &AuthHandler{auth: authenticator, dir: dir}
}

// Login authenticates a credential pair against the tenant selected in the
// request and returns the signed access token.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		ClientID int64  `json:"client_id"`
		Identity string `json:"identity"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": apperr.MsgInvalidInput})
	}
	if req.Identity == "" || req.Password == "" {
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": apperr.MsgInvalidInput})
	}

	result, err := h.auth.Login(c.Request().Context(), req.ClientID, req.Identity, req.Password)
	if err != nil {
		if kind, ok := apperr.KindOf(err); ok {
			prometheus.RecordAuthError(string(kind))
		}
		return errorJSON(c, err)
	}

	prometheus.IncreaseActiveTokens()
	return c.JSON(http.StatusOK, result)
}

// GetClients returns active clients matching an optional name prefix, for
// the login client picker.
func (h *AuthHandler) GetClients(c echo.Context) error {
	log := logger.FromContext(c)

	criteria := c.QueryParam("criteria")
	clients, err := h.dir.Search(c.Request().Context(), criteria)
	if err != nil {
		log.Error("Client search failed", zap.Error(err))
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, clients)
}
