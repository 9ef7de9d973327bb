package handler

import (
	"net/http"
	"strconv"

	"service-plus/internal/apperr"
	"service-plus/internal/directory"
	"service-plus/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ClientHandler serves the superadmin client-management endpoints against
// the directory database.
type ClientHandler struct {
	dir *directory.Resolver
}

// NewClientHandler wires the handler's collaborators.
func NewClientHandler(dir *directory.Resolver) *ClientHandler {
	return &ClientHandler{dir: dir}
}

// CreateClient inserts a new client row into the directory.
func (h *ClientHandler) CreateClient(c echo.Context) error {
	log := logger.FromContext(c)

	var req directory.NewClient
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse client request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": apperr.MsgInvalidInput})
	}

	client, err := h.dir.Create(c.Request().Context(), req)
	if err != nil {
		log.Error("Client creation failed", zap.Error(err))
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": apperr.MsgClientCreated,
		"client":  client,
	})
}

// DeactivateClient flips a client's activation flag off.
func (h *ClientHandler) DeactivateClient(c echo.Context) error {
	log := logger.FromContext(c)

	clientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": apperr.MsgInvalidInput})
	}

	if err := h.dir.Deactivate(c.Request().Context(), clientID); err != nil {
		log.Error("Client deactivation failed", zap.Int64("client_id", clientID), zap.Error(err))
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Client deactivated"})
}
