package handler

import (
	"errors"
	"net/http"

	"service-plus/internal/apperr"
	"service-plus/prometheus"

	"github.com/labstack/echo/v4"
)

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": "service-plus",
	})
}

// MetricsHandler exposes the Prometheus metrics endpoint
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}

// errorJSON maps an application error to its HTTP status and client-safe
// message; anything outside the taxonomy becomes a plain 500.
func errorJSON(c echo.Context, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"error": appErr.Message})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": apperr.MsgInternalServerError})
}
