package relay

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/pushrelay/pushrelay/internal/errors"
	"github.com/pushrelay/pushrelay/internal/logger"
	"github.com/pushrelay/pushrelay/internal/pushover"
)

// Handler exposes the relay service over REST.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new relay handler.
func NewHandler(service *Service, logger *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   ServiceName,
		"version":   Version,
	})
}

// Send handles POST /api/v1/send.
func (h *Handler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.AbortWithBadRequest(c, "Invalid request body: "+err.Error(), nil)
		return
	}

	result, err := h.service.SendNotification(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "send notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  1,
		"data":    result,
		"message": "Notification sent successfully",
	})
}

// Limits handles GET /api/v1/limits.
func (h *Handler) Limits(c *gin.Context) {
	result, err := h.service.CheckLimits(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "check limits")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  1,
		"data":    result,
	})
}

// Validate handles POST /api/v1/validate.
func (h *Handler) Validate(c *gin.Context) {
	var req struct {
		User   string `json:"user"`
		Device string `json:"device"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.AbortWithBadRequest(c, "Invalid request body: "+err.Error(), nil)
		return
	}

	result, err := h.service.ValidateUser(c.Request.Context(), req.User, req.Device)
	if err != nil {
		h.respondError(c, err, "validate user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  1,
		"data":    result,
	})
}

// Emergency handles POST /api/v1/emergency.
func (h *Handler) Emergency(c *gin.Context) {
	var req struct {
		Message  string  `json:"message"`
		Title    *string `json:"title"`
		URL      *string `json:"url"`
		URLTitle *string `json:"url_title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.AbortWithBadRequest(c, "Invalid request body: "+err.Error(), nil)
		return
	}

	result, err := h.service.SendEmergency(c.Request.Context(), SendRequest{
		Message:  req.Message,
		Title:    req.Title,
		URL:      req.URL,
		URLTitle: req.URLTitle,
	})
	if err != nil {
		h.respondError(c, err, "send emergency alert")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  1,
		"data":    result,
		"message": "Emergency alert sent successfully",
	})
}

// SendTemplate handles POST /api/v1/templates/:template. The REST path is
// strict: an unrecognized template is rejected with the valid set named,
// unlike the GraphQL surface where the schema enum already constrains it.
func (h *Handler) SendTemplate(c *gin.Context) {
	template := c.Param("template")

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.AbortWithBadRequest(c, "Invalid request body: "+err.Error(), nil)
		return
	}

	result, err := h.service.SendTemplate(c.Request.Context(), template, req, true)
	if err != nil {
		h.respondError(c, err, "send template notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"status":   1,
		"data":     result,
		"template": template,
		"message":  "Notification sent successfully",
	})
}

// Docs handles GET /api/v1/docs.
func (h *Handler) Docs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    ServiceName,
		"version": Version,
		"endpoints": gin.H{
			"GET /api/v1/health":              "Health check",
			"POST /api/v1/send":               "Send notification",
			"GET /api/v1/limits":              "Check application limits",
			"POST /api/v1/validate":           "Validate user key",
			"POST /api/v1/emergency":          "Send emergency alert",
			"POST /api/v1/templates/:template": "Send notification with template",
			"POST /api/v1/graphql":            "GraphQL endpoint",
			"GET /api/v1/docs":                "API documentation",
		},
		"templates":  pushover.TemplateNames(),
		"categories": pushover.CategoryNames(),
		"examples": gin.H{
			"send": gin.H{
				"method": "POST",
				"url":    "/api/v1/send",
				"body": gin.H{
					"message":  "Hello World!",
					"title":    "Test Notification",
					"priority": 0,
				},
			},
			"emergency": gin.H{
				"method": "POST",
				"url":    "/api/v1/emergency",
				"body": gin.H{
					"message": "Server is down!",
					"title":   "🚨 Emergency Alert",
				},
			},
			"template": gin.H{
				"method": "POST",
				"url":    "/api/v1/templates/success",
				"body": gin.H{
					"message": "Task completed successfully!",
				},
			},
		},
	})
}

// NotFound is the fallback for unknown /api/v1 routes.
func (h *Handler) NotFound(c *gin.Context) {
	apierrors.NotFound(c, "Endpoint not found", map[string]interface{}{
		"available_endpoints": []string{
			"GET /api/v1/health",
			"POST /api/v1/send",
			"GET /api/v1/limits",
			"POST /api/v1/validate",
			"POST /api/v1/emergency",
			"POST /api/v1/templates/:template",
			"POST /api/v1/graphql",
			"GET /api/v1/docs",
		},
	})
}

// respondError maps the dispatch error taxonomy onto HTTP responses: caller
// mistakes become 400s, provider rejections 502s with the provider's own
// message surfaced verbatim, transport failures 500s with the cause kept in
// the server logs only.
func (h *Handler) respondError(c *gin.Context, err error, op string) {
	log := h.logger.WithContext(c.Request.Context()).WithComponent("relay_handler")

	var validationErr *pushover.ValidationError
	var providerErr *pushover.ProviderError
	var transportErr *pushover.TransportError

	switch {
	case errors.As(err, &validationErr):
		apierrors.AbortWithBadRequest(c, validationErr.Error(), nil)

	case errors.As(err, &providerErr):
		log.Warn("provider rejected request",
			slog.String("operation", op),
			slog.Int("provider_status", providerErr.Status),
			slog.Int("http_status", providerErr.HTTPStatus),
			slog.String("errors", strings.Join(providerErr.Errors, "; ")))
		apierrors.AbortWithBadGateway(c, "Failed to "+op+": "+providerErr.Error(), map[string]interface{}{
			"provider_status": providerErr.Status,
			"provider_errors": providerErr.Errors,
		})

	case errors.As(err, &transportErr):
		log.Error("provider transport failure",
			slog.String("operation", op),
			slog.String("kind", string(transportErr.Kind)),
			slog.String("error", transportErr.Error()))
		apierrors.AbortWithInternal(c, "Failed to reach notification provider", nil)

	default:
		log.Error("unexpected dispatch failure",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		apierrors.AbortWithInternal(c, "Internal server error", nil)
	}
}
