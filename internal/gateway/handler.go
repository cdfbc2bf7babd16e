package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notigw/internal/logger"
	"notigw/pkg/errors"
	"notigw/pkg/logging"
)

type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	notifications := router.Group("/notifications")
	{
		notifications.POST("", h.Forward)
		notifications.GET("/sample", h.Sample)
	}
}

func (h *Handler) HandleError(c *gin.Context, err error) {
	h.logger.ErrorwCtx(c.Request.Context(), "Request error", "error", err, "path", c.Request.URL.Path)
	c.JSON(errors.ToHTTPStatus(err), errors.ToErrorResponse(err))
}

// Forward godoc
// @Summary      Forward one message to the notification system
// @Description  Validate, encode, and dispatch a single action to the configured transport
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        action  body  ForwardRequest  true  "Action to forward"
// @Success      200  "Message forwarded"
// @Failure      400  {object}  map[string]interface{}  "Incoming message was not valid"
// @Failure      500  {object}  map[string]interface{}
// @Router       /notifications [post]
func (h *Handler) Forward(c *gin.Context) {
	var req ForwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errors.ToErrorResponse(errors.ErrValidation.WithCause(err)))
		return
	}

	ctx := logging.WithAccountID(c.Request.Context(), req.AccountID)

	if err := h.service.Forward(ctx, req); err != nil {
		h.HandleError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Sample godoc
// @Summary      Return an example action
// @Description  Static, schema-valid example request for client integration testing
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  ForwardRequest
// @Router       /notifications/sample [get]
func (h *Handler) Sample(c *gin.Context) {
	c.JSON(http.StatusOK, SampleRequest())
}
