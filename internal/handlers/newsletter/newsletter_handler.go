// internal/handlers/newsletter/newsletter_handler.go
package newsletter

import (
	"context"
	"net/http"

	"realty-service/internal/domain/newsletter"
	"realty-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Service interface {
	Subscribe(ctx context.Context, email string) (bool, error)
}

type NewsletterHandler struct {
	service Service
	logger  *zap.Logger
}

func NewNewsletterHandler(service Service, logger *zap.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		service: service,
		logger:  logger,
	}
}

func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req newsletter.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	created, err := h.service.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !created {
		response.Success(c, http.StatusOK, "You are already subscribed!", nil)
		return
	}
	response.Success(c, http.StatusCreated, "Subscribed successfully!", nil)
}
