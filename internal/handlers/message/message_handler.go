// internal/handlers/message/message_handler.go
package message

import (
	"context"
	"net/http"
	"strconv"

	"realty-service/internal/domain/message"
	"realty-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req *message.CreateRequest) (*message.Message, error)
	List(ctx context.Context, limit int) ([]*message.Message, error)
	Delete(ctx context.Context, id int64) error
}

type MessageHandler struct {
	service Service
	logger  *zap.Logger
}

func NewMessageHandler(service Service, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		service: service,
		logger:  logger,
	}
}

// Create accepts a contact or property inquiry from the public site.
func (h *MessageHandler) Create(c *gin.Context) {
	var req message.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "name, email and message are required", err)
		return
	}

	m, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "message sent", gin.H{"id": m.ID})
}

func (h *MessageHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	messages, err := h.service.List(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "messages retrieved", messages)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid message id", nil)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "message deleted", gin.H{"deleted": true})
}
