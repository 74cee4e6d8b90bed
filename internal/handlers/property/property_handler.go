// internal/handlers/property/property_handler.go
package property

import (
	"context"
	"net/http"
	"strconv"

	"realty-service/internal/domain/property"
	"realty-service/internal/pkg/response"
	propertysvc "realty-service/internal/service/property"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, q propertysvc.ListQuery) ([]*property.Property, error)
	Get(ctx context.Context, id int64, includeInactive bool) (*property.Property, error)
	Create(ctx context.Context, req *property.UpsertRequest) (*property.Property, error)
	Update(ctx context.Context, id int64, req *property.UpsertRequest) (*property.Property, error)
	SetActive(ctx context.Context, id int64, active bool) (*property.Property, error)
	Delete(ctx context.Context, id int64) error
}

type PropertyHandler struct {
	service Service
	logger  *zap.Logger
}

func NewPropertyHandler(service Service, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{
		service: service,
		logger:  logger,
	}
}

// ========== Public catalog ==========

func (h *PropertyHandler) List(c *gin.Context) {
	h.list(c, false)
}

func (h *PropertyHandler) Get(c *gin.Context) {
	h.get(c, false)
}

// ========== CMS ==========

// AdminList includes hidden listings.
func (h *PropertyHandler) AdminList(c *gin.Context) {
	h.list(c, true)
}

func (h *PropertyHandler) AdminGet(c *gin.Context) {
	h.get(c, true)
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var req property.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid property", err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "property created", p)
}

func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req property.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid property", err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "property updated", p)
}

func (h *PropertyHandler) SetActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req property.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "is_active is required", err)
		return
	}

	p, err := h.service.SetActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "property visibility updated", p)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "property deleted", gin.H{"deleted": true})
}

func (h *PropertyHandler) list(c *gin.Context, includeInactive bool) {
	properties, err := h.service.List(c.Request.Context(), propertysvc.ListQuery{
		Title:           c.Query("title"),
		Location:        c.Query("location"),
		Type:            c.Query("type"),
		IncludeInactive: includeInactive,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "properties retrieved", properties)
}

func (h *PropertyHandler) get(c *gin.Context, includeInactive bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id, includeInactive)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "property retrieved", p)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid property id", nil)
		return 0, false
	}
	return id, true
}
