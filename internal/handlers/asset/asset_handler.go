// internal/handlers/asset/asset_handler.go
package asset

import (
	"net/http"

	"realty-service/internal/domain/asset"
	"realty-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssetHandler struct {
	store  asset.Store
	logger *zap.Logger
}

// NewAssetHandler builds the handler. store is nil when no bucket is configured.
func NewAssetHandler(store asset.Store, logger *zap.Logger) *AssetHandler {
	return &AssetHandler{
		store:  store,
		logger: logger,
	}
}

// Sign grants a short-lived direct upload for one listing image.
func (h *AssetHandler) Sign(c *gin.Context) {
	if h.store == nil {
		response.Error(c, http.StatusServiceUnavailable, "asset store not configured", nil)
		return
	}

	var req asset.SignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "unsupported content type", err)
		return
	}

	upload, err := h.store.SignUpload(c.Request.Context(), req.ContentType)
	if err != nil {
		h.logger.Error("failed to sign upload", zap.Error(err))
		response.Error(c, http.StatusServiceUnavailable, "service unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, "upload signed", upload)
}
