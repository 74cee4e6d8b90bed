// internal/handlers/admin/admin_handler.go
package admin

import (
	"context"
	"net/http"
	"strconv"

	"realty-service/internal/domain/activity"
	"realty-service/internal/domain/admin"
	"realty-service/internal/middleware"
	xerrors "realty-service/internal/pkg/errors"
	"realty-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MasterKeyHeader may carry the admin creation secret instead of the body.
const MasterKeyHeader = "X-Admin-Master-Key"

// Service is the account management surface of the auth service.
type Service interface {
	ResendVerificationCode(ctx context.Context, email string) (*admin.ResendResponse, error)
	ConfirmVerification(ctx context.Context, email, code string) error
	GetSettings(ctx context.Context, email string) (*admin.SettingsResponse, error)
	UpdateProfile(ctx context.Context, email string, req *admin.UpdateProfileRequest) (*admin.UpdateProfileResponse, error)
	CreateAdminWithMasterKey(ctx context.Context, req *admin.CreateAdminRequest, masterKey, clientIP string) (*admin.CreateAdminResponse, error)
	CreateAdminAsAdmin(ctx context.Context, req *admin.CreateAdminRequest, caller *admin.Admin) (*admin.CreateAdminResponse, error)
	ListAdmins(ctx context.Context) ([]admin.AdminInfo, error)
	DeleteAdmin(ctx context.Context, id int64, caller *admin.Admin) error
}

// ActivityLister reads the activity log.
type ActivityLister interface {
	List(ctx context.Context, level string, limit int) ([]*activity.Entry, error)
}

// SessionRevoker closes live connections of an account whose session ended.
type SessionRevoker interface {
	RevokeAdmin(adminID int64, reason string)
}

type AdminHandler struct {
	service  Service
	activity ActivityLister
	revoker  SessionRevoker
	logger   *zap.Logger
}

// NewAdminHandler builds the handler. revoker may be nil.
func NewAdminHandler(service Service, activity ActivityLister, revoker SessionRevoker, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service:  service,
		activity: activity,
		revoker:  revoker,
		logger:   logger,
	}
}

// ========== Verification ==========

func (h *AdminHandler) Verify(c *gin.Context) {
	caller := middleware.MustGetAdmin(c)

	var req admin.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	err := h.service.ConfirmVerification(c.Request.Context(), caller.Email, req.Code)
	switch {
	case xerrors.Is(err, xerrors.ErrAlreadyVerified):
		response.Success(c, http.StatusOK, "already verified", admin.VerifyResponse{Verified: true})
	case err != nil:
		response.FromError(c, err)
	default:
		response.Success(c, http.StatusOK, "account verified", admin.VerifyResponse{Verified: true})
	}
}

func (h *AdminHandler) ResendCode(c *gin.Context) {
	caller := middleware.MustGetAdmin(c)

	resp, err := h.service.ResendVerificationCode(c.Request.Context(), caller.Email)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "verification code sent", resp)
}

// ========== Settings ==========

func (h *AdminHandler) GetSettings(c *gin.Context) {
	caller := middleware.MustGetAdmin(c)

	settings, err := h.service.GetSettings(c.Request.Context(), caller.Email)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "settings retrieved", settings)
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	caller := middleware.MustGetAdmin(c)

	var req admin.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), caller.Email, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if resp.ReAuthRequired && h.revoker != nil {
		h.revoker.RevokeAdmin(caller.ID, "password changed")
	}
	response.Success(c, http.StatusOK, "settings updated", resp)
}

// ========== Admin management ==========

// CreateWithMasterKey is the bootstrap path for the very first account.
func (h *AdminHandler) CreateWithMasterKey(c *gin.Context) {
	var req admin.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	key := c.GetHeader(MasterKeyHeader)
	if key == "" {
		key = req.MasterKey
	}

	resp, err := h.service.CreateAdminWithMasterKey(c.Request.Context(), &req, key, c.ClientIP())
	if err != nil {
		if xerrors.Is(err, xerrors.ErrUnauthorized) {
			h.logger.Warn("admin creation with master key refused", zap.String("ip", c.ClientIP()))
		}
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "admin created", resp)
}

func (h *AdminHandler) Create(c *gin.Context) {
	caller := middleware.MustGetAdmin(c)

	var req admin.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	resp, err := h.service.CreateAdminAsAdmin(c.Request.Context(), &req, caller)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "admin created", resp)
}

func (h *AdminHandler) List(c *gin.Context) {
	admins, err := h.service.ListAdmins(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "admins retrieved", admins)
}

func (h *AdminHandler) Delete(c *gin.Context) {
	caller := middleware.MustGetAdmin(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid admin id", nil)
		return
	}

	if err := h.service.DeleteAdmin(c.Request.Context(), id, caller); err != nil {
		response.FromError(c, err)
		return
	}

	if h.revoker != nil {
		h.revoker.RevokeAdmin(id, "account deleted")
	}
	response.Success(c, http.StatusOK, "admin deleted", gin.H{"deleted": true})
}

// ========== Activity log ==========

func (h *AdminHandler) Logs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.activity.List(c.Request.Context(), c.Query("level"), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "logs retrieved", entries)
}
