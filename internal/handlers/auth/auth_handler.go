// internal/handlers/auth/auth_handler.go
package auth

import (
	"context"
	"net/http"

	"realty-service/internal/domain/admin"
	"realty-service/internal/middleware"
	xerrors "realty-service/internal/pkg/errors"
	"realty-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Service is the part of the auth service the login screen needs.
type Service interface {
	Login(ctx context.Context, req *admin.LoginRequest) (*admin.LoginResponse, error)
}

type AuthHandler struct {
	authService Service
	logger      *zap.Logger
}

func NewAuthHandler(authService Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// ========== Login ==========

func (h *AuthHandler) Login(c *gin.Context) {
	var req admin.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	loginResp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if status, _ := response.StatusFor(err); status >= http.StatusInternalServerError {
			h.logger.Error("login failed", zap.String("ip", c.ClientIP()), zap.Error(err))
		}
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", loginResp)
}

// ========== Session ==========

// Session returns the refreshed session produced by the Auth middleware.
func (h *AuthHandler) Session(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		response.FromError(c, xerrors.ErrSessionInvalid)
		return
	}

	response.Success(c, http.StatusOK, "session valid", admin.SessionResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		Admin:     sess.Admin.Info(),
	})
}
