// internal/service/auth/admin_create.go
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"realty-service/internal/domain/activity"
	"realty-service/internal/domain/admin"
	xerrors "realty-service/internal/pkg/errors"
	"realty-service/internal/pkg/otp"
	"realty-service/internal/pkg/password"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ========== Provisioning ==========

var validate = validator.New()

// normalizeCreate trims the email and rejects malformed input before any
// store or hashing work.
func normalizeCreate(req *admin.CreateAdminRequest) (*admin.CreateAdminRequest, error) {
	out := *req
	out.Email = strings.TrimSpace(req.Email)
	if err := validate.Var(out.Email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: a valid email is required", xerrors.ErrInvalidInput)
	}
	if out.Password == "" {
		return nil, xerrors.ErrInvalidInput
	}
	if len(out.Password) > password.MaxLength {
		return nil, password.ErrTooLong
	}
	return &out, nil
}

// CreateAdminWithMasterKey creates the first admin. The key is only honoured
// while no admin exists, so this path answers Unauthorized, never LimitReached.
func (s *AuthService) CreateAdminWithMasterKey(ctx context.Context, req *admin.CreateAdminRequest, masterKey, clientIP string) (*admin.CreateAdminResponse, error) {
	req, err := normalizeCreate(req)
	if err != nil {
		return nil, err
	}

	res, err := s.limiter.Allow(ctx, masterKeyRule.Key(clientIP), masterKeyRule.Limit, masterKeyRule.Window)
	if err != nil {
		return nil, xerrors.Unavailable(err, "rate limiter failed")
	}
	if !res.Allowed {
		return nil, xerrors.ErrRateLimited
	}

	if s.opts.MasterKey == "" || subtle.ConstantTimeCompare([]byte(masterKey), []byte(s.opts.MasterKey)) != 1 {
		s.logger.Warn("admin creation refused: bad master key", zap.String("ip", clientIP))
		return nil, xerrors.ErrUnauthorized
	}

	resp, err := s.createAdmin(ctx, req, 1, "master_key")
	if errors.Is(err, xerrors.ErrLimitReached) {
		s.logger.Warn("admin creation refused: master key used after bootstrap", zap.String("ip", clientIP))
		return nil, xerrors.ErrUnauthorized
	}
	return resp, err
}

// CreateAdminAsAdmin lets a verified admin add another account, within the ceiling.
func (s *AuthService) CreateAdminAsAdmin(ctx context.Context, req *admin.CreateAdminRequest, caller *admin.Admin) (*admin.CreateAdminResponse, error) {
	if caller == nil {
		return nil, xerrors.ErrUnauthorized
	}
	if !caller.IsVerified {
		return nil, xerrors.ErrNotVerified
	}
	req, err := normalizeCreate(req)
	if err != nil {
		return nil, err
	}
	return s.createAdmin(ctx, req, s.opts.AdminLimit, caller.Email)
}

func (s *AuthService) createAdmin(ctx context.Context, req *admin.CreateAdminRequest, limit int, createdBy string) (*admin.CreateAdminResponse, error) {
	hash, err := password.Hash(req.Password)
	if errors.Is(err, xerrors.ErrInvalidInput) {
		return nil, err
	}
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrInternal, err.Error())
	}

	code, err := otp.NewCode()
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrInternal, err.Error())
	}

	a := &admin.Admin{
		Email:            req.Email,
		PasswordHash:     hash,
		Role:             admin.RoleAdmin,
		IsVerified:       false,
		VerificationCode: &code,
		Name:             req.Name,
	}

	if err := s.store.CreateWithinLimit(ctx, a, limit); err != nil {
		switch {
		case errors.Is(err, xerrors.ErrLimitReached):
			s.logger.Warn("admin limit reached", zap.Int("limit", limit))
			return nil, err
		case errors.Is(err, xerrors.ErrAlreadyExists):
			return nil, err
		}
		s.logger.Error("failed to create admin", zap.String("email", req.Email), zap.Error(err))
		return nil, xerrors.Unavailable(err, "failed to create admin")
	}

	s.notifier.SendVerificationCode(a.Email, a.Name, code)

	s.logger.Info("admin created",
		zap.Int64("admin_id", a.ID),
		zap.String("email", a.Email),
		zap.String("created_by", createdBy),
	)
	s.activity.Record(ctx, activity.LevelInfo, "admin created", map[string]interface{}{
		"email":      a.Email,
		"created_by": createdBy,
	})

	resp := &admin.CreateAdminResponse{Admin: a.Info()}
	if s.opts.ExposeCodes {
		resp.VerificationCode = code
	}
	return resp, nil
}

// DeleteAdmin removes an account unless it is the last one.
func (s *AuthService) DeleteAdmin(ctx context.Context, id int64, caller *admin.Admin) error {
	target, err := s.store.FindByID(ctx, id)
	if errors.Is(err, xerrors.ErrNotFound) {
		return err
	}
	if err != nil {
		return xerrors.Unavailable(err, "failed to look up admin")
	}

	if err := s.store.DeleteUnlessLast(ctx, id); err != nil {
		if errors.Is(err, xerrors.ErrLastAdmin) || errors.Is(err, xerrors.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete admin", zap.Int64("admin_id", id), zap.Error(err))
		return xerrors.Unavailable(err, "failed to delete admin")
	}

	deletedBy := ""
	if caller != nil {
		deletedBy = caller.Email
	}
	s.logger.Info("admin deleted",
		zap.Int64("admin_id", id),
		zap.String("email", target.Email),
		zap.String("deleted_by", deletedBy),
	)
	s.activity.Record(ctx, activity.LevelInfo, "admin deleted", map[string]interface{}{
		"admin_id":   id,
		"email":      target.Email,
		"deleted_by": deletedBy,
	})
	return nil
}

// ========== Settings ==========

func (s *AuthService) ListAdmins(ctx context.Context) ([]admin.AdminInfo, error) {
	admins, err := s.store.List(ctx)
	if err != nil {
		return nil, xerrors.Unavailable(err, "failed to list admins")
	}

	infos := make([]admin.AdminInfo, 0, len(admins))
	for _, a := range admins {
		infos = append(infos, a.Info())
	}
	return infos, nil
}

// GetSettings returns the caller's profile and the account list.
func (s *AuthService) GetSettings(ctx context.Context, email string) (*admin.SettingsResponse, error) {
	a, err := s.lookup(ctx, email)
	if err != nil {
		return nil, err
	}

	admins, err := s.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}

	return &admin.SettingsResponse{Profile: a.Info(), Admins: admins}, nil
}

// UpdateProfile changes display fields. A new password also resets
// verification and ends every existing session, even when it equals the old one.
func (s *AuthService) UpdateProfile(ctx context.Context, email string, req *admin.UpdateProfileRequest) (*admin.UpdateProfileResponse, error) {
	a, err := s.lookup(ctx, email)
	if err != nil {
		return nil, err
	}

	upd := admin.ProfileUpdate{
		Name:         req.Name,
		CompanyName:  req.CompanyName,
		ProfileImage: req.ProfileImage,
	}

	passwordChanged := req.Password != ""
	if passwordChanged {
		hash, err := password.Hash(req.Password)
		if errors.Is(err, xerrors.ErrInvalidInput) {
			return nil, err
		}
		if err != nil {
			return nil, xerrors.Wrap(xerrors.ErrInternal, err.Error())
		}
		code, err := otp.NewCode()
		if err != nil {
			return nil, xerrors.Wrap(xerrors.ErrInternal, err.Error())
		}
		upd.PasswordHash = &hash
		upd.VerificationCode = code
	}

	updated, err := s.store.UpdateProfile(ctx, a.ID, upd)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update profile", zap.Int64("admin_id", a.ID), zap.Error(err))
		return nil, xerrors.Unavailable(err, "failed to update profile")
	}

	if passwordChanged {
		s.notifier.SendVerificationCode(updated.Email, updated.Name, upd.VerificationCode)
		s.logger.Info("password changed, sessions revoked",
			zap.Int64("admin_id", updated.ID),
			zap.Int64("session_version", updated.SessionVersion),
		)
		s.activity.Record(ctx, activity.LevelInfo, "password changed", map[string]interface{}{"email": updated.Email})
	}

	return &admin.UpdateProfileResponse{
		Admin:          updated.Info(),
		ReAuthRequired: passwordChanged,
	}, nil
}

// EnsureBootstrapAdmin creates a pre-verified admin from operator-supplied
// credentials when the store is empty (called on startup).
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context, email, plaintext, name string) error {
	if email == "" {
		return nil
	}
	if plaintext == "" {
		return fmt.Errorf("bootstrap admin password must be provided")
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		s.logger.Info("admins already exist, skipping bootstrap")
		return nil
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	a := &admin.Admin{
		Email:        email,
		PasswordHash: hash,
		Role:         admin.RoleAdmin,
		IsVerified:   true,
		Name:         name,
	}
	if err := s.store.CreateWithinLimit(ctx, a, 1); err != nil {
		if errors.Is(err, xerrors.ErrLimitReached) || errors.Is(err, xerrors.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	s.logger.Info("bootstrap admin created", zap.String("email", email), zap.Int64("admin_id", a.ID))
	return nil
}
