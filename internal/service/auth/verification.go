package auth

import (
	"context"
	"errors"

	"realty-service/internal/domain/activity"
	"realty-service/internal/domain/admin"
	xerrors "realty-service/internal/pkg/errors"
	"realty-service/internal/pkg/otp"

	"go.uber.org/zap"
)

// ResendVerificationCode replaces the pending code unconditionally and mails it.
func (s *AuthService) ResendVerificationCode(ctx context.Context, email string) (*admin.ResendResponse, error) {
	if email == "" {
		return nil, xerrors.ErrInvalidInput
	}

	a, err := s.lookup(ctx, email)
	if err != nil {
		return nil, err
	}

	code, err := otp.NewCode()
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrInternal, err.Error())
	}

	if err := s.store.SetVerificationCode(ctx, a.ID, code); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to store verification code", zap.Int64("admin_id", a.ID), zap.Error(err))
		return nil, xerrors.Unavailable(err, "failed to store verification code")
	}

	s.notifier.SendVerificationCode(a.Email, a.Name, code)
	s.logger.Info("verification code reissued", zap.Int64("admin_id", a.ID))

	resp := &admin.ResendResponse{Sent: true}
	if s.opts.ExposeCodes {
		resp.VerificationCode = code
	}
	return resp, nil
}

// ConfirmVerification marks the account verified when code matches the
// pending one. A wrong code leaves the pending code usable.
func (s *AuthService) ConfirmVerification(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return xerrors.ErrInvalidInput
	}

	a, err := s.lookup(ctx, email)
	if err != nil {
		return err
	}
	if a.IsVerified {
		return xerrors.ErrAlreadyVerified
	}

	key := verifyRule.Key(email)
	res, err := s.limiter.Allow(ctx, key, verifyRule.Limit, verifyRule.Window)
	if err != nil {
		return xerrors.Unavailable(err, "rate limiter failed")
	}
	if !res.Allowed {
		s.logger.Warn("verification attempts exhausted", zap.Int64("admin_id", a.ID))
		return xerrors.ErrRateLimited
	}

	ok, err := s.store.MarkVerified(ctx, a.ID, code)
	if err != nil {
		s.logger.Error("failed to mark admin verified", zap.Int64("admin_id", a.ID), zap.Error(err))
		return xerrors.Unavailable(err, "failed to verify admin")
	}
	if !ok {
		s.logger.Info("verification code mismatch", zap.Int64("admin_id", a.ID))
		return xerrors.ErrInvalidCode
	}

	if err := s.limiter.Reset(ctx, key); err != nil {
		s.logger.Warn("failed to reset verification limiter", zap.Error(err))
	}

	s.logger.Info("admin verified", zap.Int64("admin_id", a.ID))
	s.activity.Record(ctx, activity.LevelInfo, "admin verified", map[string]interface{}{"email": a.Email})
	return nil
}

func (s *AuthService) lookup(ctx context.Context, email string) (*admin.Admin, error) {
	a, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, xerrors.Unavailable(err, "failed to look up admin")
	}
	return a, nil
}
