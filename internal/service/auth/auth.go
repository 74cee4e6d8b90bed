// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"realty-service/internal/domain/activity"
	"realty-service/internal/domain/admin"
	xerrors "realty-service/internal/pkg/errors"
	"realty-service/internal/pkg/jwt"
	"realty-service/internal/pkg/password"
	"realty-service/internal/pkg/ratelimit"

	"go.uber.org/zap"
)

// Notifier delivers verification codes. Implementations must not block the caller.
type Notifier interface {
	SendVerificationCode(to, name, code string)
}

// ActivityRecorder appends back-office events to the activity log.
type ActivityRecorder interface {
	Record(ctx context.Context, level activity.Level, message string, meta map[string]interface{})
}

// Options carries the account policy.
type Options struct {
	AdminLimit       int
	LockoutThreshold int
	LockoutDuration  time.Duration
	// MasterKey enables bootstrap creation of the first admin when non-empty.
	MasterKey string
	// ExposeCodes echoes verification codes in responses (development only).
	ExposeCodes bool
}

var (
	verifyRule    = ratelimit.Rule{Scope: "verify", Limit: 5, Window: 10 * time.Minute}
	masterKeyRule = ratelimit.Rule{Scope: "master_key", Limit: 5, Window: 15 * time.Minute}
)

type AuthService struct {
	store      admin.CredentialStore
	jwtManager *jwt.Manager
	limiter    ratelimit.Limiter
	notifier   Notifier
	activity   ActivityRecorder
	logger     *zap.Logger
	opts       Options
	now        func() time.Time
	verify     func(plaintext, hash string) bool
}

func NewAuthService(
	store admin.CredentialStore,
	jwtManager *jwt.Manager,
	limiter ratelimit.Limiter,
	notifier Notifier,
	recorder ActivityRecorder,
	logger *zap.Logger,
	opts Options,
) *AuthService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &AuthService{
		store:      store,
		jwtManager: jwtManager,
		limiter:    limiter,
		notifier:   notifier,
		activity:   recorder,
		logger:     logger,
		opts:       opts,
		now:        time.Now,
		verify:     password.Verify,
	}
}

// Session is the refreshed view of a token whose version still matches the store.
type Session struct {
	Admin     *admin.Admin
	Token     string
	ExpiresAt time.Time
}

// ========== Login ==========

// Login verifies credentials, applies the lockout policy and, on success,
// starts a new session generation for the account.
func (s *AuthService) Login(ctx context.Context, req *admin.LoginRequest) (*admin.LoginResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, xerrors.ErrInvalidInput
	}

	a, err := s.store.FindByEmail(ctx, req.Email)
	if errors.Is(err, xerrors.ErrNotFound) {
		// same bcrypt cost as a wrong password, so timing does not reveal the account
		s.verify(req.Password, password.DummyHash())
		loginAttempts.WithLabelValues("unknown_account").Inc()
		s.logger.Warn("login failed: unknown account", zap.String("email", req.Email))
		s.activity.Record(ctx, activity.LevelWarn, "login failed", map[string]interface{}{"email": req.Email, "reason": "unknown_account"})
		return nil, xerrors.ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("login lookup failed", zap.String("email", req.Email), zap.Error(err))
		return nil, xerrors.Unavailable(err, "failed to look up admin")
	}

	now := s.now()
	if a.IsLocked(now) {
		loginAttempts.WithLabelValues("locked").Inc()
		s.logger.Warn("login refused: account locked", zap.Int64("admin_id", a.ID))
		return nil, &xerrors.AccountLockedError{Minutes: a.LockMinutesRemaining(now)}
	}

	if !s.verify(req.Password, a.PasswordHash) {
		return nil, s.recordFailure(ctx, a, now)
	}

	updated, err := s.store.RecordSuccessfulLogin(ctx, a.ID, now)
	if errors.Is(err, xerrors.ErrNotFound) {
		// locked or removed between lookup and update
		return nil, s.recheck(ctx, req.Email, now)
	}
	if err != nil {
		s.logger.Error("failed to record login", zap.Int64("admin_id", a.ID), zap.Error(err))
		return nil, xerrors.Unavailable(err, "failed to record login")
	}

	token, expiresAt, err := s.issue(updated)
	if err != nil {
		return nil, err
	}

	loginAttempts.WithLabelValues("success").Inc()
	s.logger.Info("admin logged in",
		zap.Int64("admin_id", updated.ID),
		zap.Int64("session_version", updated.SessionVersion),
	)
	s.activity.Record(ctx, activity.LevelInfo, "login succeeded", map[string]interface{}{"email": updated.Email})

	return &admin.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Admin:     updated.Info(),
	}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, a *admin.Admin, now time.Time) error {
	state, err := s.store.RecordFailedLogin(ctx, a.ID, s.opts.LockoutThreshold, now.Add(s.opts.LockoutDuration))
	if errors.Is(err, xerrors.ErrNotFound) {
		return xerrors.ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("failed to record failed login", zap.Int64("admin_id", a.ID), zap.Error(err))
		return xerrors.Unavailable(err, "failed to record failed login")
	}

	if state.Locked(now) {
		lockouts.Inc()
		loginAttempts.WithLabelValues("locked").Inc()
		s.logger.Warn("account locked after repeated failures", zap.Int64("admin_id", a.ID))
		s.activity.Record(ctx, activity.LevelWarn, "account locked", map[string]interface{}{"email": a.Email})
		return &xerrors.AccountLockedError{Minutes: admin.MinutesUntil(*state.LockoutUntil, now)}
	}

	loginAttempts.WithLabelValues("bad_password").Inc()
	s.logger.Warn("login failed: bad password",
		zap.Int64("admin_id", a.ID),
		zap.Int("failed_attempts", state.FailedLoginAttempts),
	)
	s.activity.Record(ctx, activity.LevelWarn, "login failed", map[string]interface{}{"email": a.Email, "reason": "bad_password"})
	return xerrors.ErrInvalidCredentials
}

func (s *AuthService) recheck(ctx context.Context, email string, now time.Time) error {
	a, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, xerrors.ErrNotFound) {
		return xerrors.ErrInvalidCredentials
	}
	if err != nil {
		return xerrors.Unavailable(err, "failed to look up admin")
	}
	if a.IsLocked(now) {
		return &xerrors.AccountLockedError{Minutes: a.LockMinutesRemaining(now)}
	}
	return xerrors.ErrInvalidCredentials
}

// ========== Session ==========

// RefreshSession re-derives a session from the store. A token whose version
// no longer matches the account is rejected.
func (s *AuthService) RefreshSession(ctx context.Context, token string) (*Session, error) {
	claims, err := s.jwtManager.Verifier.Verify(token)
	if err != nil {
		sessionInvalid.Inc()
		return nil, xerrors.Wrap(xerrors.ErrSessionInvalid, err.Error())
	}

	if !claims.HasRole(admin.RoleAdmin) {
		sessionInvalid.Inc()
		return nil, xerrors.ErrSessionInvalid
	}

	a, err := s.store.FindByEmail(ctx, claims.Email)
	if errors.Is(err, xerrors.ErrNotFound) {
		sessionInvalid.Inc()
		return nil, xerrors.ErrSessionInvalid
	}
	if err != nil {
		s.logger.Error("session lookup failed", zap.Int64("admin_id", claims.AdminID), zap.Error(err))
		return nil, xerrors.Unavailable(err, "failed to look up admin")
	}

	if a.ID != claims.AdminID || a.SessionVersion != claims.SessionVersion {
		sessionInvalid.Inc()
		s.logger.Info("stale session rejected",
			zap.Int64("admin_id", a.ID),
			zap.Int64("token_version", claims.SessionVersion),
			zap.Int64("current_version", a.SessionVersion),
		)
		return nil, xerrors.ErrSessionInvalid
	}

	fresh, expiresAt, err := s.issue(a)
	if err != nil {
		return nil, err
	}
	return &Session{Admin: a, Token: fresh, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) issue(a *admin.Admin) (string, time.Time, error) {
	token, _, expiresAt, err := s.jwtManager.Generator.Generate(jwt.Subject{
		AdminID:        a.ID,
		Email:          a.Email,
		Role:           a.Role,
		IsVerified:     a.IsVerified,
		SessionVersion: a.SessionVersion,
		Name:           a.Name,
		Picture:        a.ProfileImage,
		CompanyName:    a.CompanyName,
	})
	if err != nil {
		s.logger.Error("failed to sign session token", zap.Int64("admin_id", a.ID), zap.Error(err))
		return "", time.Time{}, xerrors.Wrap(xerrors.ErrInternal, err.Error())
	}
	return token, expiresAt, nil
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, activity.Level, string, map[string]interface{}) {}
