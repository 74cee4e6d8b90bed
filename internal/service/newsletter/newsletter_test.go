package newsletter

import (
	"context"
	"testing"

	xerrors "realty-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memRepo struct {
	emails map[string]bool
	fail   error
}

func (r *memRepo) Subscribe(_ context.Context, email string) (bool, error) {
	if r.fail != nil {
		return false, r.fail
	}
	if r.emails[email] {
		return false, nil
	}
	r.emails[email] = true
	return true, nil
}

func TestSubscribe(t *testing.T) {
	repo := &memRepo{emails: map[string]bool{}}
	svc := NewNewsletterService(repo, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Subscribe(ctx, "  Reader@Example.com ")
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, repo.emails["reader@example.com"])

	created, err = svc.Subscribe(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.False(t, created, "already subscribed")
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	svc := NewNewsletterService(&memRepo{emails: map[string]bool{}}, zap.NewNop())

	for _, email := range []string{"", "not-an-email", "a@"} {
		_, err := svc.Subscribe(context.Background(), email)
		assert.ErrorIs(t, err, xerrors.ErrInvalidInput, email)
	}
}

func TestSubscribe_StoreFailure(t *testing.T) {
	svc := NewNewsletterService(&memRepo{fail: assert.AnError}, zap.NewNop())
	_, err := svc.Subscribe(context.Background(), "reader@example.com")
	assert.ErrorIs(t, err, xerrors.ErrStoreUnavailable)
}
