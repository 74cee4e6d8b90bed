package message

import (
	"context"
	"testing"

	"realty-service/internal/domain/message"
	xerrors "realty-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memRepo struct {
	items     []*message.Message
	lastLimit int
	fail      error
}

func (r *memRepo) Create(_ context.Context, m *message.Message) error {
	if r.fail != nil {
		return r.fail
	}
	m.ID = int64(len(r.items) + 1)
	r.items = append(r.items, m)
	return nil
}

func (r *memRepo) List(_ context.Context, limit int) ([]*message.Message, error) {
	r.lastLimit = limit
	return r.items, nil
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	for i, m := range r.items {
		if m.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return xerrors.ErrNotFound
}

func (r *memRepo) CountDistinctEmails(context.Context) (int, error) { return 0, nil }

type recordingPublisher struct {
	created []*message.Message
	deleted []int64
}

func (p *recordingPublisher) PublishNewMessage(m *message.Message) { p.created = append(p.created, m) }
func (p *recordingPublisher) PublishMessageDeleted(id int64)       { p.deleted = append(p.deleted, id) }

func TestCreate_StoresAndPublishes(t *testing.T) {
	repo := &memRepo{}
	pub := &recordingPublisher{}
	svc := NewMessageService(repo, pub, zap.NewNop())

	propertyID := int64(4)
	m, err := svc.Create(context.Background(), &message.CreateRequest{
		Name:       " Jane ",
		Email:      "jane@example.com",
		Message:    " Is the villa available? ",
		PropertyID: &propertyID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane", m.Name)
	assert.Equal(t, "Is the villa available?", m.Message)
	require.Len(t, pub.created, 1)
	assert.Equal(t, m.ID, pub.created[0].ID)
}

func TestCreate_RequiresFields(t *testing.T) {
	repo := &memRepo{}
	pub := &recordingPublisher{}
	svc := NewMessageService(repo, pub, zap.NewNop())

	_, err := svc.Create(context.Background(), &message.CreateRequest{Name: "Jane", Email: "jane@example.com", Message: "   "})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
	assert.Empty(t, repo.items)
	assert.Empty(t, pub.created)
}

func TestCreate_StoreFailureNotPublished(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewMessageService(&memRepo{fail: assert.AnError}, pub, zap.NewNop())

	_, err := svc.Create(context.Background(), &message.CreateRequest{Name: "Jane", Email: "jane@example.com", Message: "hi"})
	assert.ErrorIs(t, err, xerrors.ErrStoreUnavailable)
	assert.Empty(t, pub.created)
}

func TestList_ClampsLimit(t *testing.T) {
	repo := &memRepo{}
	svc := NewMessageService(repo, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultListLimit, repo.lastLimit)

	_, err = svc.List(ctx, 10000)
	require.NoError(t, err)
	assert.Equal(t, MaxListLimit, repo.lastLimit)
}

func TestDelete(t *testing.T) {
	repo := &memRepo{}
	pub := &recordingPublisher{}
	svc := NewMessageService(repo, pub, zap.NewNop())
	ctx := context.Background()

	m, err := svc.Create(ctx, &message.CreateRequest{Name: "Jane", Email: "jane@example.com", Message: "hi"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.Equal(t, []int64{m.ID}, pub.deleted)

	assert.ErrorIs(t, svc.Delete(ctx, m.ID), xerrors.ErrNotFound)
	assert.Len(t, pub.deleted, 1)
}
