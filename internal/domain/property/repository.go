package property

import "context"

type Repository interface {
	Create(ctx context.Context, p *Property) error
	Update(ctx context.Context, p *Property) error
	SetActive(ctx context.Context, id int64, active bool) (*Property, error)
	FindByID(ctx context.Context, id int64) (*Property, error)
	List(ctx context.Context, f Filter) ([]*Property, error)
	Delete(ctx context.Context, id int64) error
	CountActive(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}
