package usecase

import (
	"context"
	"errors"

	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
)

var ErrOrderNotFound = errors.New("order not found")

// CartStorage is the keyed blob port behind the cart store. Load returns
// (nil, nil) when no cart exists for the key.
type CartStorage interface {
	Load(ctx context.Context, cartID string) ([]byte, error)
	Save(ctx context.Context, cartID string, data []byte) error
}

// MailMessage is what the mail transport sends.
type MailMessage struct {
	From     string
	To       string
	Subject  string
	HTMLBody string
}

type MailSender interface {
	Send(ctx context.Context, msg MailMessage) error
}

// OrderFilter narrows the admin listing. An empty or "all" Status matches
// every order; Search does a case-insensitive substring match on customer
// name and phone.
type OrderFilter struct {
	Search string
	Status string
}

type OrderRepo interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// FindPage returns one window of orders (newest first, items included)
	// plus the total row count matching the same filter.
	FindPage(ctx context.Context, f OrderFilter, limit, offset int) ([]domain.Order, int64, error)
	CountByStatus(ctx context.Context, s domain.Status) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id string, to domain.Status) error
	UpdateStatusIf(ctx context.Context, id string, from, to domain.Status) (bool, error)
}

type OrderCache interface {
	SetStatus(ctx context.Context, orderID string, status string) error
	GetStatus(ctx context.Context, orderID string) (string, bool, error)
}

type OrderEvents interface {
	PublishPlaced(ctx context.Context, msg PlacedMsg) error
}
