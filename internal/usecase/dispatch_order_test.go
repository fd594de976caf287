package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSender records every send and can be told to fail for one recipient.
type mockSender struct {
	sent   []MailMessage
	failTo string
}

func (m *mockSender) Send(_ context.Context, msg MailMessage) error {
	if m.failTo != "" && msg.To == m.failTo {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func testOrder() *domain.Order {
	return &domain.Order{
		ID:              "ord-1",
		CustomerName:    "Nguyễn Văn A",
		CustomerPhone:   "0901234567",
		ShippingAddress: "12 Lý Thường Kiệt, Hà Nội",
		PaymentMethod:   domain.PaymentCOD,
		Notes:           "Giao giờ hành chính",
		Items: []domain.OrderItem{
			{ProductName: "Quạt điện Senko", VariantName: "Trắng", Quantity: 2, Price: 350000},
			{ProductName: "Nồi cơm điện", Quantity: 1, Price: 1200000},
		},
		TotalAmount: 1900000,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now(),
	}
}

func TestDispatchOperatorOnlyWhenCustomerOptedOut(t *testing.T) {
	sender := &mockSender{}
	d := NewDispatchOrder(sender, "shop@telectric.vn", "orders@telectric.vn")

	err := d.Execute(context.Background(), testOrder(), "khach@example.com", false)

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "orders@telectric.vn", sender.sent[0].To)
}

func TestDispatchOperatorOnlyWhenEmailEmpty(t *testing.T) {
	sender := &mockSender{}
	d := NewDispatchOrder(sender, "shop@telectric.vn", "orders@telectric.vn")

	err := d.Execute(context.Background(), testOrder(), "", true)

	require.NoError(t, err)
	assert.Len(t, sender.sent, 1)
}

func TestDispatchBothMessagesOperatorFirst(t *testing.T) {
	sender := &mockSender{}
	d := NewDispatchOrder(sender, "shop@telectric.vn", "orders@telectric.vn")

	err := d.Execute(context.Background(), testOrder(), "khach@example.com", true)

	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "orders@telectric.vn", sender.sent[0].To)
	assert.Equal(t, "khach@example.com", sender.sent[1].To)
}

func TestDispatchFailFastSkipsCustomerSend(t *testing.T) {
	sender := &mockSender{failTo: "orders@telectric.vn"}
	d := NewDispatchOrder(sender, "shop@telectric.vn", "orders@telectric.vn")

	err := d.Execute(context.Background(), testOrder(), "khach@example.com", true)

	require.ErrorIs(t, err, ErrDispatchFailed)
	// operator send failed, customer send never attempted
	assert.Empty(t, sender.sent)
}

func TestDispatchCustomerFailureFailsWhole(t *testing.T) {
	sender := &mockSender{failTo: "khach@example.com"}
	d := NewDispatchOrder(sender, "shop@telectric.vn", "orders@telectric.vn")

	err := d.Execute(context.Background(), testOrder(), "khach@example.com", true)

	// no partial-success state even though the operator copy went out
	require.ErrorIs(t, err, ErrDispatchFailed)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "orders@telectric.vn", sender.sent[0].To)
}

func TestDispatchPolicyIsSwappable(t *testing.T) {
	// best-effort: run every step regardless of earlier failures
	bestEffort := func(ctx context.Context, steps []SendStep) ([]StepResult, error) {
		var results []StepResult
		var firstErr error
		for _, st := range steps {
			if st.Skip {
				results = append(results, StepResult{Kind: st.Kind, Skipped: true})
				continue
			}
			err := st.Run(ctx)
			results = append(results, StepResult{Kind: st.Kind, Err: err})
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
		if firstErr != nil {
			return results, errors.Join(ErrDispatchFailed, firstErr)
		}
		return results, nil
	}

	sender := &mockSender{failTo: "orders@telectric.vn"}
	d := NewDispatchOrder(sender, "shop@telectric.vn", "orders@telectric.vn").WithPolicy(bestEffort)

	err := d.Execute(context.Background(), testOrder(), "khach@example.com", true)

	require.ErrorIs(t, err, ErrDispatchFailed)
	// under best-effort the customer copy still went out
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "khach@example.com", sender.sent[0].To)
}
