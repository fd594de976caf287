package usecase

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
	"github.com/quocluongg/telectric-web-sub001/internal/logging"
)

// ErrDispatchFailed collapses every transport failure into one generic
// result. There is no partial-success state: a caller cannot tell "operator
// notified, customer not" apart from total failure.
var ErrDispatchFailed = errors.New("order notification dispatch failed")

// SendStep is one outbound message attempt. Skipped steps (customer copy
// without an address or opt-in) are not errors.
type SendStep struct {
	Kind string // "operator" | "customer"
	Skip bool
	Run  func(ctx context.Context) error
}

// StepResult records the outcome of one step.
type StepResult struct {
	Kind    string
	Skipped bool
	Err     error
}

// SendPolicy executes the steps in order and decides how their results
// combine into a single outcome. The policy is swappable so a later "always
// notify the operator" requirement only needs a new combinator.
type SendPolicy func(ctx context.Context, steps []SendStep) ([]StepResult, error)

// FailFast stops at the first failing step; later steps are never attempted.
func FailFast(ctx context.Context, steps []SendStep) ([]StepResult, error) {
	results := make([]StepResult, 0, len(steps))
	for _, st := range steps {
		if st.Skip {
			results = append(results, StepResult{Kind: st.Kind, Skipped: true})
			continue
		}
		err := st.Run(ctx)
		results = append(results, StepResult{Kind: st.Kind, Err: err})
		if err != nil {
			return results, fmt.Errorf("%w: %s message: %v", ErrDispatchFailed, st.Kind, err)
		}
	}
	return results, nil
}

// DispatchOrder builds and sends the two order notification messages through
// the mail transport: the operator copy always and first, the customer copy
// only when an address is present and the customer opted in. Sends are
// sequential; no retry is performed here.
type DispatchOrder struct {
	sender     MailSender
	from       string
	operatorTo string
	policy     SendPolicy
}

func NewDispatchOrder(sender MailSender, from, operatorTo string) *DispatchOrder {
	return &DispatchOrder{sender: sender, from: from, operatorTo: operatorTo, policy: FailFast}
}

// WithPolicy overrides the default fail-fast combinator.
func (d *DispatchOrder) WithPolicy(p SendPolicy) *DispatchOrder {
	d.policy = p
	return d
}

func (d *DispatchOrder) Execute(ctx context.Context, order *domain.Order, customerEmail string, notifyCustomer bool) error {
	opSubject, opBody, err := renderOperatorMessage(order)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	steps := []SendStep{
		{
			Kind: "operator",
			Run: func(ctx context.Context) error {
				return d.sender.Send(ctx, MailMessage{
					From:     d.from,
					To:       d.operatorTo,
					Subject:  opSubject,
					HTMLBody: opBody,
				})
			},
		},
		{
			Kind: "customer",
			Skip: !notifyCustomer || customerEmail == "",
			Run: func(ctx context.Context) error {
				subject, body, err := renderCustomerMessage(order)
				if err != nil {
					return err
				}
				return d.sender.Send(ctx, MailMessage{
					From:     d.from,
					To:       customerEmail,
					Subject:  subject,
					HTMLBody: body,
				})
			},
		},
	}

	results, err := d.policy(ctx, steps)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Skipped {
			logging.FromCtx(ctx).Info("notification skipped", "kind", r.Kind, "order_id", order.ID)
		}
	}
	return nil
}
