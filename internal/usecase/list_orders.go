package usecase

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
	"golang.org/x/sync/errgroup"
)

const DefaultPageSize = 10

var ErrAggregationFailed = errors.New("order aggregation failed")

type ListOrdersInput struct {
	Search string
	Status string // "", "all", or one of the fixed statuses
	Page   int
}

// OrderListView is the combined admin listing result. StatusCounts and
// GrandTotal are always unfiltered so the dashboard summary stays stable
// while the user types a search term; TotalCount follows the filter.
type OrderListView struct {
	Rows         []domain.Order
	TotalCount   int64
	GrandTotal   int64
	StatusCounts map[domain.Status]int64
}

// ListOrders joins one filtered page query with a fan-out of independent
// per-status counts plus the unfiltered grand total. All-or-nothing: any
// failing query fails the whole aggregation, no partial stats are surfaced.
type ListOrders struct {
	repo     OrderRepo
	pageSize int
}

func NewListOrders(repo OrderRepo, pageSize int) *ListOrders {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ListOrders{repo: repo, pageSize: pageSize}
}

func (uc *ListOrders) Execute(ctx context.Context, in ListOrdersInput) (*OrderListView, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * uc.pageSize

	filter := OrderFilter{Search: in.Search}
	if in.Status != "" && in.Status != "all" {
		if !domain.ValidStatus(domain.Status(in.Status)) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrAggregationFailed, in.Status)
		}
		filter.Status = in.Status
	}

	view := &OrderListView{StatusCounts: make(map[domain.Status]int64, len(domain.Statuses()))}
	counts := make([]int64, len(domain.Statuses()))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, total, err := uc.repo.FindPage(ctx, filter, uc.pageSize, offset)
		if err != nil {
			return fmt.Errorf("page query: %w", err)
		}
		view.Rows, view.TotalCount = rows, total
		return nil
	})

	for i, st := range domain.Statuses() {
		g.Go(func() error {
			n, err := uc.repo.CountByStatus(ctx, st)
			if err != nil {
				return fmt.Errorf("count %s: %w", st, err)
			}
			counts[i] = n
			return nil
		})
	}

	g.Go(func() error {
		n, err := uc.repo.CountAll(ctx)
		if err != nil {
			return fmt.Errorf("grand total: %w", err)
		}
		view.GrandTotal = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAggregationFailed, err)
	}

	for i, st := range domain.Statuses() {
		view.StatusCounts[st] = counts[i]
	}
	return view, nil
}
