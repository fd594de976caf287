package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
	"github.com/quocluongg/telectric-web-sub001/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

func (r *MySQLOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO orders (id,customer_name,customer_phone,shipping_address,payment_method,notes,total_amount,status,created_at,updated_at)
VALUES (?,?,?,?,?,?,?,?,?,NOW())
`, o.ID, o.CustomerName, o.CustomerPhone, o.ShippingAddress, string(o.PaymentMethod), o.Notes, o.TotalAmount, string(o.Status), o.CreatedAt)
	if err != nil {
		return err
	}

	for _, it := range o.Items {
		_, err = tx.ExecContext(ctx, `
INSERT INTO order_items (order_id,product_name,variant_name,quantity,price)
VALUES (?,?,?,?,?)
`, o.ID, it.ProductName, it.VariantName, it.Quantity, it.Price)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,customer_name,customer_phone,shipping_address,payment_method,notes,total_amount,status,created_at
FROM orders WHERE id=?`, id)

	var o domain.Order
	var method, status string
	if err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.ShippingAddress,
		&method, &o.Notes, &o.TotalAmount, &status, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrOrderNotFound
		}
		return nil, err
	}
	o.PaymentMethod = domain.PaymentMethod(method)
	o.Status = domain.Status(status)

	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filterClause builds the shared WHERE for FindPage and its count query.
// LIKE metacharacters in the search term are escaped so they match literally.
func filterClause(f usecase.OrderFilter) (string, []any) {
	var conds []string
	var args []any
	if f.Search != "" {
		needle := "%" + likeEscaper.Replace(strings.ToLower(f.Search)) + "%"
		conds = append(conds, "(LOWER(customer_name) LIKE ? OR LOWER(customer_phone) LIKE ?)")
		args = append(args, needle, needle)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *MySQLOrderRepo) FindPage(ctx context.Context, f usecase.OrderFilter, limit, offset int) ([]domain.Order, int64, error) {
	where, args := filterClause(f)

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("filtered count: %w", err)
	}

	query := `
SELECT id,customer_name,customer_phone,shipping_address,payment_method,notes,total_amount,status,created_at
FROM orders` + where + ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []string
	for rows.Next() {
		var o domain.Order
		var method, status string
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.ShippingAddress,
			&method, &o.Notes, &o.TotalAmount, &status, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		o.PaymentMethod = domain.PaymentMethod(method)
		o.Status = domain.Status(status)
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, total, nil
}

func (r *MySQLOrderRepo) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	out := make(map[string][]domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}

	ph := strings.TrimSuffix(strings.Repeat("?,", len(orderIDs)), ",")
	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT order_id,product_name,variant_name,quantity,price
FROM order_items WHERE order_id IN (`+ph+`) ORDER BY id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var it domain.OrderItem
		if err := rows.Scan(&orderID, &it.ProductName, &it.VariantName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		out[orderID] = append(out[orderID], it)
	}
	return out, rows.Err()
}

func (r *MySQLOrderRepo) CountByStatus(ctx context.Context, s domain.Status) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE status = ?`, string(s)).Scan(&n)
	return n, err
}

func (r *MySQLOrderRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

func (r *MySQLOrderRepo) UpdateStatus(ctx context.Context, id string, to domain.Status) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE orders
        SET status = ?, updated_at = NOW()
        WHERE id = ?`,
		string(to), id,
	)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return usecase.ErrOrderNotFound
	}
	return nil
}

func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, id string, from, to domain.Status) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE orders
        SET status = ?, updated_at = NOW()
        WHERE id = ? AND status = ?`,
		string(to), id, string(from),
	)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 0 → nothing matched (either not found or status mismatch)
	return rows > 0, nil
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
