package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/marketcore/ordersvc/internal/domain/errors"
	"github.com/marketcore/ordersvc/internal/domain/model"
	"github.com/marketcore/ordersvc/internal/domain/repository"
)

const orderColumns = `id, customer_id, status, note, net_total, tax_rate, gross_total, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.Status, &o.Note, &o.NetTotal, &o.TaxRate, &o.GrossTotal, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Insert(ctx context.Context, tx repository.Tx, order *model.Order) (int64, error) {
	ptx, err := txFrom(tx)
	if err != nil {
		return 0, err
	}

	const query = `INSERT INTO orders (customer_id, status, note, net_total, tax_rate, gross_total, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING id`
	var id int64
	err = ptx.QueryRow(ctx, query,
		order.CustomerID, order.Status, order.Note,
		order.NetTotal, order.TaxRate, order.GrossTotal,
		order.CreatedAt, order.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *orderRepository) InsertLines(ctx context.Context, tx repository.Tx, orderID int64, lines []model.OrderLine) error {
	ptx, err := txFrom(tx)
	if err != nil {
		return err
	}

	const query = `INSERT INTO order_lines (order_id, product_id, quantity, unit_price, discount_percent)
                   VALUES ($1, $2, $3, $4, $5)`
	for _, line := range lines {
		if _, err := ptx.Exec(ctx, query, orderID, line.ProductID, line.Quantity, line.UnitPrice, line.DiscountPercent); err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepository) UpdateHeader(ctx context.Context, tx repository.Tx, order *model.Order) error {
	ptx, err := txFrom(tx)
	if err != nil {
		return err
	}

	const query = `UPDATE orders SET status=$1, note=$2, net_total=$3, gross_total=$4, updated_at=$5 WHERE id=$6`
	tag, err := ptx.Exec(ctx, query, order.Status, order.Note, order.NetTotal, order.GrossTotal, order.UpdatedAt, order.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.pool.Query(ctx, linesQuery, id)
	if err != nil {
		return nil, err
	}
	order.Lines, err = collectLines(rows)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetForUpdate locks the order header row, serializing concurrent cancel and
// status changes targeting the same order.
func (r *orderRepository) GetForUpdate(ctx context.Context, tx repository.Tx, id int64) (*model.Order, error) {
	ptx, err := txFrom(tx)
	if err != nil {
		return nil, err
	}

	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
	order, err := scanOrder(ptx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	rows, err := ptx.Query(ctx, linesQuery, id)
	if err != nil {
		return nil, err
	}
	order.Lines, err = collectLines(rows)
	if err != nil {
		return nil, err
	}
	return order, nil
}

const linesQuery = `SELECT id, order_id, product_id, quantity, unit_price, discount_percent
                    FROM order_lines WHERE order_id=$1 ORDER BY id`

func collectLines(rows pgx.Rows) ([]model.OrderLine, error) {
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.DiscountPercent); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var (
		conditions []string
		args       []any
	)
	if filter.CustomerID != 0 {
		args = append(args, filter.CustomerID)
		conditions = append(conditions, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status=$%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.Note, &o.NetTotal, &o.TaxRate, &o.GrossTotal, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListStaleNew(ctx context.Context, cutoff time.Time, limit int) ([]int64, error) {
	const query = `SELECT id FROM orders WHERE status=$1 AND created_at < $2 ORDER BY created_at LIMIT $3`
	rows, err := r.storage.pool.Query(ctx, query, model.OrderStatusNew, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *orderRepository) SalesReport(ctx context.Context) ([]repository.SalesReportRow, error) {
	// Line quantities are pre-aggregated per order so gross totals are not
	// multiplied by the number of lines.
	const query = `SELECT o.status,
                          COUNT(*)::BIGINT,
                          COUNT(DISTINCT o.customer_id)::BIGINT,
                          COALESCE(SUM(li.items), 0)::BIGINT,
                          MIN(o.gross_total),
                          MAX(o.gross_total),
                          SUM(o.gross_total)
                   FROM orders o
                   LEFT JOIN (
                       SELECT order_id, SUM(quantity) AS items
                       FROM order_lines GROUP BY order_id
                   ) li ON li.order_id = o.id
                   GROUP BY o.status
                   ORDER BY o.status`

	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []repository.SalesReportRow
	for rows.Next() {
		var row repository.SalesReportRow
		if err := rows.Scan(&row.Status, &row.Orders, &row.Customers, &row.Items, &row.MinGross, &row.MaxGross, &row.TotalGross); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
