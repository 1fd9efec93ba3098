package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/marketcore/ordersvc/internal/domain/errors"
	"github.com/marketcore/ordersvc/internal/domain/model"
	"github.com/marketcore/ordersvc/internal/domain/repository"
)

const productColumns = `id, name, description, net_price, tax_rate, on_hand, active`

// --- CustomerRepository implementation ---

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	const query = `SELECT id, name, email, active, registered_at FROM customers WHERE id=$1`
	var c model.Customer
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Active, &c.RegisteredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// --- ProductRepository implementation ---

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.NetPrice, &p.TaxRate, &p.OnHand, &p.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	return scanProduct(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) List(ctx context.Context, onlyActive bool) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name`
	if onlyActive {
		query = `SELECT ` + productColumns + ` FROM products WHERE active ORDER BY name`
	}

	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.NetPrice, &p.TaxRate, &p.OnHand, &p.Active); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetForUpdate reads a product under FOR UPDATE. The row lock is held for the
// rest of the transaction, closing the gap between the stock check and the
// decrement.
func (r *productRepository) GetForUpdate(ctx context.Context, tx repository.Tx, id int64) (*model.Product, error) {
	ptx, err := txFrom(tx)
	if err != nil {
		return nil, err
	}
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1 FOR UPDATE`
	return scanProduct(ptx.QueryRow(ctx, query, id))
}

// ReserveStock is the conditional-decrement primitive: the availability check
// and the mutation are a single statement, so concurrent reservations can
// never overdraw a product.
func (r *productRepository) ReserveStock(ctx context.Context, tx repository.Tx, id int64, quantity int) error {
	ptx, err := txFrom(tx)
	if err != nil {
		return err
	}

	const query = `UPDATE products SET on_hand = on_hand - $2 WHERE id=$1 AND on_hand >= $2`
	tag, err := ptx.Exec(ctx, query, id, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var available int
	err = ptx.QueryRow(ctx, `SELECT on_hand FROM products WHERE id=$1`, id).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrProductNotFound
		}
		return err
	}
	return &domainErrors.InsufficientStockError{ProductID: id, Requested: quantity, Available: available}
}

func (r *productRepository) ReleaseStock(ctx context.Context, tx repository.Tx, id int64, quantity int) error {
	ptx, err := txFrom(tx)
	if err != nil {
		return err
	}

	const query = `UPDATE products SET on_hand = on_hand + $2 WHERE id=$1`
	tag, err := ptx.Exec(ctx, query, id, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrProductNotFound
	}
	return nil
}
