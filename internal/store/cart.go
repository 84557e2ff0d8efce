package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/01moynul/vidshop/internal/models"
)

var (
	ErrVariantRequired   = errors.New("product has variants; choose one")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// AddToCart adds qty of a product (or one of its variants) to the user's
// cart, merging with an existing line for the same item.
func (s *Store) AddToCart(ctx context.Context, userID, productID, variantID int64, qty int) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var stock int
		if variantID > 0 {
			err := tx.QueryRowContext(ctx,
				`SELECT stock FROM product_variants WHERE id = ? AND product_id = ?`, variantID, productID).Scan(&stock)
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
		} else {
			var variantCount int
			err := tx.QueryRowContext(ctx, `
				SELECT p.stock, (SELECT COUNT(*) FROM product_variants v WHERE v.product_id = p.id)
				FROM products p WHERE p.id = ?`, productID).Scan(&stock, &variantCount)
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			if variantCount > 0 {
				return ErrVariantRequired
			}
		}

		var inCart int
		err := tx.QueryRowContext(ctx,
			`SELECT quantity FROM cart_items WHERE user_id = ? AND product_id = ? AND variant_id = ?`,
			userID, productID, variantID).Scan(&inCart)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if stock < inCart+qty {
			return ErrInsufficientStock
		}

		now := time.Now()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO cart_items (user_id, product_id, variant_id, quantity, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				quantity = quantity + VALUES(quantity),
				updated_at = VALUES(updated_at)`,
			userID, productID, variantID, qty, now, now)
		return err
	})
}

// GetCart returns the user's cart lines with current prices.
func (s *Store) GetCart(ctx context.Context, userID int64) ([]models.CartItem, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT ci.id, ci.user_id, ci.product_id, ci.variant_id, ci.quantity, ci.created_at, ci.updated_at,
			p.title, COALESCE(v.name, ''), COALESCE(v.sku, ''), COALESCE(v.price, p.price)
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		LEFT JOIN product_variants v ON v.id = ci.variant_id
		WHERE ci.user_id = ?
		ORDER BY ci.created_at, ci.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var it models.CartItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.VariantID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
			&it.Title, &it.VariantName, &it.SKU, &it.Price); err != nil {
			return nil, err
		}
		it.LineTotal = it.Price * float64(it.Quantity)
		items = append(items, it)
	}
	return items, rows.Err()
}

// RemoveCartItem deletes one line from the user's cart.
func (s *Store) RemoveCartItem(ctx context.Context, userID, itemID int64) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ? AND user_id = ?`, itemID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
