package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/01moynul/vidshop/internal/models"
	"github.com/01moynul/vidshop/internal/variants"
)

const productColumns = `id, seller_id, title, description, image_url, price, original_price, stock, rating, option_groups, created_at, updated_at`

// CreateProduct inserts p and its variants in one transaction. Variants
// are flattened against the new product ID, so a bad price or stock on any
// variant aborts the whole insert. p.ID and p.Variants are filled in.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product, vs []variants.Variant) error {
	groupsJSON, err := json.Marshal(p.OptionGroups)
	if err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO products
			(seller_id, title, description, image_url, price, original_price, stock, rating, option_groups, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.SellerID, p.Title, p.Description, p.ImageURL, p.Price, p.OriginalPrice,
			p.Stock, p.Rating, string(groupsJSON), p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		productID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		rows, err := variants.Flatten(productID, vs)
		if err != nil {
			return err
		}

		for i := range rows {
			optJSON, err := json.Marshal(rows[i].Options)
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx, `
				INSERT INTO product_variants (product_id, sku, name, price, stock, options, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				rows[i].ProductID, rows[i].SKU, rows[i].Name, rows[i].Price, rows[i].Stock,
				string(optJSON), rows[i].CreatedAt, rows[i].UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert variant %q: %w", rows[i].Name, err)
			}
			if rows[i].ID, err = res.LastInsertId(); err != nil {
				return err
			}
		}

		p.ID = productID
		p.Variants = rows
		return nil
	})
}

// GetProduct loads one product with its variants.
func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Variants, err = s.ListVariants(ctx, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListVariants returns the variants of a product in insertion order.
func (s *Store) ListVariants(ctx context.Context, productID int64) ([]models.ProductVariant, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, product_id, sku, name, price, stock, options, created_at, updated_at
		FROM product_variants WHERE product_id = ? ORDER BY id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ProductVariant{}
	for rows.Next() {
		var v models.ProductVariant
		var optJSON []byte
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.Price, &v.Stock, &optJSON, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		if len(optJSON) > 0 {
			if err := json.Unmarshal(optJSON, &v.Options); err != nil {
				return nil, fmt.Errorf("variant %d options: %w", v.ID, err)
			}
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// SearchProducts matches query against product titles, newest first.
// An empty query lists everything.
func (s *Store) SearchProducts(ctx context.Context, query string, limit, offset int) ([]models.Product, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE LOWER(title) LIKE LOWER(?)
		ORDER BY created_at DESC LIMIT ? OFFSET ?`, pattern, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// productsByIDs loads products without their variants.
func (s *Store) productsByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	out := make(map[int64]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id IN (`+placeholders(len(ids))+`)`,
		int64Args(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = *p
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(sc scanner) (*models.Product, error) {
	var p models.Product
	var groupsJSON []byte
	err := sc.Scan(&p.ID, &p.SellerID, &p.Title, &p.Description, &p.ImageURL,
		&p.Price, &p.OriginalPrice, &p.Stock, &p.Rating, &groupsJSON, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(groupsJSON) > 0 && string(groupsJSON) != "null" {
		if err := json.Unmarshal(groupsJSON, &p.OptionGroups); err != nil {
			return nil, fmt.Errorf("product %d option groups: %w", p.ID, err)
		}
	}
	return &p, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
