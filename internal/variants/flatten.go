package variants

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/01moynul/vidshop/internal/models"
	"github.com/gosimple/slug"
)

var (
	ErrInvalidPrice = errors.New("variant price must be a non-negative number")
	ErrInvalidStock = errors.New("variant stock must not be negative")
)

// SKU derives the stock keeping identifier for a variant of productID.
func SKU(productID int64, variantName string) string {
	s := slug.Make(variantName)
	if s == "" {
		s = "default"
	}
	return fmt.Sprintf("%d-%s", productID, s)
}

// Flatten turns authored variants into rows for 'product_variants'.
// Errors name the offending variant so the form can point at it.
func Flatten(productID int64, vs []Variant) ([]models.ProductVariant, error) {
	now := time.Now()
	seen := make(map[string]int, len(vs))
	rows := make([]models.ProductVariant, 0, len(vs))

	for _, v := range vs {
		price, err := strconv.ParseFloat(strings.TrimSpace(v.Price), 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("%q: %w", v.Name, ErrInvalidPrice)
		}
		if v.Stock < 0 {
			return nil, fmt.Errorf("%q: %w", v.Name, ErrInvalidStock)
		}

		// Different names can slug to the same text ("XL" and "X-L").
		sku := SKU(productID, v.Name)
		seen[sku]++
		if n := seen[sku]; n > 1 {
			sku = fmt.Sprintf("%s-%d", sku, n)
		}

		opts := make(map[string]string, len(v.Options))
		for k, val := range v.Options {
			opts[k] = val
		}
		rows = append(rows, models.ProductVariant{
			ProductID: productID,
			SKU:       sku,
			Name:      v.Name,
			Price:     price,
			Stock:     v.Stock,
			Options:   opts,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return rows, nil
}

// ToModelGroups converts option groups to their persisted form.
func ToModelGroups(groups []OptionGroup) []models.OptionGroup {
	out := make([]models.OptionGroup, len(groups))
	for i, g := range groups {
		out[i] = models.OptionGroup{Name: g.Name, Options: append([]string(nil), g.Options...)}
	}
	return out
}
