package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/01moynul/vidshop/internal/apperr"
	"github.com/01moynul/vidshop/internal/logger"
	"github.com/01moynul/vidshop/internal/models"
	"github.com/01moynul/vidshop/internal/variants"
)

// CreateProductInput is a product as submitted from the upload form.
// When OptionGroups is set and Variants is empty the variants are
// generated with default price and stock.
type CreateProductInput struct {
	Title         string                 `json:"title" binding:"required"`
	Description   string                 `json:"description"`
	ImageURL      string                 `json:"imageUrl" binding:"omitempty,url"`
	Price         float64                `json:"price" binding:"gte=0"`
	OriginalPrice *float64               `json:"originalPrice" binding:"omitempty,gte=0"`
	Stock         int                    `json:"stock" binding:"gte=0"`
	OptionGroups  []variants.OptionGroup `json:"optionGroups"`
	Variants      []variants.Variant     `json:"variants"`
}

// CreateProduct handles POST /v1/products.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// --- 1. Option groups & variants ---
	groups, err := variants.NormalizeGroups(input.OptionGroups)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vs := input.Variants
	if len(groups) > 0 && len(vs) == 0 {
		vs = variants.Generate(groups, strconv.FormatFloat(input.Price, 'f', 2, 64))
	}
	if err := variants.CheckVariants(groups, vs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// --- 2. Roll up price & stock ---
	price, stock := input.Price, input.Stock
	if len(vs) > 0 {
		// Product ID is not known yet; 0 only affects SKUs, which are discarded.
		rows, err := variants.Flatten(0, vs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		price, stock = rows[0].Price, 0
		for _, r := range rows {
			stock += r.Stock
			if r.Price < price {
				price = r.Price
			}
		}
	}

	now := time.Now()
	product := &models.Product{
		SellerID:      currentUserID(c),
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		Price:         price,
		OriginalPrice: input.OriginalPrice,
		Stock:         stock,
		OptionGroups:  variants.ToModelGroups(groups),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if input.ImageURL != "" {
		product.ImageURL = &input.ImageURL
	}

	// --- 3. Persist ---
	if err := h.Store.CreateProduct(c.Request.Context(), product, vs); err != nil {
		h.respondError(c, err)
		return
	}

	logger.For(h.Log, c).Info("product created",
		zap.Int64("product_id", product.ID),
		zap.Int("variants", len(product.Variants)))
	c.JSON(http.StatusCreated, gin.H{"message": "Product saved", "product": product})
}

// GetProduct handles GET /v1/products/:id.
func (h *Handlers) GetProduct(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	p, err := h.Store.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProductVariants handles GET /v1/products/:id/variants.
// Query parameters named after an option group filter, e.g. ?Color=Red&Size=M.
func (h *Handlers) GetProductVariants(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	p, err := h.Store.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Only option group names filter; anything else (cache busters,
	// paging) is ignored.
	query := c.Request.URL.Query()
	filter := make(map[string]string)
	for _, g := range p.OptionGroups {
		if vals, ok := query[g.Name]; ok && len(vals) > 0 {
			filter[g.Name] = vals[0]
		}
	}

	out := []models.ProductVariant{}
	for _, v := range p.Variants {
		if v.Matches(filter) {
			out = append(out, v)
		}
	}
	c.JSON(http.StatusOK, gin.H{"variants": out, "count": len(out)})
}

// SearchProducts handles GET /v1/products/search?q=.
func (h *Handlers) SearchProducts(c *gin.Context) {
	limit, offset := pagination(c)
	products, err := h.Store.SearchProducts(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "limit": limit, "offset": offset})
}

type DescribeProductInput struct {
	Title        string   `json:"title" binding:"required"`
	VariantNames []string `json:"variantNames"`
}

// DescribeProduct handles POST /v1/products/describe.
func (h *Handlers) DescribeProduct(c *gin.Context) {
	if h.AI == nil {
		h.respondError(c, apperr.New(http.StatusServiceUnavailable, "AI descriptions are not enabled", nil))
		return
	}

	var input DescribeProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, tokens, err := h.AI.Describe(c.Request.Context(), input.Title, input.VariantNames)
	if err != nil {
		h.respondError(c, apperr.New(http.StatusBadGateway, "AI service failed", err))
		return
	}
	if text == "" {
		h.respondError(c, apperr.New(http.StatusBadGateway, "AI service returned no text", errors.New("empty response")))
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": text, "tokens": tokens})
}
