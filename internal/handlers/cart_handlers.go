package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/vidshop/internal/apperr"
	"github.com/01moynul/vidshop/internal/store"
)

//
// --- Cart Handlers (Login Required) ---
//

// AddToCartInput picks a product, and a variant when the product has any.
type AddToCartInput struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	VariantID int64 `json:"variantId" binding:"gte=0"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// AddToCart handles POST /v1/cart/items.
func (h *Handlers) AddToCart(c *gin.Context) {
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	err := h.Store.AddToCart(c.Request.Context(), currentUserID(c), input.ProductID, input.VariantID, input.Quantity)
	switch {
	case errors.Is(err, store.ErrVariantRequired):
		h.respondError(c, apperr.BadRequest("Please choose a variant", err))
		return
	case errors.Is(err, store.ErrInsufficientStock):
		h.respondError(c, apperr.Conflict("Insufficient stock"))
		return
	case err != nil:
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart"})
}

// GetCart handles GET /v1/cart.
func (h *Handlers) GetCart(c *gin.Context) {
	items, err := h.Store.GetCart(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	var total float64
	for _, it := range items {
		total += it.LineTotal
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

// DeleteCartItem handles DELETE /v1/cart/items/:id.
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.Store.RemoveCartItem(c.Request.Context(), currentUserID(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
