package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/01moynul/vidshop/internal/apperr"
	"github.com/01moynul/vidshop/internal/auth"
	"github.com/01moynul/vidshop/internal/logger"
	"github.com/01moynul/vidshop/internal/middleware"
	"github.com/01moynul/vidshop/internal/models"
	"github.com/01moynul/vidshop/internal/store"
	"github.com/01moynul/vidshop/internal/variants"
)

// Repository is the persistence the handlers need. *store.Store implements it.
type Repository interface {
	CreateProduct(ctx context.Context, p *models.Product, vs []variants.Variant) error
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	SearchProducts(ctx context.Context, query string, limit, offset int) ([]models.Product, error)

	CreateVideo(ctx context.Context, v *models.Video, productIDs []int64) error
	Feed(ctx context.Context, limit, offset int) ([]models.Video, error)
	LikeVideo(ctx context.Context, id int64) error
	SearchVideos(ctx context.Context, query string, limit, offset int) ([]models.Video, error)

	AddToCart(ctx context.Context, userID, productID, variantID int64, qty int) error
	GetCart(ctx context.Context, userID int64) ([]models.CartItem, error)
	RemoveCartItem(ctx context.Context, userID, itemID int64) error

	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
}

// Describer writes product copy. It is optional.
type Describer interface {
	Describe(ctx context.Context, title string, variantNames []string) (string, int, error)
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store  Repository
	Tokens *auth.Tokens
	AI     Describer // nil when no AI key is configured
	Log    *zap.Logger
}

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

// respondError writes err as {"error": msg}. Internal errors are logged
// and never shown to the client.
func (h *Handlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		err = apperr.NotFound("Not found")
	case errors.Is(err, variants.ErrInvalidPrice), errors.Is(err, variants.ErrInvalidStock):
		err = apperr.BadRequest(err.Error(), err)
	}

	code, msg := apperr.Status(err)
	if code >= http.StatusInternalServerError {
		logger.For(h.Log, c).Error("request failed", zap.Error(err))
	}
	c.JSON(code, gin.H{"error": msg})
}

func paramID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("Invalid ID", err)
	}
	return id, nil
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err = strconv.Atoi(c.Query("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(middleware.UserIDKey)
}
