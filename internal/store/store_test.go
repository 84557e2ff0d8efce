package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/vidshop/internal/models"
	"github.com/01moynul/vidshop/internal/variants"
)

var productCols = []string{"id", "seller_id", "title", "description", "image_url", "price", "original_price", "stock", "rating", "option_groups", "created_at", "updated_at"}
var variantCols = []string{"id", "product_id", "sku", "name", "price", "stock", "options", "created_at", "updated_at"}

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestCreateProduct_WithVariants(t *testing.T) {
	s, mock := setupMockStore(t)
	ctx := context.Background()

	groups, vs, err := variants.AddOptionGroup(nil, "Size", "S, M", "10")
	require.NoError(t, err)
	now := time.Now()
	p := &models.Product{
		SellerID: 2, Title: "Tee", Price: 10, Stock: 200,
		OptionGroups: variants.ToModelGroups(groups),
		CreatedAt:    now, UpdatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO products`)).
		WithArgs(int64(2), "Tee", "", nil, 10.0, nil, 200, 0.0, `[{"name":"Size","options":["S","M"]}]`, now, now).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO product_variants`)).
		WithArgs(int64(5), "5-s", "S", 10.0, variants.DefaultStock, `{"Size":"S"}`, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO product_variants`)).
		WithArgs(int64(5), "5-m", "M", 10.0, variants.DefaultStock, `{"Size":"M"}`, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	require.NoError(t, s.CreateProduct(ctx, p, vs))
	assert.Equal(t, int64(5), p.ID)
	require.Len(t, p.Variants, 2)
	assert.Equal(t, int64(12), p.Variants[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProduct_BadVariantRollsBack(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO products`)).WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectRollback()

	err := s.CreateProduct(context.Background(), &models.Product{Title: "Tee"},
		[]variants.Variant{{Name: "S", Price: "free"}})
	assert.ErrorIs(t, err, variants.ErrInvalidPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProduct(t *testing.T) {
	s, mock := setupMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = ?`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(5, 2, "Tee", "soft", nil, 10.0, nil, 200, 4.5, `[{"name":"Size","options":["S","M"]}]`, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM product_variants WHERE product_id = ?`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(variantCols).
			AddRow(11, 5, "5-s", "S", 10.0, 100, `{"Size":"S"}`, now, now).
			AddRow(12, 5, "5-m", "M", 12.0, 100, `{"Size":"M"}`, now, now))

	p, err := s.GetProduct(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Tee", p.Title)
	assert.Nil(t, p.ImageURL)
	require.Len(t, p.OptionGroups, 1)
	assert.Equal(t, []string{"S", "M"}, p.OptionGroups[0].Options)
	require.Len(t, p.Variants, 2)
	assert.Equal(t, "M", p.Variants[1].Options["Size"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProduct_NotFound(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = ?`)).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	p, err := s.GetProduct(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, p)
}

func TestSearchProducts_EscapesPattern(t *testing.T) {
	s, mock := setupMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(title) LIKE LOWER(?)`)).
		WithArgs(`%50\% off%`, 20, 0).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(1, 2, "50% off hat", "", nil, 5.0, 9.0, 3, 0.0, nil, now, now))

	out, err := s.SearchProducts(context.Background(), " 50% off ", 20, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "50% off hat", out[0].Title)
	require.NotNil(t, out[0].OriginalPrice)
	assert.Equal(t, 9.0, *out[0].OriginalPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVideo(t *testing.T) {
	s, mock := setupMockStore(t)
	now := time.Now()
	v := &models.Video{SellerID: 2, VideoURL: "https://cdn/v.mp4", Description: "new drop", CreatedAt: now}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM products WHERE seller_id = ? AND id IN (?, ?)`)).
		WithArgs(int64(2), int64(5), int64(6)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO videos`)).WillReturnResult(sqlmock.NewResult(40, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO video_products`)).WithArgs(int64(40), int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO video_products`)).WithArgs(int64(40), int64(6)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.CreateVideo(context.Background(), v, []int64{5, 6}))
	assert.Equal(t, int64(40), v.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVideo_ForeignProduct(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM products`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := s.CreateVideo(context.Background(), &models.Video{SellerID: 2}, []int64{5, 99})
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeed(t *testing.T) {
	s, mock := setupMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM videos v`)).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "seller_id", "video_url", "thumbnail_url", "description", "likes_count", "created_at", "full_name"}).
			AddRow(2, 7, "https://cdn/2.mp4", nil, "two", 3, now, "Ana").
			AddRow(1, 7, "https://cdn/1.mp4", "https://cdn/1.jpg", "one", 0, now, "Ana"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM video_products WHERE video_id IN (?, ?)`)).
		WithArgs(int64(2), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"video_id", "product_id"}).
			AddRow(1, 5).
			AddRow(2, 5).
			AddRow(2, 6))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id IN (?, ?)`)).
		WithArgs(int64(5), int64(6)).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(5, 7, "Tee", "", nil, 10.0, nil, 1, 0.0, nil, now, now).
			AddRow(6, 7, "Cap", "", nil, 8.0, nil, 1, 0.0, nil, now, now))

	feed, err := s.Feed(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "Ana", feed[0].SellerName)
	require.Len(t, feed[0].Products, 2)
	assert.Equal(t, "Cap", feed[0].Products[1].Title)
	require.Len(t, feed[1].Products, 1)
	assert.Equal(t, "https://cdn/1.jpg", *feed[1].ThumbnailURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeed_Empty(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM videos v`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "seller_id", "video_url", "thumbnail_url", "description", "likes_count", "created_at", "full_name"}))

	feed, err := s.Feed(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, feed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchVideos_MatchesCaptionOrProductTitle(t *testing.T) {
	s, mock := setupMockStore(t)
	now := time.Now()

	mock.ExpectQuery(`WHERE LOWER\(v\.description\) LIKE LOWER\(\?\)\s+OR EXISTS \(.*LOWER\(p\.title\) LIKE LOWER\(\?\)`).
		WithArgs(`%50\% off%`, `%50\% off%`, 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "seller_id", "video_url", "thumbnail_url", "description", "likes_count", "created_at", "full_name"}).
			AddRow(4, 7, "https://cdn/4.mp4", nil, "summer drop", 1, now, "Ana"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM video_products WHERE video_id IN (?)`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"video_id", "product_id"}).AddRow(4, 5))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id IN (?)`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(5, 7, "Tee 50% off", "", nil, 10.0, nil, 1, 0.0, nil, now, now))

	videos, err := s.SearchVideos(context.Background(), " 50% off ", 20, 0)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	require.Len(t, videos[0].Products, 1)
	assert.Equal(t, "Tee 50% off", videos[0].Products[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeVideo_NotFound(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE videos SET likes_count`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.LikeVideo(context.Background(), 3), ErrNotFound)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := s.CreateUser(context.Background(), &models.User{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUpdateUser(t *testing.T) {
	s, mock := setupMockStore(t)
	now := time.Now()
	name := "ana"
	u := &models.User{ID: 3, Role: models.RoleSeller, Username: &name, UpdatedAt: now}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET role = ?, username = ?, avatar_url = ?, updated_at = ?`)).
		WithArgs(models.RoleSeller, "ana", nil, now, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.UpdateUser(context.Background(), u))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users`)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	assert.ErrorIs(t, s.UpdateUser(context.Background(), u), ErrDuplicateUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail(t *testing.T) {
	s, mock := setupMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = ?`)).
		WithArgs("a@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "email", "password_hash", "full_name", "username", "avatar_url", "created_at", "updated_at"}).
			AddRow(3, models.RoleSeller, "a@b.c", "hash", "Ana", nil, nil, now, now))

	u, err := s.GetUserByEmail(context.Background(), "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, models.RoleSeller, u.Role)
}

func TestAddToCart_Variant(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT stock FROM product_variants WHERE id = ? AND product_id = ?`)).
		WithArgs(int64(11), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT quantity FROM cart_items`)).
		WithArgs(int64(1), int64(5), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO cart_items`)).
		WithArgs(int64(1), int64(5), int64(11), 2, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, s.AddToCart(context.Background(), 1, 5, 11, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCart_InsufficientStock(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT stock FROM product_variants`)).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT quantity FROM cart_items`)).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(2))
	mock.ExpectRollback()

	err := s.AddToCart(context.Background(), 1, 5, 11, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCart_VariantRequired(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM products p WHERE p.id = ?`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"stock", "variants"}).AddRow(200, 4))
	mock.ExpectRollback()

	err := s.AddToCart(context.Background(), 1, 5, 0, 1)
	assert.ErrorIs(t, err, ErrVariantRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCart(t *testing.T) {
	s, mock := setupMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM cart_items ci`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "variant_id", "quantity", "created_at", "updated_at", "title", "name", "sku", "price"}).
			AddRow(1, 1, 5, 11, 2, now, now, "Tee", "S / Red", "5-s-red", 10.5).
			AddRow(2, 1, 6, 0, 1, now, now, "Mug", "", "", 6.0))

	items, err := s.GetCart(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 21.0, items[0].LineTotal)
	assert.Equal(t, "5-s-red", items[0].SKU)
	assert.Equal(t, int64(0), items[1].VariantID)
}

func TestRemoveCartItem_NotFound(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items`)).
		WithArgs(int64(9), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.RemoveCartItem(context.Background(), 1, 9), ErrNotFound)
}
