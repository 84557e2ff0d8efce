package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/01moynul/vidshop/internal/models"
)

// CreateVideo stores v and links it to productIDs. Every product must
// belong to the video's seller.
func (s *Store) CreateVideo(ctx context.Context, v *models.Video, productIDs []int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var owned int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM products WHERE seller_id = ? AND id IN (`+placeholders(len(productIDs))+`)`,
			append([]any{v.SellerID}, int64Args(productIDs)...)...,
		).Scan(&owned)
		if err != nil {
			return err
		}
		if owned != len(productIDs) {
			return ErrNotOwner
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO videos (seller_id, video_url, thumbnail_url, description, likes_count, created_at)
			VALUES (?, ?, ?, ?, 0, ?)`,
			v.SellerID, v.VideoURL, v.ThumbnailURL, v.Description, v.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert video: %w", err)
		}
		if v.ID, err = res.LastInsertId(); err != nil {
			return err
		}

		for _, pid := range productIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO video_products (video_id, product_id) VALUES (?, ?)`, v.ID, pid); err != nil {
				return fmt.Errorf("link product %d: %w", pid, err)
			}
		}
		return nil
	})
}

// Feed returns videos newest first, each with its linked products.
func (s *Store) Feed(ctx context.Context, limit, offset int) ([]models.Video, error) {
	return s.listVideos(ctx, "", limit, offset)
}

// SearchVideos returns videos whose caption matches query, or that link a
// product whose title matches it, newest first.
func (s *Store) SearchVideos(ctx context.Context, query string, limit, offset int) ([]models.Video, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"
	where := `WHERE LOWER(v.description) LIKE LOWER(?)
		OR EXISTS (
			SELECT 1 FROM video_products vp
			JOIN products p ON p.id = vp.product_id
			WHERE vp.video_id = v.id AND LOWER(p.title) LIKE LOWER(?)
		)`
	return s.listVideos(ctx, where, limit, offset, pattern, pattern)
}

// listVideos runs the video query filtered by where (with its args) and
// attaches the linked products.
func (s *Store) listVideos(ctx context.Context, where string, limit, offset int, args ...any) ([]models.Video, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT v.id, v.seller_id, v.video_url, v.thumbnail_url, v.description, v.likes_count, v.created_at, u.full_name
		FROM videos v
		JOIN users u ON u.id = v.seller_id
		`+where+`
		ORDER BY v.created_at DESC, v.id DESC
		LIMIT ? OFFSET ?`, append(args, limit, offset)...)
	if err != nil {
		return nil, err
	}

	videos := []models.Video{}
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(&v.ID, &v.SellerID, &v.VideoURL, &v.ThumbnailURL, &v.Description,
			&v.LikesCount, &v.CreatedAt, &v.SellerName); err != nil {
			rows.Close()
			return nil, err
		}
		videos = append(videos, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return videos, nil
	}

	links, productIDs, err := s.videoLinks(ctx, videos)
	if err != nil {
		return nil, err
	}
	products, err := s.productsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	for i := range videos {
		for _, pid := range links[videos[i].ID] {
			if p, ok := products[pid]; ok {
				videos[i].Products = append(videos[i].Products, p)
			}
		}
	}
	return videos, nil
}

// videoLinks maps each video to its product IDs and returns the distinct
// product IDs across all of them.
func (s *Store) videoLinks(ctx context.Context, videos []models.Video) (map[int64][]int64, []int64, error) {
	ids := make([]int64, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT video_id, product_id FROM video_products WHERE video_id IN (`+placeholders(len(ids))+`) ORDER BY video_id, product_id`,
		int64Args(ids)...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	links := make(map[int64][]int64)
	seen := make(map[int64]bool)
	var productIDs []int64
	for rows.Next() {
		var vid, pid int64
		if err := rows.Scan(&vid, &pid); err != nil {
			return nil, nil, err
		}
		links[vid] = append(links[vid], pid)
		if !seen[pid] {
			seen[pid] = true
			productIDs = append(productIDs, pid)
		}
	}
	return links, productIDs, rows.Err()
}

// LikeVideo bumps the like counter of a video.
func (s *Store) LikeVideo(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE videos SET likes_count = likes_count + 1 WHERE id = ?`, id)
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
