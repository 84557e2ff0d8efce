package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/vidshop/internal/apperr"
	"github.com/01moynul/vidshop/internal/models"
	"github.com/01moynul/vidshop/internal/store"
)

type CreateVideoInput struct {
	VideoURL     string  `json:"videoUrl" binding:"required,url"`
	ThumbnailURL string  `json:"thumbnailUrl" binding:"omitempty,url"`
	Description  string  `json:"description"`
	ProductIDs   []int64 `json:"productIds" binding:"required,min=1,dive,gt=0"`
}

// CreateVideo handles POST /v1/videos. The video must link at least one
// of the seller's own products.
func (h *Handlers) CreateVideo(c *gin.Context) {
	var input CreateVideoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video := &models.Video{
		SellerID:    currentUserID(c),
		VideoURL:    input.VideoURL,
		Description: input.Description,
		CreatedAt:   time.Now(),
	}
	if input.ThumbnailURL != "" {
		video.ThumbnailURL = &input.ThumbnailURL
	}

	err := h.Store.CreateVideo(c.Request.Context(), video, dedupe(input.ProductIDs))
	if errors.Is(err, store.ErrNotOwner) {
		h.respondError(c, apperr.Forbidden("You can only link your own products"))
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Video uploaded", "videoId": video.ID})
}

// GetFeed handles GET /v1/feed.
func (h *Handlers) GetFeed(c *gin.Context) {
	limit, offset := pagination(c)
	videos, err := h.Store.Feed(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos, "limit": limit, "offset": offset})
}

// SearchVideos handles GET /v1/videos/search?q=. A video matches on its
// caption or on the title of any product it links.
func (h *Handlers) SearchVideos(c *gin.Context) {
	limit, offset := pagination(c)
	videos, err := h.Store.SearchVideos(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos, "limit": limit, "offset": offset})
}

// LikeVideo handles POST /v1/videos/:id/like.
func (h *Handlers) LikeVideo(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.Store.LikeVideo(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
