package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/vidshop/internal/variants"
)

// PreviewVariantsInput carries the client's authoring state plus the group
// being added. Options is the raw comma separated text from the form.
// Variants are the client's current, possibly hand edited, variants; they
// only matter when PreserveEdits is set.
type PreviewVariantsInput struct {
	Groups        []variants.OptionGroup `json:"groups"`
	Variants      []variants.Variant     `json:"variants"`
	Name          string                 `json:"name"`
	Options       string                 `json:"options"`
	Price         string                 `json:"price"`
	PreserveEdits bool                   `json:"preserveEdits"`
}

// PreviewVariants handles POST /v1/variants/preview.
// It adds one option group and returns the regenerated variant set. The
// client replaces both its group list and its variant list with the
// response.
func (h *Handlers) PreviewVariants(c *gin.Context) {
	var input PreviewVariantsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := variants.NormalizeGroups(input.Groups)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := []variants.DraftOption{variants.WithState(existing, nil)}
	if input.PreserveEdits {
		if err := variants.CheckVariants(existing, input.Variants); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts = append(opts, variants.WithState(existing, input.Variants), variants.WithPreserveEdits())
	}
	draft := variants.NewDraft(input.Price, opts...)

	if err := draft.AddGroup(input.Name, input.Options); err != nil {
		// Nothing was added; hand the unchanged groups back with the reason.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "groups": draft.Groups()})
		return
	}

	generated := draft.Variants()
	c.JSON(http.StatusOK, gin.H{
		"groups":   draft.Groups(),
		"variants": generated,
		"count":    len(generated),
	})
}
