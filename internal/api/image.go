package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultMaxImageBytes = 10 << 20

// UploadStepImage stores the multipart field "image" as the photo of one
// step.
func (h *RecipeHandler) UploadStepImage(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}
	order, err := strconv.Atoi(c.Param("order"))
	if err != nil {
		badRequest(c, "invalid step order", nil)
		return
	}

	maxBytes := h.limits.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxImageBytes
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+jsonOverhead)

	header, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "missing image file", err)
		return
	}
	if header.Size > maxBytes {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, "unreadable image file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(c, err)
			return
		}
		badRequest(c, "unreadable image file", err)
		return
	}

	recipe, err := h.images.AttachStepImage(c.Request.Context(), userID, id, order, header.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}
