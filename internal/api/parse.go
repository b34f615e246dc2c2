package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-import/backend/internal/service"
)

// jsonOverhead is added to the text limit when capping request bodies, to
// leave room for escaping and the JSON envelope.
const jsonOverhead = 4096

// ParseRequest is the body of POST /recipes/parse.
type ParseRequest struct {
	Text *string `json:"text" binding:"required"`
}

// ParseBatchRequest is the body of POST /recipes/parse/batch.
type ParseBatchRequest struct {
	Texts []string `json:"texts" binding:"required"`
}

type ParseHandler struct {
	parse  service.IParseService
	limits Limits
}

func NewParseHandler(parse service.IParseService, limits Limits) *ParseHandler {
	return &ParseHandler{parse: parse, limits: limits}
}

func (h *ParseHandler) RegisterRoutes(router *gin.RouterGroup, rateLimit gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/parse", rateLimit, h.Parse)
		recipes.POST("/parse/batch", rateLimit, h.ParseBatch)
	}
}

// Parse returns the structured form of a single pasted recipe.
func (h *ParseHandler) Parse(c *gin.Context) {
	h.limitBody(c, 1)

	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request", err)
		return
	}

	recipe, err := h.parse.Parse(c.Request.Context(), *req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// ParseBatch parses up to MaxBatchSize texts and returns them in order.
func (h *ParseHandler) ParseBatch(c *gin.Context) {
	h.limitBody(c, h.limits.MaxBatchSize)

	var req ParseBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request", err)
		return
	}
	if h.limits.MaxBatchSize > 0 && len(req.Texts) > h.limits.MaxBatchSize {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too many texts in batch"})
		return
	}

	recipes, err := h.parse.ParseBatch(c.Request.Context(), req.Texts, h.limits.BatchConcurrency)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *ParseHandler) limitBody(c *gin.Context, texts int) {
	if h.limits.MaxTextBytes <= 0 || texts <= 0 {
		return
	}
	// JSON escaping can at most sextuple a text (\u00XX per byte).
	limit := int64(texts)*(int64(h.limits.MaxTextBytes)*6+jsonOverhead) + jsonOverhead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
}
