package browse

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/FlorianMayr1208/present-picker/internal/catalog"
	"github.com/FlorianMayr1208/present-picker/internal/selection"

	"github.com/gin-gonic/gin"
)

// Handler serves the public browsing surface: destination list,
// slider/checkbox detail views, the activities-by-level endpoint,
// gift listings and selection pricing. It feeds catalog snapshots
// into the selection engine and renders whatever comes back.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListDestinations(c *gin.Context) {
	dests, err := h.service.ListDestinations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"destinations": dests})
}

// ShowDestination renders the detail view. Slider-mode destinations
// come back filtered by ?slider= (default 0); checkbox-mode ones come
// back unfiltered with their points budget.
func (h *Handler) ShowDestination(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	slider := sliderQuery(c)

	view, err := h.service.DestinationView(c.Request.Context(), id, slider)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ActivitiesByLevel is the JSON endpoint the slider widget polls.
func (h *Handler) ActivitiesByLevel(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	slider := sliderQuery(c)

	acts, err := h.service.ActivitiesByLevel(c.Request.Context(), id, slider)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"activities": acts,
		"count":      len(acts),
	})
}

func (h *Handler) GiftListings(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	parents, friends, err := h.service.GiftListings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from_parents": parents,
		"from_friends": friends,
	})
}

type selectionRequest struct {
	Entries []selection.Entry `json:"entries"`
	Strict  bool              `json:"strict"`
}

// PriceSelection resolves a chosen set of sub-items into line items
// and a points total. With strict=true unknown references become a
// 400 naming the offending pairs instead of being skipped.
func (h *Handler) PriceSelection(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req selectionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	summary, err := h.service.PriceSelection(c.Request.Context(), id, req.Entries, req.Strict)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// PrintSelection renders the printable HTML summary the browser
// turns into a PDF.
func (h *Handler) PrintSelection(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req selectionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	html, err := h.service.RenderPrintView(c.Request.Context(), id, req.Entries)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}

// sliderQuery tolerates anything: a missing or garbage value becomes
// the default 0, out-of-range integers are passed through and simply
// match nothing.
func sliderQuery(c *gin.Context) int {
	v, err := strconv.Atoi(c.DefaultQuery("slider", "0"))
	if err != nil {
		return 0
	}
	return v
}

func respondError(c *gin.Context, err error) {
	var notFound *catalog.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}
	var refErr *selection.ReferenceError
	if errors.As(err, &refErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": refErr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
