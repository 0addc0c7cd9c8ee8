package catalog

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ImageStore is the object-storage slice the admin surface needs for
// cover and activity images.
type ImageStore interface {
	Upload(ctx context.Context, key string, file multipart.File) (string, error)
}

var allowedImageExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// AdminHandler exposes the catalog CRUD surface. Routes behind it are
// gated by the ADMIN role in the router.
type AdminHandler struct {
	service *Service
	images  ImageStore
}

func NewAdminHandler(service *Service, images ImageStore) *AdminHandler {
	return &AdminHandler{service: service, images: images}
}

// --------------------------------------------------
// Destinations
// --------------------------------------------------

type destinationRequest struct {
	Name             string `json:"name"`
	DescriptionShort string `json:"description_short"`
	ImageCover       string `json:"image_cover"`
	SelectionMode    string `json:"selection_mode"`
	PointsBudget     int    `json:"points_budget"`
}

func (h *AdminHandler) CreateDestination(c *gin.Context) {
	var req destinationRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	mode := SelectionMode(req.SelectionMode)
	if mode == "" {
		mode = ModeSlider
	}

	dest := &Destination{
		Name:             req.Name,
		DescriptionShort: req.DescriptionShort,
		ImageCover:       req.ImageCover,
		SelectionMode:    mode,
		PointsBudget:     req.PointsBudget,
	}
	if err := h.service.CreateDestination(c.Request.Context(), dest); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dest)
}

func (h *AdminHandler) UpdateDestination(c *gin.Context) {
	id, ok := h.intParam(c, "id")
	if !ok {
		return
	}

	var req destinationRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dest := &Destination{
		ID:               id,
		Name:             req.Name,
		DescriptionShort: req.DescriptionShort,
		ImageCover:       req.ImageCover,
		SelectionMode:    SelectionMode(req.SelectionMode),
		PointsBudget:     req.PointsBudget,
	}
	if err := h.service.UpdateDestination(c.Request.Context(), dest); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dest)
}

func (h *AdminHandler) DeleteDestination(c *gin.Context) {
	id, ok := h.intParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteDestination(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// --------------------------------------------------
// Activities
// --------------------------------------------------

type activityRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	ImageFilename  string `json:"image_filename"`
	SliderLevelMin int    `json:"slider_level_min"`
	SliderLevelMax int    `json:"slider_level_max"`
}

func (h *AdminHandler) CreateActivity(c *gin.Context) {
	destID, ok := h.intParam(c, "id")
	if !ok {
		return
	}

	var req activityRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	act := &Activity{
		DestinationID: destID,
		Title:         req.Title,
		Description:   req.Description,
		ImageFilename: req.ImageFilename,
		Levels:        LevelRange{Min: req.SliderLevelMin, Max: req.SliderLevelMax},
	}
	if err := h.service.CreateActivity(c.Request.Context(), act); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, act)
}

func (h *AdminHandler) UpdateActivity(c *gin.Context) {
	id, ok := h.intParam(c, "id")
	if !ok {
		return
	}

	var req activityRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	act := &Activity{
		ID:            id,
		Title:         req.Title,
		Description:   req.Description,
		ImageFilename: req.ImageFilename,
		Levels:        LevelRange{Min: req.SliderLevelMin, Max: req.SliderLevelMax},
	}
	if err := h.service.UpdateActivity(c.Request.Context(), act); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, act)
}

func (h *AdminHandler) DeleteActivity(c *gin.Context) {
	id, ok := h.intParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteActivity(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// --------------------------------------------------
// Sub-items
// --------------------------------------------------

type subItemRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Points          int    `json:"points"`
	ImageFilename   string `json:"image_filename"`
	DefaultSelected bool   `json:"default_selected"`
	Mandatory       bool   `json:"mandatory"`
	FromParents     bool   `json:"from_parents"`
	FromFriends     bool   `json:"from_friends"`
	Spontaneous     bool   `json:"is_spontaneous"`
	SliderLevelMin  *int   `json:"slider_level_min"`
	SliderLevelMax  *int   `json:"slider_level_max"`
}

func (req *subItemRequest) toSubItem(id int) *SubItem {
	s := &SubItem{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		Points:          req.Points,
		ImageFilename:   req.ImageFilename,
		DefaultSelected: req.DefaultSelected,
		Mandatory:       req.Mandatory,
		FromParents:     req.FromParents,
		FromFriends:     req.FromFriends,
		Spontaneous:     req.Spontaneous,
	}
	// both bounds or nothing; a lone bound is completed by the
	// other one's value
	if req.SliderLevelMin != nil || req.SliderLevelMax != nil {
		r := LevelRange{}
		if req.SliderLevelMin != nil {
			r.Min = *req.SliderLevelMin
		}
		if req.SliderLevelMax != nil {
			r.Max = *req.SliderLevelMax
		} else {
			r.Max = r.Min
		}
		s.Levels = &r
	}
	return s
}

func (h *AdminHandler) CreateSubItem(c *gin.Context) {
	activityID, ok := h.intParam(c, "id")
	if !ok {
		return
	}

	var req subItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item := req.toSubItem(0)
	if err := h.service.CreateSubItem(c.Request.Context(), activityID, item); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *AdminHandler) UpdateSubItem(c *gin.Context) {
	activityID, ok := h.intParam(c, "id")
	if !ok {
		return
	}
	subItemID, ok := h.intParam(c, "sub_id")
	if !ok {
		return
	}

	var req subItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item := req.toSubItem(subItemID)
	if err := h.service.UpdateSubItem(c.Request.Context(), activityID, item); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *AdminHandler) DeleteSubItem(c *gin.Context) {
	activityID, ok := h.intParam(c, "id")
	if !ok {
		return
	}
	subItemID, ok := h.intParam(c, "sub_id")
	if !ok {
		return
	}
	if err := h.service.DeleteSubItem(c.Request.Context(), activityID, subItemID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": subItemID})
}

// --------------------------------------------------
// Image upload
// --------------------------------------------------

// UploadImage stores one image and returns its public URL; the
// client then saves the URL on the entity it belongs to.
func (h *AdminHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExt[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file type not allowed"})
		return
	}

	key := fmt.Sprintf("images/%s%s", uuid.New().String(), ext)
	url, err := h.images.Upload(c.Request.Context(), key, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"object_key": key,
		"url":        url,
	})
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (h *AdminHandler) intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}

func (h *AdminHandler) respondError(c *gin.Context, err error) {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}
	var invalid *ValidationError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
