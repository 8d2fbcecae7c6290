package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
)

const maxCoverBytes = 10 << 20

type VenueHandler struct {
	service venue.Service
}

func NewHandler(service venue.Service) *VenueHandler {
	return &VenueHandler{service: service}
}

func (h *VenueHandler) List(c *gin.Context) {
	var req ListVenuesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	venues, total, err := h.service.List(c.Request.Context(), venue.Filter{
		OwnerID:   req.OwnerID,
		Name:      req.Name,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]VenueResponse, len(venues))
	for i, v := range venues {
		items[i] = NewVenueResponse(v)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *VenueHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid venue id", err)
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewVenueResponse(v))
}

func (h *VenueHandler) Create(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	v, err := h.service.Create(c.Request.Context(), auth.CurrentPrincipal(c), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewVenueResponse(v))
}

func (h *VenueHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid venue id", err)
		return
	}
	var req UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	v, err := h.service.Update(c.Request.Context(), auth.CurrentPrincipal(c), uri.ID, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewVenueResponse(v))
}

func (h *VenueHandler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid venue id", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), auth.CurrentPrincipal(c), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadCover accepts a multipart "file" field holding a JPEG, PNG or GIF.
func (h *VenueHandler) UploadCover(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid venue id", err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxCoverBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing or oversized file", err)
		return
	}
	ct := fh.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "image/") {
		response.BadRequest(c, "file must be an image", nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	v, err := h.service.UploadCover(c.Request.Context(), auth.CurrentPrincipal(c), uri.ID, f)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewVenueResponse(v))
}

// Cover streams the cover photo; ?size=thumb selects the thumbnail.
func (h *VenueHandler) Cover(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid venue id", err)
		return
	}

	size := venue.CoverFull
	if c.Query("size") == string(venue.CoverThumbnail) {
		size = venue.CoverThumbnail
	}

	rc, err := h.service.OpenCover(c.Request.Context(), uri.ID, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Cache-Control", "public, max-age=3600")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		_ = c.Error(err)
	}
}
