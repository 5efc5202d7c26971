package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/goofitre/carcare-api/internal/dto"
	"github.com/goofitre/carcare-api/internal/httperr"
	"github.com/goofitre/carcare-api/internal/httpresp"
	"github.com/goofitre/carcare-api/internal/media"
	"github.com/goofitre/carcare-api/internal/middleware"
	ucBooking "github.com/goofitre/carcare-api/internal/usecase/booking"
	ucService "github.com/goofitre/carcare-api/internal/usecase/service"
	ucStore "github.com/goofitre/carcare-api/internal/usecase/store"
	"github.com/goofitre/carcare-api/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// OrganizaHandler serves the store owner's screens.
type OrganizaHandler struct {
	ownStore    *ucStore.GetOwnStore
	createStore *ucStore.CreateStore
	updateStore *ucStore.UpdateStore
	deleteStore *ucStore.DeleteStore
	uploadImage *ucStore.UploadStoreImage

	catalog  *ucService.Catalog
	bookings *ucBooking.StoreBookings
}

func NewOrganizaHandler(
	ownStore *ucStore.GetOwnStore,
	createStore *ucStore.CreateStore,
	updateStore *ucStore.UpdateStore,
	deleteStore *ucStore.DeleteStore,
	uploadImage *ucStore.UploadStoreImage,
	catalog *ucService.Catalog,
	bookings *ucBooking.StoreBookings,
) *OrganizaHandler {
	return &OrganizaHandler{
		ownStore:    ownStore,
		createStore: createStore,
		updateStore: updateStore,
		deleteStore: deleteStore,
		uploadImage: uploadImage,
		catalog:     catalog,
		bookings:    bookings,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type StoreRequest struct {
	Name     string   `json:"name" binding:"required,min=2,max=100"`
	Phone    string   `json:"phone" binding:"required,min=3,max=30"`
	Address  string   `json:"address" binding:"required,min=5,max=255"`
	ImageURL *string  `json:"image_url" binding:"omitempty,max=500"`
	Hours    *string  `json:"hours" binding:"omitempty,max=100"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	IsOpen   bool     `json:"is_open"`
}

func (r StoreRequest) input() ucStore.StoreInput {
	return ucStore.StoreInput{
		Name:     r.Name,
		Phone:    r.Phone,
		Address:  r.Address,
		ImageURL: r.ImageURL,
		Hours:    r.Hours,
		Lat:      r.Lat,
		Lng:      r.Lng,
		IsOpen:   r.IsOpen,
	}
}

type ServiceRequest struct {
	Name      string              `json:"name" binding:"required,min=2,max=100"`
	Slug      string              `json:"slug" binding:"max=120"`
	Detail    *string             `json:"detail"`
	PriceFrom decimal.NullDecimal `json:"price_from"`
	PriceTo   decimal.NullDecimal `json:"price_to"`
}

func (r ServiceRequest) input() ucService.ServiceInput {
	return ucService.ServiceInput{
		Name:      r.Name,
		Slug:      r.Slug,
		Detail:    r.Detail,
		PriceFrom: r.PriceFrom,
		PriceTo:   r.PriceTo,
	}
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// STORE
// ======================================================

func (h *OrganizaHandler) GetStore(c *gin.Context) {
	s, err := h.ownStore.Execute(c.Request.Context(), middleware.Actor(c).UserID)
	if err != nil {
		respondError(c, err, "store_get")
		return
	}
	httpresp.OK(c, s)
}

func (h *OrganizaHandler) CreateStore(c *gin.Context) {
	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	if !validators.IsHTTPURL(req.ImageURL) {
		httperr.BadRequest(c, "invalid_image_url", "Image URL must start with http:// or https://.")
		return
	}

	s, err := h.createStore.Execute(c.Request.Context(), ucStore.CreateStoreInput{
		UserID:     middleware.Actor(c).UserID,
		StoreInput: req.input(),
	})
	if err != nil {
		respondError(c, err, "store_create")
		return
	}
	httpresp.Created(c, s)
}

func (h *OrganizaHandler) UpdateStore(c *gin.Context) {
	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	if !validators.IsHTTPURL(req.ImageURL) {
		httperr.BadRequest(c, "invalid_image_url", "Image URL must start with http:// or https://.")
		return
	}

	s, err := h.updateStore.Execute(c.Request.Context(), ucStore.UpdateStoreInput{
		Actor:      middleware.Actor(c),
		StoreID:    c.Param("id"),
		StoreInput: req.input(),
	})
	if err != nil {
		respondError(c, err, "store_update")
		return
	}
	httpresp.OK(c, s)
}

func (h *OrganizaHandler) DeleteStore(c *gin.Context) {
	if err := h.deleteStore.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		respondError(c, err, "store_delete")
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}

func (h *OrganizaHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxUploadSize+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "file_required", "Send the image in the \"file\" field.")
		return
	}
	if fh.Size > media.MaxUploadSize {
		httperr.BadRequest(c, "file_too_large", "Images are limited to 8 MB.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "file_required", "Could not read the uploaded file.")
		return
	}
	defer f.Close()

	url, err := h.uploadImage.Execute(c.Request.Context(), ucStore.UploadStoreImageInput{
		Actor:   middleware.Actor(c),
		StoreID: c.Param("id"),
		File:    f,
	})
	if err != nil {
		respondError(c, err, "store_image")
		return
	}
	httpresp.OK(c, gin.H{"image_url": url})
}

// ======================================================
// SERVICES
// ======================================================

func (h *OrganizaHandler) ListServices(c *gin.Context) {
	items, err := h.catalog.List(c.Request.Context(), middleware.Actor(c).UserID)
	if err != nil {
		respondError(c, err, "service_list")
		return
	}
	httpresp.List(c, items, int64(len(items)))
}

func (h *OrganizaHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	svc, err := h.catalog.Create(c.Request.Context(), middleware.Actor(c).UserID, req.input())
	if err != nil {
		respondError(c, err, "service_create")
		return
	}
	httpresp.Created(c, svc)
}

func (h *OrganizaHandler) UpdateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	svc, err := h.catalog.Update(c.Request.Context(), middleware.Actor(c).UserID, c.Param("id"), req.input())
	if err != nil {
		respondError(c, err, "service_update")
		return
	}
	httpresp.OK(c, svc)
}

func (h *OrganizaHandler) DeleteService(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), middleware.Actor(c).UserID, c.Param("id")); err != nil {
		respondError(c, err, "service_delete")
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}

// ======================================================
// BOOKINGS (TASKS) + DASHBOARD
// ======================================================

func (h *OrganizaHandler) ListBookings(c *gin.Context) {
	items, err := h.bookings.List(c.Request.Context(), middleware.Actor(c).UserID, c.Query("status"))
	if err != nil {
		respondError(c, err, "booking_list")
		return
	}
	httpresp.List(c, dto.NewBookingList(items), int64(len(items)))
}

func (h *OrganizaHandler) UpdateBookingStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	b, err := h.bookings.UpdateStatus(c.Request.Context(), middleware.Actor(c).UserID, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "booking_status")
		return
	}
	httpresp.OK(c, b)
}

func (h *OrganizaHandler) Dashboard(c *gin.Context) {
	stats, err := h.bookings.Dashboard(c.Request.Context(), middleware.Actor(c).UserID)
	if err != nil {
		respondError(c, err, "dashboard")
		return
	}
	httpresp.OK(c, stats)
}
