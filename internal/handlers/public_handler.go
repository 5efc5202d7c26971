package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	domain "github.com/goofitre/carcare-api/internal/domain/store"
	"github.com/goofitre/carcare-api/internal/httperr"
	"github.com/goofitre/carcare-api/internal/httpresp"
	ucBooking "github.com/goofitre/carcare-api/internal/usecase/booking"
	ucReview "github.com/goofitre/carcare-api/internal/usecase/review"
	ucStore "github.com/goofitre/carcare-api/internal/usecase/store"
)

// searchDefaultTake is the page size of the JSON listing.
const searchDefaultTake = 20

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	search      domain.Searcher
	detail      *ucStore.GetStoreDetail
	listReviews *ucReview.ListReviews
	addReview   *ucReview.AddReview
	book        *ucBooking.CreateBooking
	getBooking  *ucBooking.GetBooking
}

func NewPublicHandler(
	search domain.Searcher,
	detail *ucStore.GetStoreDetail,
	listReviews *ucReview.ListReviews,
	addReview *ucReview.AddReview,
	book *ucBooking.CreateBooking,
	getBooking *ucBooking.GetBooking,
) *PublicHandler {
	return &PublicHandler{
		search:      search,
		detail:      detail,
		listReviews: listReviews,
		addReview:   addReview,
		book:        book,
		getBooking:  getBooking,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AddReviewRequest struct {
	Author  string  `json:"author" binding:"required,max=100"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment" binding:"max=2000"`
}

type CreateBookingRequest struct {
	ServiceID    string  `json:"service_id" binding:"required"`
	CustomerName string  `json:"customer_name" binding:"required,max=100"`
	Phone        string  `json:"phone" binding:"required,min=3,max=30"`
	Email        *string `json:"email" binding:"omitempty,email"`
	CarModel     string  `json:"car_model" binding:"required,max=100"`
	CarPlate     string  `json:"car_plate" binding:"required,max=30"`
	Date         string  `json:"date" binding:"required"`
	Time         string  `json:"time" binding:"required"`
	Note         *string `json:"note" binding:"omitempty,max=1000"`
	Method       string  `json:"method"`

	Amount *decimal.Decimal `json:"amount"`
}

// ======================================================
// SEARCH
// ======================================================

// Search never rejects malformed params; each one falls back to its
// default.
func (h *PublicHandler) Search(c *gin.Context) {
	criteria := domain.Criteria{
		Q:         c.Query("q"),
		MinRating: queryFloat(c, "minRating", 0),
		OnlyOpen:  queryBool(c, "open"),
		Sort:      domain.ParseSort(c.Query("sort")),
		Take:      queryInt(c, "take", searchDefaultTake),
		Skip:      queryInt(c, "skip", 0),
		Distance:  queryFloatPtr(c, "distance"),
		UserLat:   queryFloatPtr(c, "lat"),
		UserLng:   queryFloatPtr(c, "lng"),
	}

	res, err := h.search.Search(c.Request.Context(), criteria)
	if err != nil {
		log.Error().Err(err).Str("q", criteria.Q).Msg("store search failed")
		httperr.Internal(c, "search_failed", "Could not load stores.")
		return
	}

	if res.Items == nil {
		res.Items = []domain.Item{}
	}
	c.JSON(http.StatusOK, res)
}

// ======================================================
// STORE DETAIL
// ======================================================

func (h *PublicHandler) Detail(c *gin.Context) {
	out, err := h.detail.Execute(c.Request.Context(), ucStore.GetStoreDetailInput{
		StoreID: c.Param("id"),
		UserLat: queryFloatPtr(c, "lat"),
		UserLng: queryFloatPtr(c, "lng"),
	})
	if err != nil {
		respondError(c, err, "store_detail")
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// REVIEWS
// ======================================================

func (h *PublicHandler) ListReviews(c *gin.Context) {
	items, err := h.listReviews.Execute(c.Request.Context(), c.Param("id"), queryInt(c, "take", 0))
	if err != nil {
		respondError(c, err, "review_list")
		return
	}
	httpresp.List(c, items, int64(len(items)))
}

func (h *PublicHandler) AddReview(c *gin.Context) {
	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	rv, err := h.addReview.Execute(c.Request.Context(), ucReview.AddReviewInput{
		StoreID: c.Param("id"),
		Author:  req.Author,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondError(c, err, "review_create")
		return
	}
	httpresp.Created(c, rv)
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	method := req.Method
	if method == "" {
		method = "CASH"
	}

	b, err := h.book.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		StoreID:      c.Param("id"),
		ServiceID:    req.ServiceID,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Email:        req.Email,
		CarModel:     req.CarModel,
		CarPlate:     req.CarPlate,
		Date:         req.Date,
		Time:         req.Time,
		Note:         req.Note,
		Method:       method,
		Amount:       req.Amount,
	})
	if err != nil {
		respondError(c, err, "booking_create")
		return
	}
	httpresp.Created(c, b)
}

func (h *PublicHandler) GetBooking(c *gin.Context) {
	b, err := h.getBooking.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "booking_get")
		return
	}
	httpresp.OK(c, b)
}
