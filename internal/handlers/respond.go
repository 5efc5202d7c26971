package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/goofitre/carcare-api/internal/httperr"
)

// ======================================================
// BUSINESS ERROR → HTTP
// ======================================================

var businessStatus = map[string]int{
	"store_not_found":   http.StatusNotFound,
	"service_not_found": http.StatusNotFound,
	"booking_not_found": http.StatusNotFound,
	"user_not_found":    http.StatusNotFound,

	"store_already_exists":     http.StatusConflict,
	"slug_taken":               http.StatusConflict,
	"email_already_registered": http.StatusConflict,

	"invalid_credentials": http.StatusUnauthorized,
	"forbidden":           http.StatusForbidden,
	"storage_disabled":    http.StatusServiceUnavailable,
	"image_too_large":     http.StatusRequestEntityTooLarge,
}

var businessMessage = map[string]string{
	"store_not_found":          "Store not found.",
	"service_not_found":        "Service not found.",
	"booking_not_found":        "Booking not found.",
	"user_not_found":           "User not found.",
	"store_already_exists":     "You already own a store.",
	"slug_taken":               "This slug is already used by another service of the store.",
	"email_already_registered": "This email is already registered.",
	"invalid_credentials":      "Email or password is incorrect.",
	"forbidden":                "You are not allowed to do this.",
	"storage_disabled":         "Image storage is not configured.",
	"image_too_large":          "Image dimensions are too large.",
	"store_required":           "Create your store first.",
	"invalid_state":            "This status change is not allowed.",
	"invalid_location":         "Latitude and longitude must be given together and within range.",
	"invalid_rating":           "Rating must be between 1 and 5.",
	"invalid_date_or_time":     "Date must be YYYY-MM-DD and time HH:mm.",
	"invalid_payment_method":   "Payment method must be CASH, PROMPTPAY or CARD.",
	"invalid_role":             "Role is not allowed.",
	"invalid_image":            "Upload a JPEG, PNG or WebP image.",
}

// respondError writes business failures with their mapped status (400 by
// default) and everything else as a logged 500.
func respondError(c *gin.Context, err error, op string) {
	code, ok := httperr.AsBusiness(err)
	if !ok {
		log.Error().Err(err).Str("op", op).Str("path", c.FullPath()).Msg("request failed")
		httperr.Internal(c, op+"_failed", "Something went wrong. Please try again.")
		return
	}

	status, found := businessStatus[code]
	if !found {
		status = http.StatusBadRequest
	}
	msg, found := businessMessage[code]
	if !found {
		msg = strings.ReplaceAll(code, "_", " ")
	}
	httperr.Write(c, status, code, msg)
}

func invalidRequest(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}

// ======================================================
// QUERY PARSING (parse or default)
// ======================================================

func queryInt(c *gin.Context, key string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(c.Query(key))); err == nil {
		return n
	}
	return def
}

func queryFloat(c *gin.Context, key string, def float64) float64 {
	if f := queryFloatPtr(c, key); f != nil {
		return *f
	}
	return def
}

// queryFloatPtr returns nil for missing, malformed or non-finite values.
func queryFloatPtr(c *gin.Context, key string) *float64 {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func queryBool(c *gin.Context, key string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "1", "true":
		return true
	}
	return false
}
