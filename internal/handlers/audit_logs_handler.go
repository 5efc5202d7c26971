package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goofitre/carcare-api/internal/audit"
	"github.com/goofitre/carcare-api/internal/httpresp"
	"github.com/goofitre/carcare-api/internal/models"
	"github.com/goofitre/carcare-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLister interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs AuditLister
	tz   string
}

func NewAuditLogsHandler(logs AuditLister, tz string) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, tz: tz}
}

type auditPage struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	f := audit.Filter{
		StoreID: c.Query("storeId"),
		Action:  c.Query("action"),
		Entity:  c.Query("entity"),
		Page:    queryInt(c, "page", 1),
		Limit:   queryInt(c, "limit", 50),
	}

	// --------------------------------------------------
	// Date range (local days, inclusive)
	// --------------------------------------------------

	if from := c.Query("from"); from != "" {
		if start, _, err := timezone.DayRange(from, h.tz); err == nil {
			f.From = &start
		}
	}
	if to := c.Query("to"); to != "" {
		if _, end, err := timezone.DayRange(to, h.tz); err == nil {
			f.To = &end
		}
	}

	f = f.Normalize()

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "audit_list")
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(http.StatusOK, httpresp.Envelope{
		OK: true,
		Data: auditPage{
			Page:  f.Page,
			Limit: f.Limit,
			Total: total,
			Logs:  logs,
		},
	})
}

