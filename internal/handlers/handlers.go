package handlers

import (
	"bytes"
	"net/http"

	"folio/internal/analytics"
	"folio/internal/models"
	"folio/internal/workbook"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv; charset=utf-8"
)

type Handler struct {
	snap *analytics.Snapshot
	log  *logrus.Logger
}

func NewHandler(s *analytics.Snapshot, log *logrus.Logger) *Handler {
	return &Handler{snap: s, log: log}
}

// Register mounts the portfolio API on r.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api/portfolio")
	api.GET("/holdings", h.GetHoldings)
	api.GET("/holdings/export", h.ExportHoldings)
	api.GET("/filters", h.GetFilters)
	api.GET("/allocation", h.GetAllocation)
	api.GET("/performance", h.GetPerformance)
	api.GET("/summary", h.GetSummary)
	api.GET("/alert", h.GetAlert)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
}

// bindQuery reads the view parameters. An unknown sort key is allowed and
// leaves the view unsorted; a bad direction is rejected.
func (h *Handler) bindQuery(c *gin.Context) (models.QueryState, bool) {
	var q models.QueryState
	if err := c.ShouldBindQuery(&q); err != nil {
		h.log.Warnf("invalid query: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return q, false
	}
	switch q.SortDirection {
	case "", models.SortAsc, models.SortDesc:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be asc or desc"})
		return q, false
	}
	if q.SortKey != "" && !analytics.IsSortKey(q.SortKey) {
		h.log.Debugf("unknown sort key %q, returning unsorted view", q.SortKey)
	}
	return q, true
}

func (h *Handler) GetHoldings(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.snap.Query(q))
}

func (h *Handler) ExportHoldings(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	rows := analytics.ExportRows(h.snap.Export(q))

	var (
		buf         bytes.Buffer
		err         error
		contentType string
		filename    string
	)
	switch format := c.DefaultQuery("format", "xlsx"); format {
	case "xlsx":
		err = workbook.WriteXLSX(&buf, analytics.ExportSheetName, rows)
		contentType, filename = xlsxContentType, analytics.ExportFileBase+".xlsx"
	case "csv":
		err = workbook.WriteCSV(&buf, rows)
		contentType, filename = csvContentType, analytics.ExportFileBase+".csv"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be xlsx or csv"})
		return
	}
	if err != nil {
		h.log.Errorf("export holdings failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *Handler) GetFilters(c *gin.Context) {
	c.JSON(http.StatusOK, h.snap.Filters())
}

func (h *Handler) GetAllocation(c *gin.Context) {
	c.JSON(http.StatusOK, h.snap.Allocation())
}

func (h *Handler) GetPerformance(c *gin.Context) {
	c.JSON(http.StatusOK, h.snap.Performance())
}

func (h *Handler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.snap.Summary())
}

func (h *Handler) GetAlert(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"alert": h.snap.Alert()})
}
