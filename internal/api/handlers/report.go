package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"imbalance-report/internal/analysis"
	"imbalance-report/internal/api/models"
	"imbalance-report/internal/data"
	"imbalance-report/internal/model"
	"imbalance-report/internal/report"
	"imbalance-report/internal/transform"

	"github.com/gin-gonic/gin"
)

// ReportHandler handles daily-report requests
type ReportHandler struct {
	client      *data.ElexonClient
	defaultTopK int
	completeDay bool
}

// NewReportHandler creates a new report handler
func NewReportHandler(client *data.ElexonClient, defaultTopK int, completeDay bool) *ReportHandler {
	if client == nil {
		client = data.NewElexonClient("")
	}
	if defaultTopK <= 0 {
		defaultTopK = analysis.DefaultTopK
	}
	return &ReportHandler{client: client, defaultTopK: defaultTopK, completeDay: completeDay}
}

// GetReport handles GET /api/v1/report
func (h *ReportHandler) GetReport(c *gin.Context) {
	records, req, ok := h.fetchRecords(c)
	if !ok {
		return
	}
	topK := req.TopK
	if topK <= 0 {
		topK = h.defaultTopK
	}
	c.JSON(http.StatusOK, models.ReportResponse{
		Date:       req.Date,
		Summary:    analysis.Summarize(records),
		TopPeriods: analysis.TopByAbsVolume(records, topK),
		Records:    records,
	})
}

// GetChartsXLSX handles GET /api/v1/report/charts.xlsx
func (h *ReportHandler) GetChartsXLSX(c *gin.Context) {
	records, req, ok := h.fetchRecords(c)
	if !ok {
		return
	}
	raw, err := report.BuildChartsXLSX(req.Date, records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "RENDER_ERROR", Message: err.Error()},
		})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=imbalance-%s.xlsx", req.Date))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", raw)
}

// GetSummaryPDF handles GET /api/v1/report/summary.pdf
func (h *ReportHandler) GetSummaryPDF(c *gin.Context) {
	records, req, ok := h.fetchRecords(c)
	if !ok {
		return
	}
	topK := req.TopK
	if topK <= 0 {
		topK = h.defaultTopK
	}
	raw, err := report.BuildSummaryPDF(analysis.Summarize(records), analysis.TopByAbsVolume(records, topK))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "RENDER_ERROR", Message: err.Error()},
		})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=imbalance-%s.pdf", req.Date))
	c.Data(http.StatusOK, "application/pdf", raw)
}

// fetchRecords binds the request, fetches and normalizes the day, and writes
// the error response when anything fails.
func (h *ReportHandler) fetchRecords(c *gin.Context) ([]model.SettlementPeriodRecord, models.ReportRequest, bool) {
	var req models.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return nil, req, false
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_DATE", Message: "date must be in YYYY-MM-DD format"},
		})
		return nil, req, false
	}

	resp, err := h.client.FetchDay(req.Date, h.completeDay)
	if err != nil {
		h.writeFetchError(c, err)
		return nil, req, false
	}

	records, err := transform.Normalize(resp)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "DATA_FORMAT", Message: err.Error()},
		})
		return nil, req, false
	}
	return records, req, true
}

func (h *ReportHandler) writeFetchError(c *gin.Context, err error) {
	var apiErr *data.ElexonError
	switch {
	case errors.Is(err, data.ErrNoData):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NO_DATA", Message: err.Error()},
		})
	case errors.As(err, &apiErr):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: models.ErrorDetail{Code: apiErr.Code, Message: apiErr.Message},
		})
	default:
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NETWORK_ERROR", Message: err.Error()},
		})
	}
}
