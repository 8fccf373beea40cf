package models

import (
	"imbalance-report/internal/analysis"
	"imbalance-report/internal/model"
)

// ReportResponse represents the daily imbalance report
type ReportResponse struct {
	Date       string                         `json:"date"`
	Summary    analysis.DaySummary            `json:"summary"`
	TopPeriods []model.SettlementPeriodRecord `json:"top_periods"`
	Records    []model.SettlementPeriodRecord `json:"records,omitempty"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
