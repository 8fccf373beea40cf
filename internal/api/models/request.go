package models

// ReportRequest represents the query parameters for a daily report
type ReportRequest struct {
	Date string `form:"date" binding:"required"` // YYYY-MM-DD
	TopK int    `form:"top_k,omitempty"`         // default: 5
}
