package domain

import "time"

// LineItem is one signed financial fact for a reporting period.
// Inflows and assets are positive; outflows, liabilities and equity are negative.
type LineItem struct {
	AccountID   string
	AccountName string
	Value       float64
	Period      string
}

// ReportResult is the envelope produced by a single pipeline run
type ReportResult struct {
	ReportType string
	Period     string
	Data       []LineItem
	Metadata   ReportMetadata
}

type ReportMetadata struct {
	GeneratedAt time.Time
	TotalValue  float64 // sum of Data[*].Value
}
