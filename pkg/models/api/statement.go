package api

import "time"

type LineItem struct {
	AccountID   string  `json:"account_id"`
	AccountName string  `json:"account_name"`
	Value       float64 `json:"value"`
	Period      string  `json:"period"`
}

type ReportMetadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	TotalValue  float64   `json:"total_value"`
}

type Report struct {
	ReportType string         `json:"report_type"`
	Period     string         `json:"period"`
	Data       []LineItem     `json:"data"`
	Metadata   ReportMetadata `json:"metadata"`
}

type ReportType struct {
	Name string `json:"name"`
}

type Error struct {
	Error       string   `json:"error"`
	Rule        string   `json:"rule,omitempty"`
	Discrepancy *float64 `json:"discrepancy,omitempty"`
}
