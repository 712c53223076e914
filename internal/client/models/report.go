package models

import "fmt"

type ReportType string

const (
	ReportTypePattern         ReportType = "pattern"
	ReportTypeTrend           ReportType = "trend"
	ReportTypeSummary         ReportType = "summary"
	ReportTypeRecommendations ReportType = "recommendations"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportTypePattern, ReportTypeTrend, ReportTypeSummary, ReportTypeRecommendations:
		return true
	}
	return false
}

func ParseReportType(s string) (ReportType, error) {
	t := ReportType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown report type %q", s)
	}
	return t, nil
}

// Report is generated narrative text. Reports are never edited after creation.
// GeneratedFrom lists the journal entry ids used as input, in order; it is
// provenance only.
type Report struct {
	ID            string     `json:"id"`
	Type          ReportType `json:"type"`
	Content       string     `json:"content"`
	Timestamp     int64      `json:"timestamp"`
	ChildName     string     `json:"childName"`
	GeneratedFrom []string   `json:"generatedFrom"`
}
