package service

import (
	"math"

	"leadqual_backend/internal/leads/domain"
)

// Metrics are the dashboard-level counters derived from the lead collection.
type Metrics struct {
	TotalLeads     int `json:"totalLeads"`
	ProcessedCount int `json:"processedCount"`
	QualifiedCount int `json:"qualifiedCount"`
	QualifiedRate  int `json:"qualifiedRate"`
	PendingCount   int `json:"pendingCount"`
	RoutedCount    int `json:"routedCount"`
}

// ComputeMetrics derives counters from a snapshot of the lead collection.
// Pure: no cached state, recomputed on every read. Every QUALIFIED lead is
// considered routed downstream.
func ComputeMetrics(leads []domain.ProcessedLead) Metrics {
	m := Metrics{TotalLeads: len(leads)}

	for _, l := range leads {
		switch {
		case l.Status == domain.StatusProcessing:
			m.PendingCount++
		default:
			m.ProcessedCount++
			if l.Status == domain.StatusQualified {
				m.QualifiedCount++
			}
		}
	}

	if m.ProcessedCount > 0 {
		m.QualifiedRate = int(math.Round(float64(m.QualifiedCount) / float64(m.ProcessedCount) * 100))
	}
	m.RoutedCount = m.QualifiedCount

	return m
}
