package metrics

import "time"

// Pipeline record methods are nil-safe so adapters can be constructed
// without instrumentation in tests.

func (m *Metrics) RecordUpload(format string) {
	if m == nil {
		return
	}
	m.uploadsTotal.WithLabelValues(m.service, format).Inc()
}

func (m *Metrics) RecordExtractionWarnings(format string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.extractionWarningsTotal.WithLabelValues(m.service, format).Add(float64(count))
}

func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookupsTotal.WithLabelValues(m.service, result).Inc()
}

func (m *Metrics) RecordInference(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.inferenceTotal.WithLabelValues(m.service, outcome).Inc()
	m.inferenceDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordParse(status string) {
	if m == nil {
		return
	}
	if status == "" {
		status = "unknown"
	}
	m.parsesTotal.WithLabelValues(m.service, status).Inc()
}
