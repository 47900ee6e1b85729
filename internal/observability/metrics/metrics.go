package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	namespace = "mediconnect"

	formSubmissionsName = namespace + "_forms_submissions_total"
)

// FormMetrics counts form submissions by outcome and rejected field.
type FormMetrics struct {
	submissions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
}

func NewFormMetrics(reg prometheus.Registerer) *FormMetrics {
	m := &FormMetrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "forms",
			Name:      "submissions_total",
			Help:      "Form submissions by form and outcome",
		}, []string{"form", "outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "forms",
			Name:      "rejections_total",
			Help:      "Rejected form submissions by the first failing field",
		}, []string{"form", "field"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissions, m.rejections)
	return m
}

func (m *FormMetrics) ObserveAccepted(form string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(form, "accepted").Inc()
}

func (m *FormMetrics) ObserveRejected(form, field string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(form, "rejected").Inc()
	m.rejections.WithLabelValues(form, field).Inc()
}

// DirectoryMetrics tracks doctor directory searches.
type DirectoryMetrics struct {
	searches *prometheus.CounterVec
	results  *prometheus.HistogramVec
}

func NewDirectoryMetrics(reg prometheus.Registerer) *DirectoryMetrics {
	m := &DirectoryMetrics{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "searches_total",
			Help:      "Directory searches by source (page, api, live) and result",
		}, []string{"source", "result"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "results",
			Help:      "Number of doctors returned per search",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6},
		}, []string{"source"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.searches, m.results)
	return m
}

func (m *DirectoryMetrics) ObserveSearch(source string, count int) {
	if m == nil {
		return
	}
	result := "found"
	if count == 0 {
		result = "empty"
	}
	m.searches.WithLabelValues(source, result).Inc()
	m.results.WithLabelValues(source).Observe(float64(count))
}

// FormCounts summarises submissions for one form.
type FormCounts struct {
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}

// FormSnapshot reads the submission counters back out of the gatherer.
func FormSnapshot(gatherer prometheus.Gatherer) map[string]FormCounts {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	out := map[string]FormCounts{}
	mfs, err := gatherer.Gather()
	if err != nil {
		return out
	}

	var family *dto.MetricFamily
	for _, mf := range mfs {
		if mf != nil && mf.GetName() == formSubmissionsName {
			family = mf
			break
		}
	}
	if family == nil {
		return out
	}

	for _, metric := range family.Metric {
		if metric == nil || metric.GetCounter() == nil {
			continue
		}
		form := labelValue(metric, "form")
		if form == "" {
			continue
		}
		counts := out[form]
		value := int64(metric.GetCounter().GetValue())
		switch labelValue(metric, "outcome") {
		case "accepted":
			counts.Accepted += value
		case "rejected":
			counts.Rejected += value
		}
		out[form] = counts
	}
	return out
}

func labelValue(metric *dto.Metric, name string) string {
	for _, lp := range metric.Label {
		if lp != nil && lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
