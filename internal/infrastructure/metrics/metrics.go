package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Booking metrics
	AllocationsCreated prometheus.Counter
	BookingsCreated    *prometheus.CounterVec
	EntriesPosted      prometheus.Counter
	BookingDuration    prometheus.Histogram

	// Offset metrics
	OffsetsExecuted *prometheus.CounterVec
	OffsetsSkipped  *prometheus.CounterVec

	// Scenario metrics
	ScenariosCreated   prometheus.Counter
	ScenarioActivation *prometheus.CounterVec

	// Attachment metrics
	AttachmentsRecorded prometheus.Counter
	AttachmentFailures  prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		AllocationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "interco_allocations_created_total",
			Help: "Total number of successful allocate actions",
		}),
		BookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "interco_bookings_created_total",
			Help: "Total number of successful book actions by mode",
		}, []string{"mode"}),
		EntriesPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "interco_entries_posted_total",
			Help: "Total number of journal entries posted",
		}),
		BookingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "interco_booking_duration_seconds",
			Help:    "Duration of booking actions in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		OffsetsExecuted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "interco_offsets_executed_total",
			Help: "Total number of executed offset reconciliations by strategy",
		}, []string{"strategy"}),
		OffsetsSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "interco_offsets_skipped_total",
			Help: "Total number of skipped offset reconciliations by strategy",
		}, []string{"strategy"}),

		ScenariosCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "interco_scenarios_created_total",
			Help: "Total number of scenarios created",
		}),
		ScenarioActivation: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "interco_scenario_activation_total",
			Help: "Total number of scenario activation state changes",
		}, []string{"state"}),

		AttachmentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "interco_attachments_recorded_total",
			Help: "Total number of attachment links recorded",
		}),
		AttachmentFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "interco_attachment_failures_total",
			Help: "Total number of non-fatal attachment recording failures",
		}),
	}
}
