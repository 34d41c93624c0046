package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the set of Prometheus collectors conduit's demo wiring
// registers: counters, histograms, and gauges keyed by a small label
// set via WithLabelValues.
type Metrics struct {
	SendsTotal          *prometheus.CounterVec
	RecvsTotal          *prometheus.CounterVec
	ChannelsClosedTotal prometheus.Counter
	BufferedLength       *prometheus.GaugeVec
	SelectWaitersActive prometheus.Gauge
	SelectWaitDuration  prometheus.Histogram
}

// New registers and returns a fresh Metrics set against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SendsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "conduit_channel_sends_total",
			Help: "Total Send/TrySend/SendTimeout outcomes, by result.",
		}, []string{"result"}),
		RecvsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "conduit_channel_recvs_total",
			Help: "Total Recv/TryRecv/RecvTimeout outcomes, by result.",
		}, []string{"result"}),
		ChannelsClosedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "conduit_channels_closed_total",
			Help: "Total number of channels closed.",
		}),
		BufferedLength: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "conduit_channel_buffered",
			Help: "Current buffered length of an observed channel.",
		}, []string{"channel"}),
		SelectWaitersActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "conduit_select_waiters_active",
			Help: "Number of goroutines currently parked in SelectWait.",
		}),
		SelectWaitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "conduit_select_wait_duration_seconds",
			Help:    "Time spent parked in SelectWait before returning.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.SendsTotal,
		m.RecvsTotal,
		m.ChannelsClosedTotal,
		m.BufferedLength,
		m.SelectWaitersActive,
		m.SelectWaitDuration,
	)
	return m
}

// ObserveSelectWait records how long a SelectWait call took, used by
// cmd/conduit-demo around channel.SelectWait calls (the core itself
// never imports telemetry).
func (m *Metrics) ObserveSelectWait(start time.Time) {
	m.SelectWaitDuration.Observe(time.Since(start).Seconds())
}
