package preview

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are registered on Config.Registry. A nil *metrics records
// nothing.
type metrics struct {
	clients prometheus.Gauge
	frames  prometheus.Counter
	patches prometheus.Counter
	events  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		clients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "widgetkit",
			Subsystem: "preview",
			Name:      "clients",
			Help:      "Connected preview clients.",
		}),
		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "widgetkit",
			Subsystem: "preview",
			Name:      "frames_sent_total",
			Help:      "Patch frames queued for clients, counted once per client.",
		}),
		patches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "widgetkit",
			Subsystem: "preview",
			Name:      "patches_total",
			Help:      "Patches broadcast to clients.",
		}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "widgetkit",
			Subsystem: "preview",
			Name:      "events_total",
			Help:      "Events received from clients.",
		}, []string{"type"}),
	}
}

func (m *metrics) setClients(n int) {
	if m == nil {
		return
	}
	m.clients.Set(float64(n))
}

func (m *metrics) frameSent(patches, clients int) {
	if m == nil {
		return
	}
	m.frames.Add(float64(clients))
	m.patches.Add(float64(patches))
}

func (m *metrics) eventReceived(eventType string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(eventType).Inc()
}
