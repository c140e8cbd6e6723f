package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	SubscriptionsCreated     prometheus.Counter
	SubscriptionsConfirmed   prometheus.Counter
	ConfirmationEmailsSent   prometheus.Counter
	ConfirmationEmailsFailed prometheus.Counter
}

// New creates and registers all metrics on the given registerer. Tests pass a
// fresh prometheus.NewRegistry() to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubscriptionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "bulletin_subscriptions_created_total",
			Help: "Total number of pending subscriptions persisted",
		}),
		SubscriptionsConfirmed: factory.NewCounter(prometheus.CounterOpts{
			Name: "bulletin_subscriptions_confirmed_total",
			Help: "Total number of subscriptions confirmed via token",
		}),
		ConfirmationEmailsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "bulletin_confirmation_emails_sent_total",
			Help: "Total number of confirmation emails accepted by the provider",
		}),
		ConfirmationEmailsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "bulletin_confirmation_emails_failed_total",
			Help: "Total number of confirmation email dispatch failures",
		}),
	}
}
