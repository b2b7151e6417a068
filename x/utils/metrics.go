package utils

import (
	"strconv"
	"sync"
	"time"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once

	txCounter  *prometheus.CounterVec
	txDuration *prometheus.HistogramVec
)

func registerMetrics() {
	metricsOnce.Do(func() {
		txCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barter",
			Name:      "tx_total",
			Help:      "Number of processed transactions by phase, message path and ABCI code.",
		}, []string{"phase", "path", "code"})
		txDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "barter",
			Name:      "tx_duration_seconds",
			Help:      "Transaction processing time by phase and message path.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"phase", "path"})
		prometheus.MustRegister(txCounter, txDuration)
	})
}

// Metrics is a decorator counting processed transactions and measuring the
// time spent processing them. Metrics are exposed by the default prometheus
// registry.
type Metrics struct{}

var _ barter.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator, registering its collectors on the
// first call.
func NewMetrics() Metrics {
	registerMetrics()
	return Metrics{}
}

// Check measures the checking of a transaction.
func (Metrics) Check(ctx barter.Context, store barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	observe("check", barter.GetPath(tx), start, err)
	return res, err
}

// Deliver measures the execution of a transaction.
func (Metrics) Deliver(ctx barter.Context, store barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	observe("deliver", barter.GetPath(tx), start, err)
	return res, err
}

func observe(phase, path string, start time.Time, err error) {
	code, _ := errors.ABCIInfo(err, false)
	txCounter.WithLabelValues(phase, path, strconv.FormatUint(uint64(code), 10)).Inc()
	txDuration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}
