// Package soaprom exports soa container metrics to Prometheus.
package soaprom

import (
	"github.com/hupe1980/soa"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements soa.MetricsCollector on top of Prometheus counters.
//
// Every counter carries a "container" label set from the name passed to New,
// so several containers can share one registry.
type Collector struct {
	records   *prometheus.CounterVec
	errors    *prometheus.CounterVec
	deletes   prometheus.Counter
	compacted prometheus.Counter
	clears    prometheus.Counter
	ops       *prometheus.CounterVec
}

var _ soa.MetricsCollector = (*Collector)(nil)

// New creates a Collector for the container called name and registers its
// metrics with reg. A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace, name string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := prometheus.Labels{"container": name}

	c := &Collector{
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "records_inserted_total",
			Help:        "Records written by Add and Push, by source of the index.",
			ConstLabels: labels,
		}, []string{"index"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "operation_errors_total",
			Help:        "Operations that returned an error.",
			ConstLabels: labels,
		}, []string{"op"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "operations_total",
			Help:        "Container operations.",
			ConstLabels: labels,
		}, []string{"op"}),
		deletes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "records_deleted_total",
			Help:        "Records removed by Delete and Pop.",
			ConstLabels: labels,
		}),
		compacted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "compacted_slots_total",
			Help:        "Trailing slots physically removed from dense columns.",
			ConstLabels: labels,
		}),
		clears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "clears_total",
			Help:        "Clear calls.",
			ConstLabels: labels,
		}),
	}

	for _, m := range []prometheus.Collector{c.records, c.errors, c.ops, c.deletes, c.compacted, c.clears} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) observe(op string, err error) {
	c.ops.WithLabelValues(op).Inc()
	if err != nil {
		c.errors.WithLabelValues(op).Inc()
	}
}

// RecordAdd implements soa.MetricsCollector.
func (c *Collector) RecordAdd(count, recycled int, err error) {
	c.observe("add", err)
	c.records.WithLabelValues("recycled").Add(float64(recycled))
	c.records.WithLabelValues("appended").Add(float64(count - recycled))
}

// RecordPush implements soa.MetricsCollector.
func (c *Collector) RecordPush(count int, err error) {
	c.observe("push", err)
	c.records.WithLabelValues("appended").Add(float64(count))
}

// RecordUpsert implements soa.MetricsCollector.
func (c *Collector) RecordUpsert(err error) { c.observe("upsert", err) }

// RecordUpdate implements soa.MetricsCollector.
func (c *Collector) RecordUpdate(err error) { c.observe("update", err) }

// RecordDelete implements soa.MetricsCollector.
func (c *Collector) RecordDelete(compacted int) {
	c.deletes.Inc()
	c.compacted.Add(float64(compacted))
}

// RecordClear implements soa.MetricsCollector.
func (c *Collector) RecordClear() { c.clears.Inc() }
