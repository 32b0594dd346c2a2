// Package metrics wraps github.com/prometheus/client_golang with the
// namespace-prefixed constructors this module's packages use, mirroring
// the teacher's own metrics package one-for-one (see
// activation/metrics/metrics.go in the reference corpus).
package metrics

import "github.com/prometheus/client_golang/prometheus"

const subsystem = "beefy"

func fqName(namespace, name string) string {
	return namespace + "_" + subsystem + "_" + name
}

// NewGauge registers and returns a labeled gauge vector.
func NewGauge(name, namespace, help string, labels []string) *prometheus.GaugeVec {
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: fqName(namespace, name),
		Help: help,
	}, labels)
	prometheus.MustRegister(g)
	return g
}

// NewCounter registers and returns a labeled counter vector.
func NewCounter(name, namespace, help string, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: fqName(namespace, name),
		Help: help,
	}, labels)
	prometheus.MustRegister(c)
	return c
}

// NewSimpleCounter registers and returns an unlabeled counter.
func NewSimpleCounter(namespace, name, help string) prometheus.Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: fqName(namespace, name),
		Help: help,
	})
	prometheus.MustRegister(c)
	return c
}

// NewHistogramWithBuckets registers and returns a labeled histogram vector
// with explicit buckets.
func NewHistogramWithBuckets(
	name, namespace, help string,
	labels []string,
	buckets []float64,
) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    fqName(namespace, name),
		Help:    help,
		Buckets: buckets,
	}, labels)
	prometheus.MustRegister(h)
	return h
}

// NewHistogramNoLabel registers and returns an unlabeled histogram.
func NewHistogramNoLabel(name, namespace, help string, buckets []float64) prometheus.Histogram {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    fqName(namespace, name),
		Help:    help,
		Buckets: buckets,
	})
	prometheus.MustRegister(h)
	return h
}
