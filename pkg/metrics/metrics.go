// Package metrics counts classifier and codec outcomes for node_exporter's
// textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "netcfg"

// Metrics methods are safe to call on a nil receiver.
type Metrics struct {
	registry        *prometheus.Registry
	descriptorLoads *prometheus.CounterVec
	classifications *prometheus.CounterVec
	dscpConversions *prometheus.CounterVec
	switchPorts     prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		descriptorLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "switch",
			Name:      "descriptor_loads_total",
			Help:      "Switch descriptor reads by result.",
		}, []string{"result"}),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "switch",
			Name:      "classifications_total",
			Help:      "Interface classifications by match mode and result.",
		}, []string{"mode", "result"}),
		dscpConversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dscp",
			Name:      "conversions_total",
			Help:      "DSCP conversions by operation and result.",
		}, []string{"op", "result"}),
		switchPorts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "switch",
			Name:      "ports",
			Help:      "Kernel links classified as switch ports at last discovery.",
		}),
	}

	m.registry.MustRegister(m.descriptorLoads, m.classifications, m.dscpConversions, m.switchPorts)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) DescriptorLoad(ok bool) {
	if m == nil {
		return
	}
	m.descriptorLoads.WithLabelValues(result(ok, "ok", "absent")).Inc()
}

func (m *Metrics) Classification(subPort, isSwitchPort bool) {
	if m == nil {
		return
	}
	mode := "exact"
	if subPort {
		mode = "prefix"
	}
	m.classifications.WithLabelValues(mode, result(isSwitchPort, "switch_port", "other")).Inc()
}

func (m *Metrics) DSCPConversion(op string, err error) {
	if m == nil {
		return
	}
	m.dscpConversions.WithLabelValues(op, result(err == nil, "ok", "error")).Inc()
}

func (m *Metrics) SetSwitchPorts(n int) {
	if m == nil {
		return
	}
	m.switchPorts.Set(float64(n))
}

// WriteTextfile atomically writes all metrics in text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

func result(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
