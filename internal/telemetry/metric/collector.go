package metric

import "github.com/prometheus/client_golang/prometheus"

// KeyCounter reports the number of resident keys.
type KeyCounter interface {
	Len() int
}

// StoreCollector reads the key count from the store on every scrape.
// Expired keys that were not yet touched are still counted.
type StoreCollector struct {
	store KeyCounter
	keys  *prometheus.Desc
}

// NewStoreCollector creates a collector over store.
func NewStoreCollector(store KeyCounter) *StoreCollector {
	return &StoreCollector{
		store: store,
		keys: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "keys"),
			"Keys physically resident in the store.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keys
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(c.store.Len()))
}
