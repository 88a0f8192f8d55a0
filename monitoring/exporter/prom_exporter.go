package main

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromExporter collects metrics in Prometheus format from a livelog server.
type PromExporter struct {
	address   string
	timeout   time.Duration
	namespace string

	scraper *Scraper

	up                *prometheus.Desc
	version           *prometheus.Desc
	topicsLive        *prometheus.Desc
	topicsTotal       *prometheus.Desc
	sessionsLive      *prometheus.Desc
	sessionsTotal     *prometheus.Desc
	subscriptionsLive *prometheus.Desc
	broadcastsTotal   *prometheus.Desc
	deliveriesTotal   *prometheus.Desc
	droppedDeliveries *prometheus.Desc
	mutationsTotal    *prometheus.Desc
	rejectedMutations *prometheus.Desc
	ephemeralTotal    *prometheus.Desc
	storeFailures     *prometheus.Desc
	malloced          *prometheus.Desc
}

// NewPromExporter returns an initialized Prometheus exporter.
func NewPromExporter(server, namespace string, timeout time.Duration, scraper *Scraper) *PromExporter {
	return &PromExporter{
		address:   server,
		timeout:   timeout,
		namespace: namespace,
		scraper:   scraper,
		up: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "up"),
			"If livelog instance is reachable.",
			nil,
			nil,
		),
		version: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "version"),
			"The version of this livelog instance.",
			nil,
			nil,
		),
		topicsLive: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "topics_live_count"),
			"Number of currently active topics.",
			nil,
			nil,
		),
		topicsTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "topics_total"),
			"Total number of topics used during instance lifetime.",
			nil,
			nil,
		),
		sessionsLive: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "sessions_live_count"),
			"Number of currently active sessions.",
			nil,
			nil,
		),
		sessionsTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "sessions_total"),
			"Total number of sessions since instance start.",
			nil,
			nil,
		),
		subscriptionsLive: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "subscriptions_live_count"),
			"Number of currently active topic subscriptions.",
			nil,
			nil,
		),
		broadcastsTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "broadcasts_total"),
			"Total number of frames fanned out by topic dispatchers.",
			nil,
			nil,
		),
		deliveriesTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "deliveries_total"),
			"Total number of frames queued to individual sessions.",
			nil,
			nil,
		),
		droppedDeliveries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "dropped_deliveries_total"),
			"Total number of frames dropped on stuck sessions.",
			nil,
			nil,
		),
		mutationsTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "mutations_total"),
			"Total number of mutation requests received.",
			nil,
			nil,
		),
		rejectedMutations: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "rejected_mutations_total"),
			"Total number of mutation requests rejected.",
			nil,
			nil,
		),
		ephemeralTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "ephemeral_notifications_total"),
			"Total number of ephemeral typing notifications routed.",
			nil,
			nil,
		),
		storeFailures: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "store_failures_total"),
			"Total number of persistent storage failures.",
			nil,
			nil,
		),
		malloced: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "malloced_bytes"),
			"Number of bytes of memory allocated and in use.",
			nil,
			nil,
		),
	}
}

// Describe describes all the metrics exported by the livelog exporter. It
// implements prometheus.Collector.
func (e *PromExporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- e.up
	ch <- e.version
	ch <- e.topicsLive
	ch <- e.topicsTotal
	ch <- e.sessionsLive
	ch <- e.sessionsTotal
	ch <- e.subscriptionsLive
	ch <- e.broadcastsTotal
	ch <- e.deliveriesTotal
	ch <- e.droppedDeliveries
	ch <- e.mutationsTotal
	ch <- e.rejectedMutations
	ch <- e.ephemeralTotal
	ch <- e.storeFailures
	ch <- e.malloced
}

// Collect fetches statistics from the configured livelog instance, and
// delivers them as Prometheus metrics. It implements prometheus.Collector.
func (e *PromExporter) Collect(ch chan<- prometheus.Metric) {
	up := float64(1)
	if stats, err := e.scraper.Scrape(); err != nil {
		log.Println("Failed to fetch or parse response", err)
		up = 0
	} else {
		if err := e.parseStats(ch, stats); err != nil {
			up = 0
		}
	}

	ch <- prometheus.MustNewConstMetric(e.up, prometheus.GaugeValue, up)
}

func (e *PromExporter) parseStats(ch chan<- prometheus.Metric, stats map[string]interface{}) error {
	err := firstError(
		e.parseAndUpdate(ch, e.version, prometheus.GaugeValue, stats, "Version"),
		e.parseAndUpdate(ch, e.topicsLive, prometheus.GaugeValue, stats, "LiveTopics"),
		e.parseAndUpdate(ch, e.topicsTotal, prometheus.CounterValue, stats, "TotalTopics"),
		e.parseAndUpdate(ch, e.sessionsLive, prometheus.GaugeValue, stats, "LiveSessions"),
		e.parseAndUpdate(ch, e.sessionsTotal, prometheus.CounterValue, stats, "TotalSessions"),
		e.parseAndUpdate(ch, e.subscriptionsLive, prometheus.GaugeValue, stats, "LiveSubscriptions"),
		e.parseAndUpdate(ch, e.broadcastsTotal, prometheus.CounterValue, stats, "BroadcastsTotal"),
		e.parseAndUpdate(ch, e.deliveriesTotal, prometheus.CounterValue, stats, "DeliveriesTotal"),
		e.parseAndUpdate(ch, e.droppedDeliveries, prometheus.CounterValue, stats, "DroppedDeliveries"),
		e.parseAndUpdate(ch, e.mutationsTotal, prometheus.CounterValue, stats, "MutationsTotal"),
		e.parseAndUpdate(ch, e.rejectedMutations, prometheus.CounterValue, stats, "RejectedMutations"),
		e.parseAndUpdate(ch, e.ephemeralTotal, prometheus.CounterValue, stats, "EphemeralTotal"),
		e.parseAndUpdate(ch, e.storeFailures, prometheus.CounterValue, stats, "StoreFailures"),
		e.parseAndUpdate(ch, e.malloced, prometheus.GaugeValue, stats, "memstats.Alloc"),
	)

	return err
}

func (e *PromExporter) parseAndUpdate(ch chan<- prometheus.Metric, desc *prometheus.Desc, valueType prometheus.ValueType,
	stats map[string]interface{}, key string) error {
	if v, err := parseMetric(stats, key); err == nil {
		ch <- prometheus.MustNewConstMetric(desc, valueType, v)
		return nil
	} else {
		return err
	}
}

func firstError(errs ...error) error {
	for _, v := range errs {
		if v != nil {
			return v
		}
	}
	return nil
}
