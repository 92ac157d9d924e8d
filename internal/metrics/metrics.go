// Package metrics collects Prometheus metrics for bookmark operations and the
// catalog lifecycle.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface used by services and schedulers.
type Recorder interface {
	RecordToggle(bookmarked bool)
	RecordToggleRejected(reason string)
	RecordGroupComputation()
	RecordGroupCacheHit()
	RecordTitleUpdate(deleted bool)
	SetCatalogItems(count int)
	RecordCatalogReload(ok bool)
	RecordItemsCollected(count int)
}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	toggles        *prometheus.CounterVec
	toggleRejected *prometheus.CounterVec
	groupComputed  prometheus.Counter
	groupCacheHits prometheus.Counter
	titleUpdates   *prometheus.CounterVec
	catalogItems   prometheus.Gauge
	catalogReloads *prometheus.CounterVec
	itemsCollected prometheus.Counter
}

// NewCollector creates a Collector and registers it on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adminmarks_toggles_total",
			Help: "Bookmark toggles by resulting state",
		}, []string{"result"}),
		toggleRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adminmarks_toggle_rejected_total",
			Help: "Toggle requests rejected before mutation",
		}, []string{"reason"}),
		groupComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adminmarks_group_computations_total",
			Help: "Bookmark groupings computed from the store",
		}),
		groupCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adminmarks_group_cache_hits_total",
			Help: "Bookmark groupings served from the request cache",
		}),
		titleUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adminmarks_title_updates_total",
			Help: "Custom bookmark title writes by operation",
		}, []string{"op"}),
		catalogItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adminmarks_catalog_items",
			Help: "Content items currently indexed",
		}),
		catalogReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adminmarks_catalog_reload_total",
			Help: "Catalog reloads by status",
		}, []string{"status"}),
		itemsCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adminmarks_items_collected_total",
			Help: "Disabled content items removed by the garbage collector",
		}),
	}

	reg.MustRegister(
		c.toggles,
		c.toggleRejected,
		c.groupComputed,
		c.groupCacheHits,
		c.titleUpdates,
		c.catalogItems,
		c.catalogReloads,
		c.itemsCollected,
	)

	return c
}

// RecordToggle counts a completed toggle.
func (c *Collector) RecordToggle(bookmarked bool) {
	result := "removed"
	if bookmarked {
		result = "added"
	}
	c.toggles.WithLabelValues(result).Inc()
}

// RecordToggleRejected counts a toggle refused before mutation.
func (c *Collector) RecordToggleRejected(reason string) {
	c.toggleRejected.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordGroupComputation() { c.groupComputed.Inc() }
func (c *Collector) RecordGroupCacheHit()    { c.groupCacheHits.Inc() }

// RecordTitleUpdate counts a custom title write.
func (c *Collector) RecordTitleUpdate(deleted bool) {
	op := "set"
	if deleted {
		op = "delete"
	}
	c.titleUpdates.WithLabelValues(op).Inc()
}

func (c *Collector) SetCatalogItems(count int) { c.catalogItems.Set(float64(count)) }

// RecordCatalogReload counts a catalog reload attempt.
func (c *Collector) RecordCatalogReload(ok bool) {
	status := "error"
	if ok {
		status = "ok"
	}
	c.catalogReloads.WithLabelValues(status).Inc()
}

func (c *Collector) RecordItemsCollected(count int) { c.itemsCollected.Add(float64(count)) }

// Handler returns the Prometheus scrape handler.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordToggle(bool)           {}
func (Nop) RecordToggleRejected(string) {}
func (Nop) RecordGroupComputation()     {}
func (Nop) RecordGroupCacheHit()        {}
func (Nop) RecordTitleUpdate(bool)      {}
func (Nop) SetCatalogItems(int)         {}
func (Nop) RecordCatalogReload(bool)    {}
func (Nop) RecordItemsCollected(int)    {}
