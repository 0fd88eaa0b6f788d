// Package metrics defines Prometheus metrics for the datafeeds pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "datafeeds"

// Feed intake metrics.
var (
	FeedFilesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_files_total",
		Help:      "Total number of feed files processed, by supplier.",
	}, []string{"supplier"})

	FeedFilesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_files_skipped_total",
		Help:      "Total number of feed files skipped for lacking a supplier mapping.",
	})

	FeedRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_rows_total",
		Help:      "Total number of feed rows read, by supplier.",
	}, []string{"supplier"})
)

// Export metrics.
var (
	ExportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "export_duration_seconds",
		Help:      "Duration of full export runs in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	ExportDuplicatesRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "export_duplicates_removed_total",
		Help:      "Total number of duplicate SKU rows removed from exports.",
	})

	ExportTitlesRetitledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "export_titles_retitled_total",
		Help:      "Total number of rows renamed to resolve duplicate titles.",
	})

	ExportWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "export_warnings_total",
		Help:      "Total number of normalization warnings emitted during exports.",
	})
)

// Quote metrics.
var (
	QuoteEntriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_entries_total",
		Help:      "Total number of rows indexed into quoting datasets.",
	})

	QuoteLookupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_lookups_total",
		Help:      "Total number of SKU quote lookups served.",
	})
)
