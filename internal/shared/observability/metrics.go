package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "geiger_parse_seconds",
		Help:    "Time spent parsing a Rust source file.",
		Buckets: prometheus.DefBuckets,
	})

	FilesScannedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geiger_files_scanned_total",
		Help: "Source files scanned, by result (ok, parse_error, read_error).",
	}, []string{"result"})

	PackageScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "geiger_package_scan_seconds",
		Help:    "Time spent scanning all files of one package.",
		Buckets: prometheus.DefBuckets,
	})

	PackagesRenderedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geiger_packages_rendered_total",
		Help: "Distinct packages rendered in a report, by detection status.",
	}, []string{"status"})

	WarningRowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geiger_warning_rows_total",
		Help: "Report rows rendered without metrics.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geiger_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)

const (
	ResultOK         = "ok"
	ResultParseError = "parse_error"
	ResultReadError  = "read_error"
)
