package metrics

// Metric names
const (
	MetricNameLinesProcessed   = "log_lines_processed_total"
	MetricNameEventsDispatched = "log_events_dispatched_total"
	MetricNameReportsBuilt     = "reports_built_total"

	MetricNameHTTPRequestsTotal   = "http_requests_total"
	MetricNameHTTPRequestDuration = "http_request_duration_seconds"
)

// Metric help text
const (
	HelpTextLinesProcessed   = "Total number of log lines read from log files"
	HelpTextEventsDispatched = "Total number of recognized log events by type"
	HelpTextReportsBuilt     = "Total number of reports rendered"

	HelpTextHTTPRequestsTotal   = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration = "HTTP request latency in seconds"
)

// Label names
const (
	LabelType   = "type"
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
)
