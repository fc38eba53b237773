package constants

// Static route constants
const (
	UploadsRoute = "/uploads"
	APIRoute     = "/api"
	HealthRoute  = "/healthz"
	MetricsRoute = "/metrics"
	DocsBasePath = "/docs/api/"
)
