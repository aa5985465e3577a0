package tracer

// Config defines the tracer settings.
type Config struct {
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `yaml:"service_name"`

	// AppEnv is recorded as the deployment.environment resource attribute.
	AppEnv string `yaml:"app_env"`

	// EnableExport sends spans to an OTLP/HTTP collector. The exporter is
	// configured through the standard OTEL_EXPORTER_OTLP_* environment
	// variables unless Endpoint is set.
	EnableExport bool `yaml:"enable_export"`

	// Endpoint is the collector host and port, e.g. "otel-collector:4318".
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure"`

	// SampleRatio is the share of new traces that are recorded. Values
	// outside (0, 1) record every trace. Traces continued from message
	// headers follow the sampling decision of their parent.
	SampleRatio float64 `yaml:"sample_ratio"`
}
