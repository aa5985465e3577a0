package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config defines the logger settings.
type Config struct {
	// Level is one of debug, info, warning or error. Anything else means info.
	Level string `yaml:"level"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name"`
}
