package schema_registry

// Logger is the logging interface used by the module.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
}
