package schema_registry

import (
	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides the wire format Decoder.
//
// The module expects a schema_registry.Config. When Config.URL is set the
// decoder verifies every schema ID against the registry; otherwise it only
// strips the frame header.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(schema_registry.Config{
//	        Enabled: true,
//	        URL:     "http://localhost:8081",
//	    }),
//	    schema_registry.FXModule,
//	)
var FXModule = fx.Module("schema_registry",
	fx.Provide(
		NewDecoderWithParams,
	),
)

// DecoderParams groups the dependencies needed to create a Decoder.
type DecoderParams struct {
	fx.In

	Config Config
	Logger Logger
}

// NewDecoderWithParams creates a Decoder using dependency injection.
func NewDecoderWithParams(p DecoderParams) (*Decoder, error) {
	if p.Config.URL == "" {
		p.Logger.Info("no schema registry URL configured, schema types are not verified", nil)
		return NewDecoder(nil), nil
	}

	client, err := NewClient(p.Config)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("schema registry lookups enabled", nil, map[string]interface{}{"url": p.Config.URL})
	return NewDecoder(client), nil
}
