// Package schema_registry decodes message values written in the Confluent
// wire format.
//
// Producers using a Confluent JSON Schema serializer prefix every value with
// a zero magic byte and a four byte schema ID. The Decoder removes that
// header so the remaining JSON can be normalized like any plain message.
// Values without the header pass through untouched, which lets framed and
// plain producers share a topic.
//
// When a registry URL is configured, the Decoder also looks up each schema ID
// (cached per ID) and rejects frames whose schema is Avro or Protobuf.
//
// Basic Usage:
//
//	client, err := schema_registry.NewClient(schema_registry.Config{
//	    URL:     "http://localhost:8081",
//	    Timeout: 5 * time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//	decoder := schema_registry.NewDecoder(client)
//
//	payload, err := decoder.Decode(ctx, msg.Value)
//	switch {
//	case schema_registry.IsLookupError(err):
//	    // the registry is unreachable; retry the batch later
//	case err != nil:
//	    // the message itself cannot be decoded
//	}
package schema_registry
