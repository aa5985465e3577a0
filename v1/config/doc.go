// Package config loads the sink's configuration from a YAML file and the
// environment.
//
// Every key of the YAML file can be overridden by an environment variable
// named after its path, upper-cased, prefixed with QDRANT_SINK_ and with
// nested keys separated by a double underscore:
//
//	kafka:
//	  group_id: "qdrant-sink"     # QDRANT_SINK_KAFKA__GROUP_ID
//	  brokers: ["a:9092"]         # QDRANT_SINK_KAFKA__BROKERS=a:9092,b:9092
//	qdrant:
//	  api_key: "..."              # QDRANT_SINK_QDRANT__API_KEY
//	sink:
//	  collection_name: "docs"     # QDRANT_SINK_SINK__COLLECTION_NAME
//
// Keys that are set nowhere keep the values from Default. The loaded
// configuration is validated before it is returned.
package config
