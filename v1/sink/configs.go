package sink

// Config defines how records are routed to collections.
type Config struct {
	// CollectionName, when set, sends every record to this collection and makes
	// the collection_name field of the records optional.
	CollectionName string `yaml:"collection_name"`
}
