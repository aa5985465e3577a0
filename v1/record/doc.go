// Package record extracts points from normalized records.
//
// A record is an object with the fields collection_name, id, vector and
// payload. The Extractor reads each field on demand and reports precise
// errors: ErrMissingField, ErrInvalidID, ErrInvalidPayload, or a wrapped
// vector error for the vector field.
//
// Usage:
//
//	tree, err := value.Normalize(raw)
//	if err != nil {
//	    return err
//	}
//	collection, point, err := record.Extract(tree, record.WithCollectionOverride(cfg.CollectionName))
package record
