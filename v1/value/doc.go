// Package value provides the canonical value tree used to represent record
// contents independently of how they arrived.
//
// A Value is a closed tagged union over Null, Bool, Integer (int64), Double
// (float64), String, List and Struct. Two independent normalizers build it:
//
//   - FromJSON parses textual JSON. Numbers written without a fraction or
//     exponent become Integer, all other numbers become Double.
//   - FromNative walks in-memory Go structures (maps, slices, scalars and
//     protobuf struct values) and re-encodes anything it does not recognise
//     through JSON.
//
// Both produce equal trees for equivalent input, so downstream code never
// needs to know the original encoding.
//
// Basic Usage:
//
//	v, err := value.Normalize(message.Value)
//	if err != nil {
//	    if value.IsMalformedInputError(err) {
//	        // not JSON
//	    }
//	    return err
//	}
//
//	if id, ok := v.Field("id"); ok {
//	    n, isInt := id.AsInteger()
//	    ...
//	}
//
// Values are immutable and safe for concurrent use.
package value
