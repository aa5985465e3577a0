// Package vector turns the vector field of a record into typed embeddings.
//
// Encode accepts a dense list, a list of lists (multi-dense), or a struct of
// named vectors where struct members with "indices" and "values" are sparse.
// The shape of a list is decided by its first item. Every component is
// narrowed to float32.
package vector
