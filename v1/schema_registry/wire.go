package schema_registry

import (
	"encoding/binary"
	"fmt"
)

const (
	magicByte  = 0x0
	headerSize = 5
)

// EncodeSchemaID encodes a schema ID in the Confluent wire format
// Format: [magic_byte][schema_id]
// - magic_byte: 0x0 (1 byte)
// - schema_id: 4 bytes (big-endian)
func EncodeSchemaID(schemaID int) []byte {
	buf := make([]byte, headerSize)
	buf[0] = magicByte
	binary.BigEndian.PutUint32(buf[1:], uint32(schemaID))
	return buf
}

// IsFramed reports whether data starts with a wire format header. JSON text
// never starts with a zero byte.
func IsFramed(data []byte) bool {
	return len(data) >= headerSize && data[0] == magicByte
}

// DecodeSchemaID decodes a schema ID from the Confluent wire format
// Returns the schema ID and the remaining payload (after the 5-byte header)
func DecodeSchemaID(data []byte) (int, []byte, error) {
	if len(data) < headerSize {
		return 0, nil, fmt.Errorf("%w: expected at least %d bytes, got %d", ErrInvalidFrame, headerSize, len(data))
	}
	if data[0] != magicByte {
		return 0, nil, fmt.Errorf("%w: expected magic byte 0x0, got 0x%x", ErrInvalidFrame, data[0])
	}

	schemaID := int(binary.BigEndian.Uint32(data[1:headerSize]))
	return schemaID, data[headerSize:], nil
}
