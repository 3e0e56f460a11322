package domain

// Field names of the fixed index schema.
const (
	FieldID   = "id"
	FieldText = "text"
)

// KeyPrefix returns the key prefix under which documents of the index are stored.
func KeyPrefix(index string) string {
	return index + ":"
}
