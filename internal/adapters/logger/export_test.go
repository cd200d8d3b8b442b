// export_test.go exports private functions for white-box testing.
package logger

var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// ErrorEntry aliases the unexported chain entry for assertions.
type ErrorEntry = errorEntry

func NewErrorEntry(message string, metadata map[string]any) errorEntry {
	return errorEntry{message: message, metadata: metadata}
}

func (e errorEntry) MessageText() string { return e.message }

func (e errorEntry) MetadataMap() map[string]any { return e.metadata }
