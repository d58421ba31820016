// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Retagging operations
	OpTreeScan    Op = "scan songs tree"
	OpSimfileRead Op = "read simfile"
	OpTagWrite    Op = "write tags"

	// Similarity export operations
	OpManifestRead    Op = "read song manifest"
	OpSimilarityQuery Op = "retrieve similarities"
	OpReportWrite     Op = "write similarity report"

	// Configuration
	OpConfigLoad Op = "load configuration"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
