// Package report writes the pipe-delimited event report file.
package report

import (
	"fmt"
	"os"
	"strings"
)

// Write truncates and rewrites the report at path, one event per line. An
// empty line set still produces the (empty) file so downstream consumers
// always see a fresh report.
func Write(path string, lines []string) error {
	data := []byte(strings.Join(lines, "\n"))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
