package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pitwatch/kcbs-events/internal/extract"
)

// OutputFormat specifies the summary format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Result summarizes one search run
type Result struct {
	SearchedAt time.Time              `json:"searched_at"`
	Zipcode    string                 `json:"zipcode"`
	Radius     string                 `json:"radius_miles"`
	DateBegin  string                 `json:"date_begin"`
	DateEnd    string                 `json:"date_end"`
	OutputFile string                 `json:"output_file"`
	EventCount int                    `json:"event_count"`
	Events     []*extract.ParsedEvent `json:"events"`
}

// WriteResult writes the run summary in the specified format
func WriteResult(w io.Writer, result *Result, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the summary as JSON
func writeJSON(w io.Writer, result *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs the summary as human-readable text
func writeText(w io.Writer, result *Result) error {
	if result.EventCount == 0 {
		fmt.Fprintf(w, "No events found. Creating empty %s\n", result.OutputFile)
		return nil
	}

	for _, evt := range result.Events {
		fmt.Fprintf(w, "  - %s | %s | %s | %s | %s | %s\n",
			evt.Name, evt.Distance, evt.Dates, evt.Location, evt.RepName, evt.DetailURL)
	}
	fmt.Fprintf(w, "\n%d events written to %s\n", result.EventCount, result.OutputFile)

	return nil
}
