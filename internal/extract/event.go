package extract

import "strings"

// ParsedEvent holds the six report fields extracted from one event record.
// Name is the only required field; the others default to empty strings.
type ParsedEvent struct {
	Name      string `json:"name"`
	Distance  string `json:"distance,omitempty"`
	Dates     string `json:"dates,omitempty"`
	Location  string `json:"location,omitempty"`
	RepName   string `json:"rep_name,omitempty"`
	DetailURL string `json:"detail_url,omitempty"`
}

// Line renders the pipe-delimited report row. Field values are assumed not
// to contain a literal pipe and are not escaped.
func (e *ParsedEvent) Line() string {
	return strings.Join([]string{e.Name, e.Distance, e.Dates, e.Location, e.RepName, e.DetailURL}, "|")
}
