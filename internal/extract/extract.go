package extract

import (
	"fmt"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pitwatch/kcbs-events/internal/logger"
)

// listKeys are the envelope keys checked first, in priority order.
var listKeys = []string{"features", "events", "data"}

// Records locates the event list within a decoded payload. The dispatch
// order is fixed: a map's "features", "events", or "data" key, then the
// first slice-valued key in sorted key order, then the payload itself when
// it is already a slice. Anything else yields no records. Sorted key order
// stands in for the envelope's original key order, which JSON decoding into
// a Go map does not preserve; it keeps the fallback deterministic.
func Records(payload interface{}) []interface{} {
	switch v := payload.(type) {
	case map[string]interface{}:
		for _, key := range listKeys {
			if list, ok := v[key].([]interface{}); ok {
				return list
			}
		}

		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if list, ok := v[k].([]interface{}); ok {
				return list
			}
		}
	case []interface{}:
		return v
	}

	return nil
}

// Events converts raw records into parsed events, preserving input order.
// Records without a derivable name are dropped; a failure while handling one
// record is logged and skips only that record.
func Events(records []interface{}) []*ParsedEvent {
	events := make([]*ParsedEvent, 0, len(records))
	for i, rec := range records {
		evt := extractOne(i, rec)
		if evt == nil || evt.Name == "" {
			continue
		}
		events = append(events, evt)
	}
	return events
}

// extractOne pulls the six fields out of a single record. Records are
// loosely typed, so a deferred recover contains any unexpected shape to
// this record alone.
func extractOne(index int, rec interface{}) (evt *ParsedEvent) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("skipping malformed event record", logger.Fields{
				"index": index,
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			}, nil)
			evt = nil
		}
	}()

	m, ok := rec.(map[string]interface{})
	if !ok {
		return nil
	}
	props, ok := m["properties"].(map[string]interface{})
	if !ok {
		return nil
	}

	html := stringField(props, "html_content")
	doc := parseFragment(html)

	return &ParsedEvent{
		Name:      eventName(doc, props),
		Distance:  firstMatch(distancePatterns, html),
		Dates:     dateRange(doc),
		Location:  firstMatch(locationPatterns, html),
		RepName:   firstMatch(repPatterns, html),
		DetailURL: detailURL(m, props, html, doc),
	}
}

// parseFragment parses an html_content fragment; nil on parse failure, which
// downstream extraction treats as "no markup to query".
func parseFragment(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return doc
}

// eventName prefers the first <b> span of the fragment, falling back to the
// record's own name field.
func eventName(doc *goquery.Document, props map[string]interface{}) string {
	if doc != nil {
		if name := strings.TrimSpace(doc.Find("b").First().Text()); name != "" {
			return name
		}
	}
	return strings.TrimSpace(stringField(props, "name"))
}

// dateRange is the text of the first <i> span, e.g. "6/1/2026 - 6/2/2026".
func dateRange(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("i").First().Text())
}

func stringField(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
