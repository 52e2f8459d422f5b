package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pitwatch/kcbs-events/internal/kcbs"
)

// fieldPattern is one attempt in an ordered extraction table. The first
// pattern that matches wins; no match yields an empty field.
type fieldPattern struct {
	re     *regexp.Regexp
	group  int
	suffix string
}

var (
	// Distance appears as "DIST: 106 mi" inside the fragment.
	distancePatterns = []fieldPattern{
		{re: regexp.MustCompile(`DIST:\s*(\d+)\s*mi`), group: 1, suffix: " mi"},
	}

	// Location sits between the last link close-tag and the country marker,
	// e.g. "</a>Henrico, VA 23228<br />UNITED STATES". The second pattern is
	// a looser "City, ST 12345" heuristic for fragments without the marker.
	locationPatterns = []fieldPattern{
		{re: regexp.MustCompile(`</a>([^<]+)<br[^>]*>UNITED STATES`), group: 1},
		{re: regexp.MustCompile(`</a>([A-Za-z\s,]+[A-Z]{2}\s*\d*)<br`), group: 1},
	}

	// The rep label shows up as "Rep:" or "Reps:".
	repPatterns = []fieldPattern{
		{re: regexp.MustCompile(`Reps?:\s*([^<]+)`), group: 1},
	}

	// viewEventPatterns recover an event id from inline script markup when
	// the record carries no id field: double-quoted onclick, single-quoted
	// onclick, then a bare call.
	viewEventPatterns = []*regexp.Regexp{
		regexp.MustCompile(`onclick="viewEvent\((\d+)\)"`),
		regexp.MustCompile(`onclick='viewEvent\((\d+)\)'`),
		regexp.MustCompile(`viewEvent\((\d+)\)`),
	}

	evidHrefPattern = regexp.MustCompile(`evid=(\d+)`)
)

// firstMatch tries each pattern in order against the raw fragment text and
// returns the trimmed first capture of the first match.
func firstMatch(patterns []fieldPattern, html string) string {
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(html); m != nil {
			return strings.TrimSpace(m[p.group]) + p.suffix
		}
	}
	return ""
}

// detailURL builds the registration link for a record. An explicit event id
// (record id, then properties id/evid/event_id) always wins; otherwise the
// id is recovered from viewEvent script markup, and as a last resort a
// registration href is taken directly and absolutized.
func detailURL(rec, props map[string]interface{}, html string, doc *goquery.Document) string {
	if id := eventID(rec, props); id != "" {
		return fmt.Sprintf(kcbs.DetailURLTemplate, id)
	}

	for _, re := range viewEventPatterns {
		if m := re.FindStringSubmatch(html); m != nil {
			return fmt.Sprintf(kcbs.DetailURLTemplate, m[1])
		}
	}

	return hrefDetailURL(doc)
}

// eventID returns the first usable id-like field on the record.
func eventID(rec, props map[string]interface{}) string {
	for _, candidate := range []interface{}{rec["id"], props["id"], props["evid"], props["event_id"]} {
		if s := idString(candidate); s != "" {
			return s
		}
	}
	return ""
}

// idString renders string and numeric ids uniformly; JSON numbers decode as
// float64 and must not pick up a decimal point.
func idString(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", id)
	}
}

// hrefDetailURL finds the first registration link in the fragment whose
// target carries an evid parameter.
func hrefDetailURL(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if !strings.Contains(href, "evr") || !evidHrefPattern.MatchString(href) {
			return true
		}
		found = absoluteURL(href)
		return false
	})
	return found
}

// absoluteURL resolves root-relative registration links against the member
// site host.
func absoluteURL(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return kcbs.Host + href
	}
	return kcbs.Host + "/" + href
}
