package kcbs

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pitwatch/kcbs-events/internal/config"
	"github.com/pitwatch/kcbs-events/internal/logger"
)

const (
	// SearchURL is the member-site event search endpoint.
	SearchURL = "https://mms.kcbs.us/members/evr_search_ol_json.php"

	// Host is the member-site origin, used to absolutize relative links.
	Host = "https://mms.kcbs.us"

	// DetailURLTemplate builds a registration-page link from an event id.
	DetailURLTemplate = Host + "/members/evr/reg_event_kcba.php?orgcode=KCBA&evid=%s"

	// OrgID identifies the KCBA organization to the search endpoint.
	OrgID = "KCBA"

	// UserAgent mimics a desktop browser; the endpoint rejects bare clients.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// mapTypeRadius selects the search-by-radius mode of the endpoint.
	mapTypeRadius = "0"

	// callbackPrefix marks a JSONP-wrapped response body.
	callbackPrefix = "banner_callback_"

	// searchHorizonDays is the fixed look-ahead window for the date range.
	searchHorizonDays = 365

	dateLayout   = "01/02/2006"
	previewLimit = 500
)

// Client queries the KCBS event-search endpoint.
type Client struct {
	client    *resty.Client
	searchURL string
}

// New creates a Client configured from cfg. Certificate verification follows
// cfg.InsecureTLS, and member credentials are attached as basic auth only
// when both are present. No timeout or retries are configured; a run is a
// single blocking GET.
func New(cfg *config.Config) *Client {
	rc := resty.New().
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: cfg.InsecureTLS}).
		SetHeader("User-Agent", UserAgent)

	if cfg.HasCredentials() {
		rc.SetBasicAuth(cfg.Username, cfg.Password)
	}

	return &Client{
		client:    rc,
		searchURL: SearchURL,
	}
}

// DateWindow returns the search window: now and now plus 365 days, both
// formatted MM/DD/YYYY as the endpoint expects.
func DateWindow(now time.Time) (begin, end string) {
	return now.Format(dateLayout), now.AddDate(0, 0, searchHorizonDays).Format(dateLayout)
}

// SearchParams builds the full radius-search parameter set. The empty filter
// fields are part of the endpoint's expected query shape and must be sent
// even when unused.
func SearchParams(zipcode, radius string, now time.Time) map[string]string {
	begin, end := DateWindow(now)
	return map[string]string{
		"evr_map_type":    mapTypeRadius,
		"org_id":          OrgID,
		"evr_begin":       begin,
		"evr_end":         end,
		"evr_address":     zipcode,
		"evr_radius":      radius,
		"evr_type":        "",
		"evr_openings":    "",
		"evr_region":      "",
		"evr_region_type": "",
		"evr_judge":       "",
		"evr_keyword":     "",
		"evr_rep_name":    "",
	}
}

// SearchByRadius fetches events within radius miles of zipcode over the next
// year and returns the decoded JSON payload. The payload shape varies across
// endpoint versions, so it is returned loosely typed for the extractor to
// dispatch on.
func (c *Client) SearchByRadius(zipcode, radius string) (interface{}, error) {
	params := SearchParams(zipcode, radius, time.Now())

	logger.Debug("requesting event search", logger.Fields{
		"url":     c.searchURL,
		"zipcode": zipcode,
		"radius":  radius,
	})

	resp, err := c.client.R().SetQueryParams(params).Get(c.searchURL)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("event search returned status %d", resp.StatusCode())
	}

	body := unwrapJSONP(resp.String())

	var payload interface{}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("parsing event JSON: %w (response: %s)", err, preview(body))
	}

	return payload, nil
}

// unwrapJSONP strips the banner callback wrapper, leaving the bare JSON
// object. Bodies without the callback prefix, or without an object boundary,
// pass through untouched.
func unwrapJSONP(body string) string {
	if !strings.HasPrefix(body, callbackPrefix) {
		return body
	}

	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start == -1 || end < start {
		return body
	}

	return body[start : end+1]
}

// preview bounds response text quoted in error messages.
func preview(s string) string {
	if len(s) > previewLimit {
		return s[:previewLimit]
	}
	return s
}
