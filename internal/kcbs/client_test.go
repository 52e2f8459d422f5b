package kcbs

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitwatch/kcbs-events/internal/config"
)

func TestDateWindow(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantBegin string
		wantEnd   string
	}{
		{
			name:      "plain year",
			now:       time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
			wantBegin: "01/15/2026",
			wantEnd:   "01/15/2027",
		},
		{
			name:      "window spanning a leap day",
			now:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			wantBegin: "01/15/2024",
			wantEnd:   "01/14/2025",
		},
		{
			name:      "single-digit month and day are zero padded",
			now:       time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			wantBegin: "03/04/2026",
			wantEnd:   "03/04/2027",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			begin, end := DateWindow(tt.now)
			assert.Equal(t, tt.wantBegin, begin)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestSearchParams(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	params := SearchParams("78701", "175", now)

	want := map[string]string{
		"evr_map_type":    "0",
		"org_id":          "KCBA",
		"evr_begin":       "06/01/2026",
		"evr_end":         "06/01/2027",
		"evr_address":     "78701",
		"evr_radius":      "175",
		"evr_type":        "",
		"evr_openings":    "",
		"evr_region":      "",
		"evr_region_type": "",
		"evr_judge":       "",
		"evr_keyword":     "",
		"evr_rep_name":    "",
	}
	assert.Equal(t, want, params)
}

func TestUnwrapJSONP(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "wrapped payload",
			body: `banner_callback_123({"features":[]})`,
			want: `{"features":[]}`,
		},
		{
			name: "bare JSON passes through",
			body: `{"features":[]}`,
			want: `{"features":[]}`,
		},
		{
			name: "prefix without object boundary is a no-op",
			body: `banner_callback_123(null)`,
			want: `banner_callback_123(null)`,
		},
		{
			name: "non-callback text passes through",
			body: `<html>maintenance page</html>`,
			want: `<html>maintenance page</html>`,
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unwrapJSONP(tt.body))
		})
	}
}

func testClient(cfg *config.Config, url string) *Client {
	c := New(cfg)
	c.searchURL = url
	return c
}

func TestSearchByRadiusSendsQueryShape(t *testing.T) {
	var gotQuery map[string][]string
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"features":[]}`)
	}))
	defer ts.Close()

	c := testClient(&config.Config{InsecureTLS: true}, ts.URL)
	payload, err := c.SearchByRadius("23228", "175")
	require.NoError(t, err)
	require.NotNil(t, payload)

	assert.Equal(t, "0", gotQuery["evr_map_type"][0])
	assert.Equal(t, "KCBA", gotQuery["org_id"][0])
	assert.Equal(t, "23228", gotQuery["evr_address"][0])
	assert.Equal(t, "175", gotQuery["evr_radius"][0])
	assert.Equal(t, UserAgent, gotUA)

	// The empty filter fields must still be present in the query string.
	for _, key := range []string{"evr_type", "evr_openings", "evr_region", "evr_region_type", "evr_judge", "evr_keyword", "evr_rep_name"} {
		require.Contains(t, gotQuery, key)
		assert.Equal(t, "", gotQuery[key][0])
	}
}

func TestSearchByRadiusBasicAuth(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.Config
		wantAuth bool
	}{
		{"both credentials", &config.Config{Username: "pitmaster", Password: "secret"}, true},
		{"username only", &config.Config{Username: "pitmaster"}, false},
		{"no credentials", &config.Config{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				fmt.Fprint(w, `{}`)
			}))
			defer ts.Close()

			c := testClient(tt.cfg, ts.URL)
			_, err := c.SearchByRadius("23228", "175")
			require.NoError(t, err)

			if tt.wantAuth {
				assert.True(t, strings.HasPrefix(gotAuth, "Basic "), "Authorization = %q, want Basic", gotAuth)
			} else {
				assert.Empty(t, gotAuth)
			}
		})
	}
}

func TestSearchByRadiusUnwrapsJSONP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `banner_callback_77({"features":[{"id":1}]})`)
	}))
	defer ts.Close()

	c := testClient(&config.Config{}, ts.URL)
	payload, err := c.SearchByRadius("23228", "175")
	require.NoError(t, err)

	m, ok := payload.(map[string]interface{})
	require.True(t, ok, "payload should decode to a map")
	assert.Contains(t, m, "features")
}

func TestSearchByRadiusNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := testClient(&config.Config{}, ts.URL)
	_, err := c.SearchByRadius("23228", "175")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSearchByRadiusMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json`)
	}))
	defer ts.Close()

	c := testClient(&config.Config{}, ts.URL)
	_, err := c.SearchByRadius("23228", "175")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing event JSON")
	assert.Contains(t, err.Error(), "<html>not json")
}

func TestPreviewBoundsLongBodies(t *testing.T) {
	long := strings.Repeat("x", 2000)
	got := preview(long)
	assert.Len(t, got, previewLimit)

	short := "short body"
	assert.Equal(t, short, preview(short))
}
