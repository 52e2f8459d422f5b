package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pitwatch/kcbs-events/internal/extract"
)

func sampleResult() *Result {
	return &Result{
		SearchedAt: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
		Zipcode:    "78701",
		Radius:     "175",
		DateBegin:  "06/01/2026",
		DateEnd:    "06/01/2027",
		OutputFile: "FinalCSV.txt",
		EventCount: 1,
		Events: []*extract.ParsedEvent{
			{
				Name:      "Smokeout",
				Distance:  "10 mi",
				Dates:     "6/1/2026 - 6/2/2026",
				Location:  "Austin, TX 78701",
				RepName:   "JANE DOE",
				DetailURL: "https://mms.kcbs.us/members/evr/reg_event_kcba.php?orgcode=KCBA&evid=7",
			},
		},
	}
}

func TestWriteResultText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResult(&buf, sampleResult(), FormatText); err != nil {
		t.Fatalf("WriteResult failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Smokeout | 10 mi | 6/1/2026 - 6/2/2026") {
		t.Errorf("text output missing event summary: %q", out)
	}
	if !strings.Contains(out, "1 events written to FinalCSV.txt") {
		t.Errorf("text output missing footer: %q", out)
	}
}

func TestWriteResultTextEmpty(t *testing.T) {
	result := sampleResult()
	result.EventCount = 0
	result.Events = nil

	var buf bytes.Buffer
	if err := WriteResult(&buf, result, FormatText); err != nil {
		t.Fatalf("WriteResult failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No events found. Creating empty FinalCSV.txt") {
		t.Errorf("text output = %q, want empty-report notice", buf.String())
	}
}

func TestWriteResultJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResult(&buf, sampleResult(), FormatJSON); err != nil {
		t.Fatalf("WriteResult failed: %v", err)
	}

	var decoded Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSON output is not valid: %v", err)
	}
	if decoded.EventCount != 1 || len(decoded.Events) != 1 {
		t.Errorf("decoded = %+v, want one event", decoded)
	}
	if decoded.Events[0].Name != "Smokeout" {
		t.Errorf("event name = %q, want Smokeout", decoded.Events[0].Name)
	}
}

func TestWriteResultUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResult(&buf, sampleResult(), OutputFormat("yaml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
