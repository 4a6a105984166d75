package observe_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/lguimbarda/pushflow/flow"
	"github.com/lguimbarda/pushflow/flow/observe"
)

func decodeRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var rec map[string]any
		if err := dec.Decode(&rec); err != nil {
			t.Fatalf("decode log record: %v", err)
		}
		records = append(records, rec)
	}
	return records
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := observe.Log(flow.Range(0, 5), logger, "numbers")
	if got := s.ToArray(); len(got) != 5 {
		t.Fatalf("expected 5 values, got %d", len(got))
	}

	records := decodeRecords(t, &buf)
	if len(records) != 2 {
		t.Fatalf("expected start and finish records, got %d", len(records))
	}
	finish := records[1]
	if finish["msg"] != "stream finished" {
		t.Errorf("expected finish message, got %v", finish["msg"])
	}
	if finish["stream"] != "numbers" {
		t.Errorf("expected stream=numbers, got %v", finish["stream"])
	}
	if finish["items"] != float64(5) {
		t.Errorf("expected items=5, got %v", finish["items"])
	}
	if finish["completed"] != true {
		t.Errorf("expected completed=true, got %v", finish["completed"])
	}
}

func TestLog_EarlyStop(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := observe.Logged[int](logger, "numbers").Apply(flow.Range(0, 100))
	if v, ok := flow.First(s); !ok || v != 0 {
		t.Fatalf("expected (0, true), got (%d, %v)", v, ok)
	}

	records := decodeRecords(t, &buf)
	if len(records) != 3 {
		t.Fatalf("expected start, stop and finish records, got %d", len(records))
	}
	if records[1]["msg"] != "stream stopped by consumer" {
		t.Errorf("expected stop record, got %v", records[1]["msg"])
	}
	if records[2]["items"] != float64(1) || records[2]["completed"] != false {
		t.Errorf("expected items=1 completed=false, got %v", records[2])
	}
}

func TestLog_InfoLevelHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	observe.Log(flow.Range(0, 3), logger, "quiet").ToArray()

	if records := decodeRecords(t, &buf); len(records) != 1 {
		t.Errorf("expected only the finish record, got %d", len(records))
	}
}
