package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordActions(t *testing.T) {
	m := NewMetrics("test")
	m.RecordAction("pagebuilder.editor.add_block", ResultChanged, time.Millisecond)
	m.RecordAction("pagebuilder.editor.add_block", ResultChanged, time.Millisecond)
	m.RecordAction("pagebuilder.editor.remove_page", ResultNoop, time.Millisecond)

	if got := testutil.ToFloat64(m.ActionsTotal.WithLabelValues("pagebuilder.editor.add_block", ResultChanged)); got != 2 {
		t.Fatalf("expected 2 add_block actions, got %v", got)
	}
	if got := testutil.ToFloat64(m.ActionsTotal.WithLabelValues("pagebuilder.editor.remove_page", ResultNoop)); got != 1 {
		t.Fatalf("expected 1 noop, got %v", got)
	}
}

func TestMetricsRecordSavesAndGauges(t *testing.T) {
	m := NewMetrics("")
	m.RecordSave(nil, 10*time.Millisecond)
	m.RecordSave(errors.New("boom"), 0)
	m.RecordLoadFailure("malformed")
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.TimersChanged(3)
	m.TimersChanged(-1)

	if got := testutil.ToFloat64(m.SavesTotal.WithLabelValues("error")); got != 1 {
		t.Fatalf("expected 1 failed save, got %v", got)
	}
	if got := testutil.ToFloat64(m.ActiveSessions); got != 1 {
		t.Fatalf("expected 1 active session, got %v", got)
	}
	if got := testutil.ToFloat64(m.ActiveTimers); got != 2 {
		t.Fatalf("expected 2 active timers, got %v", got)
	}

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather returned error: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metric families")
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordAction("x", ResultRejected, 0)
	m.RecordSave(nil, 0)
	m.SessionOpened()
	m.TimersChanged(1)
	if m.Registry() != nil {
		t.Fatal("expected nil registry")
	}
}
