package testutil

import (
	"testing"
	"time"
)

func TestHooksRecorder(t *testing.T) {
	h := &HooksRecorder{}
	h.ObserveOperation("Scouting.Evaluation.Update", "success", time.Millisecond)
	h.ObserveOperation("Scouting.Evaluation.Update", "conflict", time.Millisecond)
	h.IncConflict("Scouting.Evaluation.Update")
	h.IncRetry("Scouting.Evaluation.Create")

	if got := h.LastStatus("Scouting.Evaluation.Update"); got != "conflict" {
		t.Fatalf("LastStatus: want=conflict got=%s", got)
	}
	if got := h.LastStatus("Scouting.Evaluation.Remove"); got != "" {
		t.Fatalf("LastStatus(unknown): want empty got=%s", got)
	}
	if len(h.Conflicts) != 1 || len(h.Retries) != 1 {
		t.Fatalf("unexpected signals conflicts=%v retries=%v", h.Conflicts, h.Retries)
	}
}
