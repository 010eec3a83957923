package aggregates

import (
	"errors"
	"fmt"
	"testing"
)

func TestEvaluationAggregateContract(t *testing.T) {
	c := EvaluationAggregateContract
	if !c.RequiresAggregateOwnedTx() {
		t.Fatalf("expected aggregate-owned transactions")
	}
	if c.ReadPolicy != ReadPolicyInvariantScoped {
		t.Fatalf("read policy: want=%s got=%s", ReadPolicyInvariantScoped, c.ReadPolicy)
	}
	if got := c.Domain(); got != "Scouting" {
		t.Fatalf("domain: want=Scouting got=%s", got)
	}
}

func TestErrorHelpers(t *testing.T) {
	err := NotFound("Scouting.Evaluation.Get", "evaluation not found")
	wrapped := fmt.Errorf("load: %w", err)

	if !IsCode(wrapped, CodeNotFound) {
		t.Fatalf("IsCode: expected not_found through wrapping")
	}
	if CodeOf(wrapped) != CodeNotFound {
		t.Fatalf("CodeOf: want=%s got=%s", CodeNotFound, CodeOf(wrapped))
	}
	if MessageOf(wrapped) != "evaluation not found" {
		t.Fatalf("MessageOf: got=%q", MessageOf(wrapped))
	}
	if err.Error() != "Scouting.Evaluation.Get: evaluation not found (not_found)" {
		t.Fatalf("Error: got=%q", err.Error())
	}

	plain := errors.New("boom")
	if CodeOf(plain) != "" || MessageOf(plain) != "boom" {
		t.Fatalf("plain errors carry no code")
	}
	if Wrap(CodeInternal, "op", nil) != nil {
		t.Fatalf("Wrap(nil) must return nil")
	}
	cause := errors.New("db down")
	if !errors.Is(Wrap(CodeRetryable, "op", cause), cause) {
		t.Fatalf("Wrap must keep the cause")
	}
}
