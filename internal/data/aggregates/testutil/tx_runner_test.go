package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
)

func TestInjectedTxRunner(t *testing.T) {
	boom := errors.New("boom")
	commitErr := errors.New("commit failed")

	cases := []struct {
		name       string
		runner     *InjectedTxRunner
		body       error
		wantErr    error
		wantCalled bool
		commits    int
		rollbacks  int
	}{
		{name: "commit", runner: &InjectedTxRunner{}, wantCalled: true, commits: 1},
		{name: "body error", runner: &InjectedTxRunner{}, body: boom, wantErr: boom, wantCalled: true, rollbacks: 1},
		{name: "commit error", runner: &InjectedTxRunner{FailCommit: commitErr}, wantErr: commitErr, wantCalled: true, rollbacks: 1},
		{name: "begin error", runner: &InjectedTxRunner{FailBegin: boom}, wantErr: boom},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			err := tc.runner.InTx(context.Background(), func(_ dbctx.Context) error {
				called = true
				return tc.body
			})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err: want=%v got=%v", tc.wantErr, err)
			}
			if called != tc.wantCalled {
				t.Fatalf("called: want=%v got=%v", tc.wantCalled, called)
			}
			if tc.runner.BeginCalls != 1 || tc.runner.CommitCalls != tc.commits || tc.runner.RollbackCalls != tc.rollbacks {
				t.Fatalf("counters begin=%d commit=%d rollback=%d", tc.runner.BeginCalls, tc.runner.CommitCalls, tc.runner.RollbackCalls)
			}
		})
	}
}
