//go:build linux

package cli

import (
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// End-to-end run against a real child. The tracing strategy reaps the child
// itself, so cmd.Wait is deliberately not called.
func TestVerboseRunReportsExitStatus(t *testing.T) {
	cmd := exec.Command("/bin/sh", "-c", "sleep 0.2; exit 5")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start child: %v", err)
	}
	pid := cmd.Process.Pid

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, _, err := execRoot(t, "-v", fmt.Sprintf("%d", pid))
		done <- result{out: out, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			t.Fatalf("execute: %v", res.err)
		}
		wantWaiting := fmt.Sprintf("%d: waiting\n", pid)
		wantExited := fmt.Sprintf("%d: exited with status 5\n", pid)
		if !strings.Contains(res.out, wantWaiting) || !strings.Contains(res.out, wantExited) {
			t.Fatalf("stdout = %q, want %q then %q", res.out, wantWaiting, wantExited)
		}
		if strings.Index(res.out, wantWaiting) > strings.Index(res.out, wantExited) {
			t.Fatalf("stdout = %q, waiting line must precede exited line", res.out)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for run to finish")
	}
}
