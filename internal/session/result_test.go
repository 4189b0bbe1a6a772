package session

import "testing"

func TestResultStatus(t *testing.T) {
	if got := ok("Synced 📅").Status(); got != "Synced 📅" {
		t.Fatalf("unexpected status %q", got)
	}
	res := failf(FailureStore, "append failed: %s", "boom")
	if got := res.Status(); got != "Error: append failed: boom" {
		t.Fatalf("unexpected status %q", got)
	}
	if res.OK {
		t.Fatal("failure result must not be OK")
	}
}
