package testhelpers

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Strip removes ANSI styling so views can be compared as plain text
func Strip(view string) string {
	return ansi.Strip(view)
}

// AssertViewContains checks if a view contains expected text
func AssertViewContains(t *testing.T, view, expected string) {
	t.Helper()

	if !strings.Contains(Strip(view), expected) {
		t.Errorf("View does not contain expected text: %q\nView:\n%s", expected, view)
	}
}

// AssertViewNotContains checks if a view does not contain certain text
func AssertViewNotContains(t *testing.T, view, unexpected string) {
	t.Helper()

	if strings.Contains(Strip(view), unexpected) {
		t.Errorf("View unexpectedly contains text: %q\nView:\n%s", unexpected, view)
	}
}

// WaitForCondition waits for a condition with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Condition not met within timeout: %s", msg)
}