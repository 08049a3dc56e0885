package las

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetLogWriters(t *testing.T) {
	var ops bytes.Buffer
	SetLogWriters(&ops, nil, nil)
	defer SetLogWriters(nil, nil, nil)

	if opsLogger == nil {
		t.Fatal("opsLogger should be non-nil after SetLogWriters with a writer")
	}
	if diagLogger != nil || traceLogger != nil {
		t.Fatal("diag and trace loggers should be nil when passed nil writers")
	}
}

func TestLogStreamsReceiveParseEvents(t *testing.T) {
	var ops, diag, trace bytes.Buffer
	SetLogWriters(&ops, &diag, &trace)
	defer SetLogWriters(nil, nil, nil)

	lines := []string{
		"~V",
		" WRAP. YES :",
		" DLM . SPACE :",
		"~C",
		" DEPT.M :",
		" GR.GAPI :",
		"~A",
		"1", "10",
		"2",
	}
	if _, err := Parse(lines, nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if !strings.Contains(ops.String(), "dropping incomplete wrapped record") {
		t.Errorf("ops stream missing dropped record, got %q", ops.String())
	}
	if !strings.Contains(diag.String(), "no NULL record") {
		t.Errorf("diag stream missing defaulted NULL, got %q", diag.String())
	}
	if !strings.Contains(trace.String(), "[las] ") {
		t.Errorf("trace stream missing prefix, got %q", trace.String())
	}
}

func TestLoggersDisabled(t *testing.T) {
	SetLogWriters(nil, nil, nil)

	// Must not panic with every stream disabled.
	opsf("ops %d", 1)
	diagf("diag %d", 2)
	tracef("trace %d", 3)
}
