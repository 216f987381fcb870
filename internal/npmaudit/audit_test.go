package npmaudit

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRunToolUnavailable(t *testing.T) {
	r := &Runner{timeout: DefaultTimeout, log: quietLogger()}
	rep := r.Run(context.Background(), t.TempDir())
	if rep.ToolAvailable {
		t.Fatalf("missing binary should be reported as unavailable")
	}
	if !strings.Contains(rep.Error, "npm binary not found") {
		t.Fatalf("error should carry the install hint, got %q", rep.Error)
	}
	if len(rep.Vulnerabilities) != 0 {
		t.Fatalf("unavailable tool must not report vulnerabilities")
	}
}

func TestRunWithDevToolUnavailable(t *testing.T) {
	r := &Runner{timeout: DefaultTimeout, log: quietLogger()}
	for _, dev := range []bool{false, true} {
		if rep := r.RunWithDev(context.Background(), t.TempDir(), dev); rep.ToolAvailable {
			t.Fatalf("missing binary should be reported as unavailable (dev=%v)", dev)
		}
	}
}

func TestAuditArgs(t *testing.T) {
	got := strings.Join(auditArgs(false), " ")
	if got != "audit --json --omit=dev" {
		t.Fatalf("default args should omit devDependencies, got %q", got)
	}
	got = strings.Join(auditArgs(true), " ")
	if got != "audit --json" {
		t.Fatalf("includeDev must drop the omit flag, got %q", got)
	}
}

func TestOptions(t *testing.T) {
	r := NewRunner(WithTimeout(5*time.Second), WithDevDependencies(true))
	if r.timeout != 5*time.Second {
		t.Fatalf("timeout not applied")
	}
	if !r.includeDev {
		t.Fatalf("includeDev not applied")
	}

	r = NewRunner(WithTimeout(0))
	if r.timeout != DefaultTimeout {
		t.Fatalf("non-positive timeout should keep the default")
	}
}
