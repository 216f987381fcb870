// Package npmaudit shells out to npm audit and converts its JSON report
// into typed dependency vulnerabilities. Tool absence and runner failures
// are reported as data on the result, not as errors, so a scan can proceed
// without the tool installed.
package npmaudit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/codetriage/codetriage/internal/types"
)

// DefaultTimeout bounds one npm audit invocation.
const DefaultTimeout = 60 * time.Second

// Runner executes npm audit against a project directory.
type Runner struct {
	binaryPath string
	timeout    time.Duration
	includeDev bool
	log        *logrus.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout overrides the invocation timeout. Non-positive values keep
// the default.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithDevDependencies includes devDependencies in the audit.
func WithDevDependencies(include bool) Option {
	return func(r *Runner) { r.includeDev = include }
}

// WithLogger overrides the failure logger.
func WithLogger(log *logrus.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRunner locates the npm binary and builds a Runner. A missing binary is
// not an error here; Run reports it on the result instead.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		timeout: DefaultTimeout,
		log:     logrus.StandardLogger(),
	}
	if path, err := exec.LookPath("npm"); err == nil {
		r.binaryPath = path
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report is the outcome of one audit run. When ToolAvailable is false or
// Error is set, Vulnerabilities is empty and the caller should surface the
// message rather than treat the project as clean.
type Report struct {
	ToolAvailable   bool                            `json:"toolAvailable"`
	Vulnerabilities []types.DependencyVulnerability `json:"vulnerabilities"`
	Summary         map[string]int                  `json:"summary"`
	Error           string                          `json:"error,omitempty"`
}

// Run audits the project rooted at dir with the runner's configured
// devDependencies setting.
func (r *Runner) Run(ctx context.Context, dir string) Report {
	return r.RunWithDev(ctx, dir, r.includeDev)
}

// RunWithDev audits the project rooted at dir, overriding the
// devDependencies setting for this invocation. npm exits non-zero when it
// finds vulnerabilities, so a non-zero exit with parseable JSON on stdout
// is a successful audit, not a failure.
func (r *Runner) RunWithDev(ctx context.Context, dir string, includeDev bool) Report {
	if r.binaryPath == "" {
		return Report{
			ToolAvailable: false,
			Error: "npm binary not found in PATH\n\n" +
				"To fix this:\n" +
				"  1. Install Node.js (which bundles npm):\n" +
				"     macOS:   brew install node\n" +
				"     Linux:   Use your distribution's package manager or https://nodejs.org\n" +
				"     Windows: Download from https://nodejs.org\n" +
				"  2. Or skip dependency auditing by scanning without a project root",
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.binaryPath, auditArgs(includeDev)...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		r.log.Warnf("npm audit timed out after %s in %s", r.timeout, dir)
		return Report{
			ToolAvailable: true,
			Error:         fmt.Sprintf("npm audit timed out after %s", r.timeout),
		}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			r.log.Warnf("npm audit failed to start: %v", err)
			return Report{
				ToolAvailable: true,
				Error:         fmt.Sprintf("npm audit execution failed: %v", err),
			}
		}
		// Exit code 1 with a report on stdout means vulnerabilities found.
	}

	report, perr := parseReport(stdout.Bytes())
	if perr != nil {
		r.log.Warnf("npm audit produced unparseable output in %s: %v", dir, perr)
		return Report{
			ToolAvailable: true,
			Error: fmt.Sprintf("failed to parse npm audit JSON output: %v\n\n"+
				"This usually indicates an npm version older than 7.\n"+
				"To update npm:\n"+
				"  npm install -g npm@latest\n\n"+
				"npm error output:\n%s", perr, stderr.String()),
		}
	}
	return report
}

func auditArgs(includeDev bool) []string {
	args := []string{"audit", "--json"}
	if !includeDev {
		args = append(args, "--omit=dev")
	}
	return args
}

func parseReport(data []byte) (Report, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Report{}, errors.New("empty output")
	}
	var wire auditReport
	if err := json.Unmarshal(data, &wire); err != nil {
		return Report{}, err
	}
	return convertReport(wire), nil
}
