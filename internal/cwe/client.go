package cwe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultBaseURL = "https://cwe-api.mitre.org/api/v1/cwe/weakness"

// WeaknessRecord is a normalized weakness definition. All reference fields
// are flattened to plain string lists.
type WeaknessRecord struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	ExtendedDescription string   `json:"extendedDescription,omitempty"`
	Mitigations         []string `json:"mitigations,omitempty"`
	DetectionMethods    []string `json:"detectionMethods,omitempty"`
	Examples            []string `json:"examples,omitempty"`
	RelatedWeaknesses   []string `json:"relatedWeaknesses,omitempty"`
	ApplicablePlatforms []string `json:"applicablePlatforms,omitempty"`
}

// Client fetches weakness definitions with a process-lifetime cache.
// Successful lookups are cached forever; "not found" and transient failures
// are not, so they can be retried on a later call.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
	diskDir string // optional cross-run cache, "" disables

	mu    sync.Mutex
	cache map[string]*WeaknessRecord
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the remote endpoint (tests).
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") } }

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithDiskCache enables persisting fetched records under dir so repeated CLI
// runs reuse them. The in-memory map stays authoritative for the process.
func WithDiskCache(dir string) Option { return func(c *Client) { c.diskDir = dir } }

// WithLogger overrides the failure logger.
func WithLogger(l *logrus.Logger) Option { return func(c *Client) { c.log = l } }

// NewClient creates a weakness lookup client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     logrus.StandardLogger(),
		cache:   map[string]*WeaknessRecord{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Normalize canonicalizes a weakness identifier: "79", "cwe-79" and
// "CWE-79" all become "CWE-79".
func Normalize(id string) string {
	s := strings.TrimSpace(id)
	s = strings.TrimPrefix(strings.ToUpper(s), "CWE-")
	return "CWE-" + s
}

// FetchOne returns the weakness record for the identifier, or ok=false when
// it cannot be resolved. Remote failures are logged and absorbed; this never
// returns an error to the caller.
func (c *Client) FetchOne(ctx context.Context, id string) (*WeaknessRecord, bool) {
	key := Normalize(id)

	c.mu.Lock()
	if rec, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return rec, true
	}
	c.mu.Unlock()

	if rec := c.loadDisk(key); rec != nil {
		c.store(key, rec)
		return rec, true
	}

	rec, err := c.fetchRemote(ctx, key)
	if err != nil {
		c.log.WithField("cwe", key).Warnf("weakness lookup failed: %v", err)
		return nil, false
	}
	if rec == nil {
		// Not found: trusted negative, but not cached so a later catalog
		// addition is picked up.
		return nil, false
	}
	c.store(key, rec)
	c.saveDisk(key, rec)
	return rec, true
}

// FetchMany looks up all identifiers concurrently and returns a map keyed by
// normalized identifier. Unresolved identifiers are simply omitted. Callers
// bound the batch size; typical per-category lists hold at most four ids.
func (c *Client) FetchMany(ctx context.Context, ids []string) map[string]*WeaknessRecord {
	out := make(map[string]*WeaknessRecord, len(ids))
	var outMu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	seen := map[string]bool{}
	for _, id := range ids {
		key := Normalize(id)
		if seen[key] {
			continue
		}
		seen[key] = true
		g.Go(func() error {
			if rec, ok := c.FetchOne(gctx, key); ok {
				outMu.Lock()
				out[key] = rec
				outMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (c *Client) store(key string, rec *WeaknessRecord) {
	c.mu.Lock()
	c.cache[key] = rec
	c.mu.Unlock()
}

// fetchRemote performs one lookup by numeric identifier. A 404 yields
// (nil, nil); any other failure is an error.
func (c *Client) fetchRemote(ctx context.Context, key string) (*WeaknessRecord, error) {
	num := strings.TrimPrefix(key, "CWE-")
	url := fmt.Sprintf("%s/%s", c.baseURL, num)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	var envelope weaknessEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("malformed weakness payload: %w", err)
	}
	if len(envelope.Weaknesses) == 0 {
		return nil, nil
	}
	rec := normalizeWeakness(envelope.Weaknesses[0])
	return &rec, nil
}

func (c *Client) diskPath(key string) string {
	return filepath.Join(c.diskDir, key+".json")
}

func (c *Client) loadDisk(key string) *WeaknessRecord {
	if c.diskDir == "" {
		return nil
	}
	b, err := os.ReadFile(c.diskPath(key))
	if err != nil {
		return nil
	}
	var rec WeaknessRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil
	}
	return &rec
}

func (c *Client) saveDisk(key string, rec *WeaknessRecord) {
	if c.diskDir == "" {
		return
	}
	if err := os.MkdirAll(c.diskDir, 0755); err != nil {
		return
	}
	b, _ := json.MarshalIndent(rec, "", "  ")
	_ = os.WriteFile(c.diskPath(key), b, 0644)
}
