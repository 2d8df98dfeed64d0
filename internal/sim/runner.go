package sim

import (
	"slices"
	"strings"

	"csim/pkg/fifocache"
)

// Request identifies one simulation: a template name plus its params.
type Request struct {
	Template string
	Params   map[string]string
}

// Result is the complete outcome of a simulation. Results are pure
// data and safe to cache: re-running the same Request yields the same
// Result byte for byte.
type Result struct {
	Template   string            `json:"template"`
	Params     map[string]string `json:"params"`
	Steps      int               `json:"steps"`
	GasUsed    int64             `json:"gas_used"`
	State      map[string]string `json:"state"`
	Transcript string            `json:"transcript"`
	Truncated  bool              `json:"transcript_truncated"`
}

// Runner executes simulation requests, memoizing successful results.
//
// The cache is FIFO by insertion: simulations are deterministic and
// re-derivable, so evicting the oldest computation is as good as any
// smarter policy and keeps bookkeeping trivial. Failed runs are never
// cached.
//
// Time is supplied by the caller on every Run, never read internally,
// so a Runner's behavior replays exactly from recorded timestamps.
// Runners are not safe for concurrent use.
type Runner struct {
	maxOutputBytes int
	cache          *fifocache.Cache[Result]
	hits           int
	misses         int
}

// NewRunner returns a Runner configured by cfg.
func NewRunner(cfg Config) *Runner {
	return &Runner{
		maxOutputBytes: cfg.MaxOutputBytes,
		cache: fifocache.New[Result](fifocache.Config{
			Enabled:    cfg.Cache.Enabled,
			TTLMillis:  cfg.Cache.TTLMillis,
			MaxEntries: cfg.Cache.MaxEntries,
		}),
	}
}

// Run executes req at the given timestamp. The second return reports
// whether the result came from the cache.
func (r *Runner) Run(req Request, nowMillis int64) (Result, bool, error) {
	key := fingerprint(req)

	if res, ok := r.cache.Get(key, nowMillis); ok {
		r.hits++

		return res, true, nil
	}

	tpl, ok := registry[req.Template]
	if !ok {
		return Result{}, false, ErrUnknownTemplate
	}

	tr := NewTrace(r.maxOutputBytes)

	state, err := tpl.Run(Params(req.Params), tr)
	if err != nil {
		return Result{}, false, err
	}

	res := Result{
		Template:   req.Template,
		Params:     req.Params,
		Steps:      tr.Steps(),
		GasUsed:    tr.GasUsed(),
		State:      state,
		Transcript: tr.Transcript(),
		Truncated:  tr.TruncatedTranscript(),
	}

	r.cache.Set(key, res, nowMillis)
	r.misses++

	return res, false, nil
}

// InvalidateTemplate drops every cached result for the named template
// and returns how many were dropped.
func (r *Runner) InvalidateTemplate(name string) int {
	prefix := name + "\x00"

	return r.cache.InvalidateWhere(func(k string) bool {
		return strings.HasPrefix(k, prefix)
	})
}

// CacheLen reports the number of cached results.
func (r *Runner) CacheLen() int {
	return r.cache.Len()
}

// Stats reports cache hits and misses since the Runner was created.
func (r *Runner) Stats() (hits, misses int) {
	return r.hits, r.misses
}

// fingerprint canonicalizes a request into a cache key: template
// name, then params sorted by name, NUL-separated. Params never
// contain NUL (they arrive from flags or validated JSON), so the key
// is injective.
func fingerprint(req Request) string {
	var sb strings.Builder

	sb.WriteString(req.Template)
	sb.WriteByte(0)

	keys := make([]string, 0, len(req.Params))
	for k := range req.Params {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(req.Params[k])
		sb.WriteByte(0)
	}

	return sb.String()
}
