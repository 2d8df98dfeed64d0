// Package sim runs deterministic simulations of the platform's
// contract templates.
//
// A simulation is a pure function of its request: templates read no
// clock and no environment, so identical requests always produce
// identical results. The Runner exploits that by memoizing results in
// a FIFO cache and bounding each transcript with a byte budget.
package sim

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"csim/internal/validate"
	"csim/pkg/tailbuf"
)

// Template is a deterministic model of one contract template. Run
// receives the request params and a trace to narrate into, and
// returns the final contract state as a flat string map.
type Template struct {
	Name  string
	Short string
	Run   func(p Params, tr *Trace) (map[string]string, error)
}

// Templates returns the registered templates sorted by name.
func Templates() []Template {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	out := make([]Template, 0, len(names))
	for _, name := range names {
		out = append(out, registry[name])
	}

	return out
}

var registry = map[string]Template{
	"token":    tokenTemplate,
	"voting":   votingTemplate,
	"escrow":   escrowTemplate,
	"nft":      nftTemplate,
	"staking":  stakingTemplate,
	"multisig": multisigTemplate,
}

// Params are the named string inputs of a request. Accessors enforce
// the param contract and wrap violations in ErrMissingParam or
// ErrInvalidParam.
type Params map[string]string

// Address returns the named param validated as a strkey address.
func (p Params) Address(name string) (string, error) {
	raw, ok := p[name]
	if !ok || raw == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, name)
	}

	if res := validate.Address(raw); !res.Valid {
		return "", fmt.Errorf("%w: %s: %s", ErrInvalidParam, name, res.Errors[0].Message)
	}

	return raw, nil
}

// Amount returns the named param parsed as a non-negative integer.
// Positivity rules belong to the templates, not the param layer.
func (p Params) Amount(name string) (int64, error) {
	raw, ok := p[name]
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: not an integer", ErrInvalidParam, name)
	}

	return n, nil
}

// AddressList returns the named param split on commas, every element
// validated as a strkey address.
func (p Params) AddressList(name string) ([]string, error) {
	raw, ok := p[name]
	if !ok || raw == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}

	parts := strings.Split(raw, ",")
	for _, part := range parts {
		if res := validate.Address(part); !res.Valid {
			return nil, fmt.Errorf("%w: %s: %s", ErrInvalidParam, name, res.Errors[0].Message)
		}
	}

	return parts, nil
}

// Text returns the named param, which must be non-empty.
func (p Params) Text(name string) (string, error) {
	raw, ok := p[name]
	if !ok || raw == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, name)
	}

	return raw, nil
}

// TextOr returns the named param or def when absent.
func (p Params) TextOr(name, def string) string {
	if raw, ok := p[name]; ok && raw != "" {
		return raw
	}

	return def
}

// gasPerStep is the flat cost charged per trace step. Deterministic
// on purpose: the simulated figure must be re-derivable from the
// request alone.
const gasPerStep = 25

// Trace accumulates the numbered transcript of a simulation inside a
// byte-bounded buffer. Old lines fall off once the budget is hit.
type Trace struct {
	buf   *tailbuf.Buffer
	steps int
}

// NewTrace returns a Trace writing into a buffer capped at maxBytes.
func NewTrace(maxBytes int) *Trace {
	return &Trace{buf: tailbuf.New(maxBytes)}
}

// Stepf records one numbered transcript line.
func (tr *Trace) Stepf(format string, args ...any) {
	tr.steps++
	tr.buf.Append(fmt.Sprintf("%4d  %s\n", tr.steps, fmt.Sprintf(format, args...)))
}

// Steps returns the number of recorded steps, including any whose
// lines have since been truncated away.
func (tr *Trace) Steps() int {
	return tr.steps
}

// Transcript returns the retained transcript text.
func (tr *Trace) Transcript() string {
	return tr.buf.String()
}

// TruncatedTranscript reports whether transcript lines were dropped
// to stay within the byte budget.
func (tr *Trace) TruncatedTranscript() bool {
	return tr.buf.Truncated()
}

// GasUsed returns the deterministic gas figure for the trace so far.
func (tr *Trace) GasUsed() int64 {
	return int64(tr.steps) * gasPerStep
}
