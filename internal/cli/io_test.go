package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIOWarningsBracketOutputAndFailTheExit(t *testing.T) {
	t.Parallel()

	var out, errOut strings.Builder

	o := NewIO(&out, &errOut)
	o.Warn("transcript truncated", "raise max_output_bytes")
	o.Println("partial result")

	require.Equal(t, 1, o.Finish())
	require.Equal(t, "partial result\n", out.String())

	// Once before the first stdout write, once at Finish.
	warnings := strings.Count(errOut.String(), "warning: transcript truncated: raise max_output_bytes")
	require.Equal(t, 2, warnings)
}

func TestIOCleanRunExitsZero(t *testing.T) {
	t.Parallel()

	var out, errOut strings.Builder

	o := NewIO(&out, &errOut)
	o.Println("ok")

	require.Equal(t, 0, o.Finish())
	require.Empty(t, errOut.String())
}

func TestIOErrorfPrefixesStderr(t *testing.T) {
	t.Parallel()

	var out, errOut strings.Builder

	o := NewIO(&out, &errOut)
	o.Errorf("unknown command: %s", "frobnicate")

	require.Empty(t, out.String())
	require.Equal(t, "error: unknown command: frobnicate\n", errOut.String())
}
