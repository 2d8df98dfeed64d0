package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"csim/internal/sim"
	"csim/internal/testutil"
)

// runCLI executes one csim invocation rooted at workDir with an
// isolated environment.
func runCLI(t *testing.T, workDir string, args ...string) (int, string, string) {
	t.Helper()

	var out, errOut bytes.Buffer

	env := map[string]string{"XDG_CONFIG_HOME": t.TempDir()}
	argv := append([]string{"csim", "-C", workDir}, args...)

	code := Run(strings.NewReader(""), &out, &errOut, argv, env, make(chan os.Signal, 1))

	return code, out.String(), errOut.String()
}

func tokenArgs(fill byte) []string {
	return []string{
		"run", "-t", "token",
		"-p", "admin=" + testutil.AccountAddress(fill),
		"-p", "to=" + testutil.AccountAddress(fill+1),
		"-p", "amount=100",
	}
}

func TestRunNoArgsPrintsUsage(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	code := Run(strings.NewReader(""), &out, &errOut, []string{"csim"},
		map[string]string{"XDG_CONFIG_HOME": t.TempDir()}, make(chan os.Signal, 1))

	require.Equal(t, 0, code)
	require.Contains(t, out.String(), "Usage: csim")
	require.Contains(t, out.String(), "Commands:")
}

func TestRunUnknownCommand(t *testing.T) {
	t.Parallel()

	code, _, errOut := runCLI(t, t.TempDir(), "frobnicate")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "unknown command: frobnicate")
}

func TestTemplatesListsRegistry(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI(t, t.TempDir(), "templates")
	require.Equal(t, 0, code)

	for _, name := range []string{"escrow", "multisig", "nft", "staking", "token", "voting"} {
		require.Contains(t, out, name)
	}
}

func TestRunCommandRequiresTemplate(t *testing.T) {
	t.Parallel()

	code, _, errOut := runCLI(t, t.TempDir(), "run")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "--template")
}

func TestRunCommandSimulatesToken(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI(t, t.TempDir(), tokenArgs(1)...)
	require.Equal(t, 0, code)
	require.Contains(t, out, "token: 3 steps, gas 75")
	require.Contains(t, out, "final state:")
	require.Contains(t, out, "total_supply = 100")
}

func TestRunCommandUnknownTemplate(t *testing.T) {
	t.Parallel()

	code, _, errOut := runCLI(t, t.TempDir(), "run", "-t", "lottery")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "unknown template")
}

func TestRunCommandParamsFileWithFlagOverride(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	params := map[string]string{
		"proposer": testutil.AccountAddress(1),
		"voter":    testutil.AccountAddress(2),
		"title":    "from file",
	}

	data, err := json.Marshal(params)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "params.json"), data, 0o644))

	code, out, _ := runCLI(t, workDir,
		"run", "-t", "voting", "--params-file", "params.json", "-p", "title=from flag")
	require.Equal(t, 0, code)
	require.Contains(t, out, `"from flag"`, "flag should override the file param")
}

func TestRunCommandRejectsMalformedParamsFile(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "params.json"), []byte(`{"amount": 1}`), 0o644))

	code, _, errOut := runCLI(t, workDir, "run", "-t", "token", "--params-file", "params.json")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "invalid params file")
}

func TestRunCommandWritesResultFile(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	args := append(tokenArgs(1), "-o", "result.json")

	code, out, _ := runCLI(t, workDir, args...)
	require.Equal(t, 0, code)
	require.Contains(t, out, "result written to")

	data, err := os.ReadFile(filepath.Join(workDir, ".csim", "result.json"))
	require.NoError(t, err)

	var res sim.Result
	require.NoError(t, json.Unmarshal(data, &res))
	require.Equal(t, "token", res.Template)
	require.Equal(t, int64(75), res.GasUsed)
}

func TestRunCommandWarnsOnTruncatedTranscript(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workDir, sim.ConfigFileName),
		[]byte(`{"max_output_bytes": 32}`), 0o644))

	code, _, errOut := runCLI(t, workDir, tokenArgs(1)...)
	require.Equal(t, 1, code, "warnings exit 1")
	require.Contains(t, errOut, "transcript truncated")
}

func TestValidateAcceptsGoodAddress(t *testing.T) {
	t.Parallel()

	addr := testutil.AccountAddress(5)

	code, out, _ := runCLI(t, t.TempDir(), "validate", addr)
	require.Equal(t, 0, code)
	require.Contains(t, out, "is valid")
}

func TestValidateFlagsBadAddress(t *testing.T) {
	t.Parallel()

	code, _, errOut := runCLI(t, t.TempDir(), "validate", "GNOTREAL")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "address_length")
}

func TestValidateJSONFile(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "p.json"),
		[]byte(`{"amount": 7}`), 0o644))

	code, _, errOut := runCLI(t, workDir, "validate", "--json", "p.json")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "json_shape")
}

func TestValidateRequiresAnInput(t *testing.T) {
	t.Parallel()

	code, _, errOut := runCLI(t, t.TempDir(), "validate")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "address argument or --json")
}

func TestPrintConfigShowsSources(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workDir, sim.ConfigFileName),
		[]byte(`{"out_dir": "elsewhere"}`), 0o644))

	code, out, _ := runCLI(t, workDir, "print-config")
	require.Equal(t, 0, code)
	require.Contains(t, out, `"out_dir": "elsewhere"`)
	require.Contains(t, out, "// project:")
}

func TestGlobalNoCacheFlag(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI(t, t.TempDir(), "--no-cache", "print-config")
	require.Equal(t, 0, code)
	require.Contains(t, out, `"enabled": false`)
}

func TestCommandHelp(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI(t, t.TempDir(), "run", "--help")
	require.Equal(t, 0, code)
	require.Contains(t, out, "Usage: csim run")
	require.Contains(t, out, "--params-file")
}
