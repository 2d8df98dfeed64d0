package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"csim/internal/testutil"
	"csim/internal/validate"
)

func TestAddressAcceptsWellFormedAccount(t *testing.T) {
	t.Parallel()

	addr := testutil.AccountAddress(0x7f)
	require.Len(t, addr, 56)
	require.True(t, strings.HasPrefix(addr, "G"), "account address should start with G, got %q", addr)

	res := validate.Address(addr)
	require.True(t, res.Valid, "errors: %v", res.Errors)
	require.Empty(t, res.Errors)
}

func TestAddressAcceptsWellFormedContract(t *testing.T) {
	t.Parallel()

	addr := testutil.ContractAddress(0x01)
	require.True(t, strings.HasPrefix(addr, "C"), "contract address should start with C, got %q", addr)

	res := validate.Address(addr)
	require.True(t, res.Valid, "errors: %v", res.Errors)
}

func TestAddressRejectsWrongLength(t *testing.T) {
	t.Parallel()

	res := validate.Address("GSHORT")
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	require.Equal(t, validate.CodeAddressLength, res.Errors[0].Code)
}

func TestAddressRejectsBadCharset(t *testing.T) {
	t.Parallel()

	addr := testutil.AccountAddress(0x7f)
	mangled := "!" + addr[1:]

	res := validate.Address(mangled)
	require.False(t, res.Valid)
	require.Equal(t, validate.CodeAddressCharset, res.Errors[0].Code)
}

func TestAddressRejectsUnknownVersion(t *testing.T) {
	t.Parallel()

	// 'S' strkeys are seeds, which the simulator never accepts.
	addr := testutil.AccountAddress(0x10)
	mangled := "S" + addr[1:]

	res := validate.Address(mangled)
	require.False(t, res.Valid)
	require.Equal(t, validate.CodeAddressVersion, res.Errors[0].Code)
}

func TestAddressRejectsChecksumMismatch(t *testing.T) {
	t.Parallel()

	addr := testutil.AccountAddress(0x7f)

	// Flip one payload character; the checksum no longer matches.
	replacement := byte('A')
	if addr[10] == replacement {
		replacement = 'B'
	}

	mangled := addr[:10] + string(replacement) + addr[11:]

	res := validate.Address(mangled)
	require.False(t, res.Valid)
	require.Equal(t, validate.CodeAddressChecksum, res.Errors[0].Code)
}

func TestParamsJSONAcceptsFlatStringObject(t *testing.T) {
	t.Parallel()

	res := validate.ParamsJSON([]byte(`{
		// amounts are strings, like every other param
		"amount": "100",
		"to": "GABC",
	}`))
	require.True(t, res.Valid, "errors: %v", res.Errors)
}

func TestParamsJSONRejectsSyntaxErrors(t *testing.T) {
	t.Parallel()

	res := validate.ParamsJSON([]byte(`{"amount": `))
	require.False(t, res.Valid)
	require.Equal(t, validate.CodeJSONSyntax, res.Errors[0].Code)
}

func TestParamsJSONRejectsNonObject(t *testing.T) {
	t.Parallel()

	res := validate.ParamsJSON([]byte(`["a", "b"]`))
	require.False(t, res.Valid)
	require.Equal(t, validate.CodeJSONShape, res.Errors[0].Code)
}

func TestParamsJSONRejectsNonStringValues(t *testing.T) {
	t.Parallel()

	res := validate.ParamsJSON([]byte(`{"amount": 100, "to": "GABC", "deep": {"x": 1}}`))
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 2)

	// Findings come back sorted by field.
	require.Equal(t, "amount", res.Errors[0].Field)
	require.Equal(t, "deep", res.Errors[1].Field)

	for _, e := range res.Errors {
		require.Equal(t, validate.CodeJSONShape, e.Code)
	}
}

func TestParamsDecodesJSONC(t *testing.T) {
	t.Parallel()

	params, err := validate.Params([]byte(`{"a": "1", /* comment */ "b": "2"}`))
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a": "1", "b": "2"}, params)
}
