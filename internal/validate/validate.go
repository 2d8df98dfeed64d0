// Package validate checks the inputs a simulation accepts before any
// template runs: contract addresses in strkey form and params
// documents in JSONC.
//
// Validation never fails with a Go error for bad input. Every check
// returns a Result with a Valid flag and zero or more coded errors,
// so callers can render or forward findings without string matching.
package validate

import (
	"encoding/base32"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tailscale/hujson"
)

// Error describes a single validation finding. Code is a stable
// machine-readable identifier; Message is for humans.
type Error struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result is the fixed validation contract: a boolean verdict plus the
// findings that produced it. Valid is true iff Errors is empty.
type Result struct {
	Valid  bool    `json:"valid"`
	Errors []Error `json:"errors,omitempty"`
}

// Stable error codes.
const (
	CodeAddressLength   = "address_length"
	CodeAddressVersion  = "address_version"
	CodeAddressCharset  = "address_charset"
	CodeAddressChecksum = "address_checksum"
	CodeJSONSyntax      = "json_syntax"
	CodeJSONShape       = "json_shape"
)

// strkey layout: 1 version byte + 32 payload bytes + 2 checksum bytes,
// base32-encoded without padding to 56 characters.
const (
	addressLen      = 56
	decodedLen      = 35
	versionAccount  = 6 << 3 // 'G'
	versionContract = 2 << 3 // 'C'
)

var strkeyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Address validates a strkey account (G...) or contract (C...)
// address: length, alphabet, version byte, and CRC16 checksum.
func Address(addr string) Result {
	if len(addr) != addressLen {
		return invalid(Error{
			Code:    CodeAddressLength,
			Message: fmt.Sprintf("address must be %d characters, got %d", addressLen, len(addr)),
		})
	}

	raw, err := strkeyEncoding.DecodeString(addr)
	if err != nil || len(raw) != decodedLen {
		return invalid(Error{
			Code:    CodeAddressCharset,
			Message: "address is not valid base32",
		})
	}

	version := raw[0]
	if version != versionAccount && version != versionContract {
		return invalid(Error{
			Code:    CodeAddressVersion,
			Message: "address must start with G (account) or C (contract)",
		})
	}

	payload := raw[:decodedLen-2]
	want := uint16(raw[decodedLen-2]) | uint16(raw[decodedLen-1])<<8

	if crc16(payload) != want {
		return invalid(Error{
			Code:    CodeAddressChecksum,
			Message: "address checksum mismatch",
		})
	}

	return Result{Valid: true}
}

// ParamsJSON validates a simulation params document: JSONC that
// standardizes to a flat JSON object of string values.
func ParamsJSON(data []byte) Result {
	std, err := hujson.Standardize(data)
	if err != nil {
		return invalid(Error{
			Code:    CodeJSONSyntax,
			Message: fmt.Sprintf("invalid JSONC: %v", err),
		})
	}

	var params map[string]any

	if err := json.Unmarshal(std, &params); err != nil {
		return invalid(Error{
			Code:    CodeJSONShape,
			Message: "params must be a JSON object",
		})
	}

	var errs []Error

	for k, v := range params {
		if _, ok := v.(string); !ok {
			errs = append(errs, Error{
				Code:    CodeJSONShape,
				Field:   k,
				Message: "param values must be strings",
			})
		}
	}

	if len(errs) > 0 {
		// Deterministic order regardless of map iteration.
		sort.Slice(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })

		return Result{Valid: false, Errors: errs}
	}

	return Result{Valid: true}
}

// Params decodes a validated params document into a string map.
// Callers should run ParamsJSON first; Params reports only decode
// failures as Go errors.
func Params(data []byte) (map[string]string, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardizing params: %w", err)
	}

	var params map[string]string

	if err := json.Unmarshal(std, &params); err != nil {
		return nil, fmt.Errorf("decoding params: %w", err)
	}

	return params, nil
}

func invalid(errs ...Error) Result {
	return Result{Valid: false, Errors: errs}
}

// crc16 computes CRC16-XMODEM (poly 0x1021, init 0), the checksum
// strkey uses over version byte plus payload.
func crc16(data []byte) uint16 {
	var crc uint16

	for _, b := range data {
		crc ^= uint16(b) << 8

		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}
