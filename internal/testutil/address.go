package testutil

import "encoding/base32"

var strkeyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// AccountAddress builds a well-formed strkey account address (G...)
// whose 32-byte payload is filled with fill. Checksum and encoding
// are computed independently of the code under test.
func AccountAddress(fill byte) string {
	return strkeyAddress(6<<3, fill)
}

// ContractAddress builds a well-formed strkey contract address (C...).
func ContractAddress(fill byte) string {
	return strkeyAddress(2<<3, fill)
}

func strkeyAddress(version, fill byte) string {
	raw := make([]byte, 35)
	raw[0] = version

	for i := 1; i < 33; i++ {
		raw[i] = fill
	}

	crc := crc16XModem(raw[:33])
	raw[33] = byte(crc)
	raw[34] = byte(crc >> 8)

	return strkeyEncoding.EncodeToString(raw)
}

// crc16XModem is the reference checksum (poly 0x1021, init 0) used by
// strkey.
func crc16XModem(data []byte) uint16 {
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
