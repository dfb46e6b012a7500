// Package dictionaries holds the word tables compiled into the binary.
package dictionaries

import _ "embed"

//go:embed hinglish.yaml
var hinglish []byte

// Hinglish returns the YAML source of the default English to Hinglish table.
// The returned slice is a copy and may be modified by the caller.
func Hinglish() []byte {
	out := make([]byte, len(hinglish))
	copy(out, hinglish)
	return out
}
