package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	tests := map[string]uint{
		"1":                      1,
		"42":                     42,
		"  7":                    7,
		"+3":                     3,
		"12abc":                  12,
		"abc":                    0,
		"":                       0,
		"-1":                     0,
		"0":                      0,
		"1.9":                    1,
		"99999999999999999999999": 0,
	}
	for raw, want := range tests {
		assert.Equal(t, want, parseID(raw), "parseID(%q)", raw)
	}
}
