package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBA(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		opacity int
		want    string
	}{
		{"full opacity keeps hex", "#ffffff", 100, "#ffffff"},
		{"half white", "#ffffff", 50, "rgba(255, 255, 255, 0.5)"},
		{"short hex", "#0f0", 80, "rgba(0, 255, 0, 0.8)"},
		{"emerald", "#059669", 90, "rgba(5, 150, 105, 0.9)"},
		{"transparent", "#1f2937", 0, "rgba(31, 41, 55, 0)"},
		{"negative clamps to zero", "#000000", -10, "rgba(0, 0, 0, 0)"},
		{"invalid hex returned as is", "emerald", 50, "emerald"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RGBA(tt.hex, tt.opacity))
		})
	}
}

func TestLinearGradient(t *testing.T) {
	assert.Equal(t, "linear-gradient(135deg, #059669, #065f46)", LinearGradient("#059669", "#065f46"))
}
