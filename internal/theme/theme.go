// Package theme derives CSS values from the site settings colours.
package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultGradientAngle is used for every hero and header gradient
const DefaultGradientAngle = 135

// RGBA converts a hex colour and an opacity percentage (0-100) to a CSS
// rgba() value. At 100 or above the hex is returned as is, and so is any
// value that is not a #rgb or #rrggbb colour.
func RGBA(hex string, opacity int) string {
	if opacity >= 100 {
		return hex
	}
	if opacity < 0 {
		opacity = 0
	}
	r, g, b, ok := parseHex(hex)
	if !ok {
		return hex
	}
	alpha := strconv.FormatFloat(float64(opacity)/100, 'f', -1, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, alpha)
}

// LinearGradient returns the CSS gradient between two colours
func LinearGradient(start, end string) string {
	return fmt.Sprintf("linear-gradient(%ddeg, %s, %s)", DefaultGradientAngle, start, end)
}

func parseHex(hex string) (r, g, b uint8, ok bool) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
