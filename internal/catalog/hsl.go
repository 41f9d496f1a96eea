package catalog

import (
	"fmt"
	"math"
)

// hslToHex converts hue [0,360), saturation and lightness [0,100] to a
// #RRGGBB string.
func hslToHex(h, s, l float64) string {
	s /= 100
	l /= 100
	a := s * math.Min(l, 1-l)
	f := func(n float64) int {
		k := math.Mod(n+h/30, 12)
		c := l - a*math.Max(-1, math.Min(k-3, math.Min(9-k, 1)))
		return int(math.Round(255 * c))
	}
	return fmt.Sprintf("#%02X%02X%02X", f(0), f(8), f(4))
}

// redChannel parses the red component of a #RRGGBB string. For grayscale
// entries this equals the lightness byte of all three channels.
func redChannel(hex string) int {
	var r int
	fmt.Sscanf(hex[1:3], "%02X", &r)
	return r
}
