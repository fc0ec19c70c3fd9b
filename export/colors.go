package export

import (
	"hash/fnv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// TrackColors hands out one color per track name. The color is derived from
// the name, so a track keeps its color across runs.
type TrackColors struct {
	colors map[string]colorful.Color
}

func NewTrackColors() *TrackColors {
	return &TrackColors{
		colors: make(map[string]colorful.Color),
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// nameColor picks a bright, saturated color from the name's hash.
func nameColor(norm string) colorful.Color {
	h := fnv.New64a()
	_, _ = h.Write([]byte(norm))
	sum := h.Sum64()

	hue := float64(sum%3600) / 10
	sat := 0.5 + float64((sum>>16)%300)/1000
	val := 0.6 + float64((sum>>32)%300)/1000

	return colorful.Hsv(hue, sat, val)
}

func (tc *TrackColors) HexColor(name string) string {
	var (
		c  colorful.Color
		ok bool
	)

	norm := normalizeName(name)
	if c, ok = tc.colors[norm]; !ok {
		c = nameColor(norm)
		tc.colors[norm] = c
	}

	return c.Hex()
}
