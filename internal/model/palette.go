package model

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// AddColor appends without deduplicating.
func AddColor(colors []string, c string) []string {
	out := make([]string, 0, len(colors)+1)
	out = append(out, colors...)
	return append(out, c)
}

// RemoveColor drops every occurrence of c.
func RemoveColor(colors []string, c string) []string {
	out := make([]string, 0, len(colors))
	for _, existing := range colors {
		if existing == c {
			continue
		}
		out = append(out, existing)
	}
	return out
}

// NormalizeColor parses a hex colour ("#abc", "aabbcc", "#AABBCC") and
// returns it as lower-case "#rrggbb".
func NormalizeColor(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("color is empty")
	}
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", v, err)
	}
	return c.Hex(), nil
}
