package shape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benoitkugler/raqm/fonts"
)

// Feature is one OpenType feature setting to enable or disable during
// shaping, optionally scoped to a [Start,End) code point range.
type Feature struct {
	Tag   string
	Value uint32
	Start int
	End   int
}

// FeatureGlobalStart and FeatureGlobalEnd mark a feature that applies to
// the whole run (spec §4.5's default when no `[start:end]` suffix is
// given).
const (
	FeatureGlobalStart = 0
	FeatureGlobalEnd   = -1
)

// ParseFeature parses one feature string per spec §6: "+tag", "-tag",
// "tag=N", optionally with a "[start:end]" range suffix; invalid strings
// are rejected (spec §7's InvalidArgument).
//
// Grounded on the HarfBuzz feature-string grammar
// (hb_feature_from_string), which this module's shaping backend
// (github.com/boxesandglue/textshape) also expects features to follow.
func ParseFeature(s string) (Feature, error) {
	f := Feature{Start: FeatureGlobalStart, End: FeatureGlobalEnd}

	body := s
	if i := strings.IndexByte(s, '['); i >= 0 {
		if !strings.HasSuffix(s, "]") {
			return Feature{}, fmt.Errorf("shape: malformed feature range in %q", s)
		}
		body = s[:i]
		rangePart := s[i+1 : len(s)-1]
		start, end, err := parseRange(rangePart)
		if err != nil {
			return Feature{}, fmt.Errorf("shape: %w", err)
		}
		f.Start, f.End = start, end
	}

	if body == "" {
		return Feature{}, fmt.Errorf("shape: empty feature tag in %q", s)
	}

	switch body[0] {
	case '+':
		f.Tag = body[1:]
		f.Value = 1
	case '-':
		f.Tag = body[1:]
		f.Value = 0
	default:
		if eq := strings.IndexByte(body, '='); eq >= 0 {
			f.Tag = body[:eq]
			v, err := strconv.ParseUint(body[eq+1:], 10, 32)
			if err != nil {
				return Feature{}, fmt.Errorf("shape: invalid feature value in %q: %w", s, err)
			}
			f.Value = uint32(v)
		} else {
			f.Tag = body
			f.Value = 1
		}
	}

	if _, ok := fonts.NewTag(f.Tag); !ok {
		return Feature{}, fmt.Errorf("shape: feature tag %q must be 4 characters", f.Tag)
	}
	return f, nil
}

func parseRange(s string) (int, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed range %q", s)
	}
	start := FeatureGlobalStart
	end := FeatureGlobalEnd
	if parts[0] != "" {
		v, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid range start %q: %w", parts[0], err)
		}
		start = v
	}
	if parts[1] != "" {
		v, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid range end %q: %w", parts[1], err)
		}
		end = v
	}
	return start, end, nil
}
