package ratelimit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var sizeMultipliers = map[string]float64{
	"":    1,
	"b":   1,
	"k":   1 << 10,
	"kb":  1 << 10,
	"kib": 1 << 10,
	"m":   1 << 20,
	"mb":  1 << 20,
	"mib": 1 << 20,
	"g":   1 << 30,
	"gb":  1 << 30,
	"gib": 1 << 30,
}

// ParseBandwidth converts strings such as "512K", "10M" or "1.5G" to
// bytes per second. Suffixes are binary multiples; an empty string means
// no limit.
func ParseBandwidth(input string) (int64, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.TrimSuffix(normalized, "/s")
	if normalized == "" {
		return 0, nil
	}

	idx := 0
	for idx < len(normalized) {
		c := normalized[idx]
		if (c >= '0' && c <= '9') || c == '.' {
			idx++
			continue
		}
		break
	}

	numPart, suffix := normalized[:idx], strings.TrimSpace(normalized[idx:])
	if numPart == "" {
		return 0, fmt.Errorf("invalid bandwidth %q", input)
	}

	value, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid bandwidth %q: %w", input, err)
	}

	multiplier, ok := sizeMultipliers[suffix]
	if !ok {
		return 0, fmt.Errorf("unknown bandwidth suffix %q", suffix)
	}

	product := value * multiplier
	if math.IsInf(product, 0) || product > math.MaxInt64 {
		return 0, fmt.Errorf("bandwidth %s overflows", input)
	}

	return int64(product), nil
}
