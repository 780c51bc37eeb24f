package markup

import (
	"strconv"
	"strings"

	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/zerr"
)

// Candidate is one entry of a srcset attribute.
type Candidate struct {
	URL   string
	Width int
}

// ParseSrcset parses a width-descriptor srcset attribute value.
func ParseSrcset(value string) ([]Candidate, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	out := make([]Candidate, 0, len(parts))
	for _, part := range parts {
		fields := strings.Fields(part)
		if len(fields) != 2 || !strings.HasSuffix(fields[1], "w") {
			return nil, zerr.With(zerr.With(domain.ErrValidation, "reason", "malformed srcset candidate"), "candidate", part)
		}
		w, err := strconv.Atoi(strings.TrimSuffix(fields[1], "w"))
		if err != nil || w <= 0 {
			return nil, zerr.With(zerr.With(domain.ErrValidation, "reason", "malformed width descriptor"), "candidate", part)
		}
		out = append(out, Candidate{URL: fields[0], Width: w})
	}
	return out, nil
}
