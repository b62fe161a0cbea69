// Package shape derives named input dimensions (n, m, k, rows, cols, V, E...)
// from raw case input. Shapes are only used to label cases in reports.
package shape

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Shape struct {
	N      *int   `json:"n,omitempty"`
	M      *int   `json:"m,omitempty"`
	K      *int   `json:"k,omitempty"`
	Rows   *int   `json:"rows,omitempty"`
	Cols   *int   `json:"cols,omitempty"`
	V      *int   `json:"V,omitempty"`
	E      *int   `json:"E,omitempty"`
	Nodes  *int   `json:"nodes,omitempty"`
	Height *int   `json:"height,omitempty"`
	D      *int   `json:"d,omitempty"`
	U      *int   `json:"u,omitempty"`
	DType  string `json:"dtype,omitempty"`
}

func intp(v int) *int { return &v }

// Empty reports whether no dimension is set.
func (s *Shape) Empty() bool {
	return s == nil || (s.N == nil && s.M == nil && s.K == nil && s.Rows == nil &&
		s.Cols == nil && s.V == nil && s.E == nil && s.Nodes == nil &&
		s.Height == nil && s.D == nil && s.U == nil)
}

// Label renders the shape compactly, e.g. "n=1000", "3×4", "V=5 E=8".
func (s *Shape) Label() string {
	if s == nil {
		return "-"
	}
	var parts []string
	add := func(name string, v *int) {
		if v != nil {
			parts = append(parts, name+"="+strconv.Itoa(*v))
		}
	}
	switch {
	case s.V != nil || s.E != nil:
		add("V", s.V)
		add("E", s.E)
	case s.Rows != nil && s.Cols != nil:
		parts = append(parts, fmt.Sprintf("%d×%d", *s.Rows, *s.Cols))
	case s.Nodes != nil || s.Height != nil:
		add("nodes", s.Nodes)
		add("h", s.Height)
	default:
		add("k", s.K)
		add("n", s.N)
		add("m", s.M)
		add("d", s.D)
		add("u", s.U)
	}
	if len(parts) == 0 {
		if s.DType != "" {
			return s.DType
		}
		return "-"
	}
	return strings.Join(parts, " ")
}

func (s *Shape) String() string { return s.Label() }

const (
	envelopeStart = "__SHAPE__:"
	envelopeEnd   = "__END_SHAPE__"
)

var envelopeRe = regexp.MustCompile(`__SHAPE__:(.*?)__END_SHAPE__`)

// Envelope frames s for the stderr side-channel.
func Envelope(s *Shape) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal shape: %w", err)
	}
	return envelopeStart + string(b) + envelopeEnd, nil
}

// FromStderr extracts the first shape envelope written to stderr.
// Free-form text around the envelope is ignored.
func FromStderr(stderr string) (*Shape, bool) {
	m := envelopeRe.FindStringSubmatch(stderr)
	if m == nil {
		return nil, false
	}
	var s Shape
	if err := json.Unmarshal([]byte(m[1]), &s); err != nil {
		return nil, false
	}
	return &s, true
}
