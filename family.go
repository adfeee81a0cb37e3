package lsystem

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Family selects one of the hard-wired production rule families.
type Family uint8

const (
	// Original is Lindenmayer's original two-symbol system.
	Original Family = iota
	// Barnsley is a fern-like system with offset leaves.
	Barnsley
	// FractalPlant is the bracketed plant system with a save/restore stack.
	FractalPlant
	// Lichtenberg branches probabilistically like an electrical discharge.
	Lichtenberg
	// CrackedEarth forks at 120° and 60° like drying mud.
	CrackedEarth
	// Porpita grows ten radial colonies around the press point.
	Porpita

	numFamilies
)

var familyNames = [numFamilies]struct {
	slug, title string
	aliases     []string
}{
	Original:     {"original", "Original Lindenmayer", []string{"lindenmayer"}},
	Barnsley:     {"barnsley", "Barnsley Fern-ish", []string{"fern", "barnsley-fern"}},
	FractalPlant: {"fractal-plant", "Fractal Plant", []string{"plant"}},
	Lichtenberg:  {"lichtenberg", "Lichtenberg Figure", []string{"lightning"}},
	CrackedEarth: {"cracked-earth", "Cracked Earth", []string{"crack", "earth"}},
	Porpita:      {"porpita", "Porpita porpita", []string{"porpita-porpita"}},
}

// Families returns every family in declaration order.
func Families() []Family {
	out := make([]Family, numFamilies)
	for i := range out {
		out[i] = Family(i)
	}
	return out
}

// Valid reports whether f is one of the known families.
func (f Family) Valid() bool {
	return f < numFamilies
}

// String returns the family's short name, e.g. "fractal-plant".
func (f Family) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Family(%d)", uint8(f))
	}
	return familyNames[f].slug
}

// Title returns the human-readable name, e.g. "Fractal Plant".
func (f Family) Title() string {
	if !f.Valid() {
		return f.String()
	}
	return familyNames[f].title
}

// MarshalText implements encoding.TextMarshaler.
func (f Family) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFamily, uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Family) UnmarshalText(text []byte) error {
	v, err := ParseFamily(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseFamily resolves a family from its short name, title or alias.
// Matching ignores case, and spaces or underscores count as '-'.
func ParseFamily(s string) (Family, error) {
	key := normalizeName(s)
	for i, n := range familyNames {
		if key == n.slug || key == normalizeName(n.title) {
			return Family(i), nil
		}
		for _, a := range n.aliases {
			if key == a {
				return Family(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

func normalizeName(s string) string {
	s = cases.Fold().String(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' {
			return '-'
		}
		return r
	}, s)
}
