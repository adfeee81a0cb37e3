package lsystem

import (
	"errors"
	"testing"
)

func TestParseFamily(t *testing.T) {
	tests := []struct {
		in   string
		want Family
	}{
		{"original", Original},
		{"Original Lindenmayer", Original},
		{"BARNSLEY", Barnsley},
		{"Barnsley Fern-ish", Barnsley},
		{"fern", Barnsley},
		{"fractal_plant", FractalPlant},
		{"Fractal Plant", FractalPlant},
		{"plant", FractalPlant},
		{" lichtenberg ", Lichtenberg},
		{"Lichtenberg Figure", Lichtenberg},
		{"cracked earth", CrackedEarth},
		{"crack", CrackedEarth},
		{"Porpita porpita", Porpita},
		{"porpita", Porpita},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFamily(tt.in)
			if err != nil {
				t.Fatalf("ParseFamily(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFamily(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFamily_Unknown(t *testing.T) {
	for _, in := range []string{"", "fernish", "koch"} {
		if _, err := ParseFamily(in); !errors.Is(err, ErrUnknownFamily) {
			t.Errorf("ParseFamily(%q) error = %v, want ErrUnknownFamily", in, err)
		}
	}
}

func TestFamily_RoundTripNames(t *testing.T) {
	if got := len(Families()); got != 6 {
		t.Fatalf("Families() has %d entries, want 6", got)
	}
	for _, f := range Families() {
		for _, name := range []string{f.String(), f.Title()} {
			got, err := ParseFamily(name)
			if err != nil || got != f {
				t.Errorf("ParseFamily(%q) = %v, %v; want %v", name, got, err, f)
			}
		}
		text, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Family
		if err := back.UnmarshalText(text); err != nil || back != f {
			t.Errorf("UnmarshalText(%q) = %v, %v", text, back, err)
		}
	}
}

func TestFamily_Invalid(t *testing.T) {
	f := Family(200)
	if f.Valid() {
		t.Error("Family(200).Valid() = true")
	}
	if f.String() != "Family(200)" {
		t.Errorf("String() = %q", f.String())
	}
	if _, err := f.MarshalText(); !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("MarshalText() error = %v", err)
	}
}
