package render

import (
	"math"
	"testing"
)

type label string

func (l label) String() string { return "label:" + string(l) }

type point struct{ x, y int }

func (p *point) String() string { return "point" }

func TestWriteValue(t *testing.T) {
	rt := NewRuntime(Options{})
	var nilPoint *point
	var nilRender *Render
	var nilMap map[string]int

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"false", false, ""},
		{"true", true, "true"},
		{"string", "<b>raw</b>", "<b>raw</b>"},
		{"bytes", []byte("xy"), "xy"},
		{"int", 42, "42"},
		{"negative int", -7, "-7"},
		{"int64", int64(1) << 40, "1099511627776"},
		{"uint8", uint8(255), "255"},
		{"float", 1.5, "1.5"},
		{"whole float", 2.0, "2"},
		{"small float", 0.0001, "0.0001"},
		{"float32", float32(0.25), "0.25"},
		{"infinity", math.Inf(1), "Infinity"},
		{"negative infinity", math.Inf(-1), "-Infinity"},
		{"nan", math.NaN(), "NaN"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"large float", 1e21, "1e+21"},
		{"below exponent threshold", 1e20, "100000000000000000000"},
		{"tiny float", 1.5e-7, "1.5e-7"},
		{"smallest plain float", 0.000001, "0.000001"},
		{"negative large float", -2.5e30, "-2.5e+30"},
		{"nested render", rt.HTML(`<i>n</i>`), "<i>n</i>"},
		{"nil render", nilRender, ""},
		{"mixed sequence", []any{"a", 1, nil, false, []any{"b", 2}}, "a1b2"},
		{"string slice", []string{"x", "y"}, "xy"},
		{"int array", [3]int{1, 2, 3}, "123"},
		{"render slice", []*Render{rt.HTML("p"), rt.HTML("q")}, "pq"},
		{"stringer", label("x"), "label:x"},
		{"nil stringer pointer", nilPoint, ""},
		{"stringer pointer", &point{}, "point"},
		{"nil map", nilMap, ""},
		{"struct", struct{ A int }{1}, "{1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := rt.Build([]string{"[", "]"}, tt.value)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if want := "[" + tt.want + "]"; r.String() != want {
				t.Errorf("String() = %q, want %q", r.String(), want)
			}
		})
	}
}

func TestWriteValue_NoEscaping(t *testing.T) {
	r := NewRuntime(Options{}).HTML(`<p>`, `<script>x()</script>`, `</p>`)
	if r.String() != "<p><script>x()</script></p>" {
		t.Errorf("interpolation must not escape, got %q", r.String())
	}
	safe := NewRuntime(Options{}).HTML(`<p>`, Escape(`<script>`), `</p>`)
	if safe.String() != "<p>&lt;script&gt;</p>" {
		t.Errorf("Escape() interpolation = %q", safe.String())
	}
}
