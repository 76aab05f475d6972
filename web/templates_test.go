package web

import "testing"

func TestMustTemplatesParses(t *testing.T) {
	tpl := mustTemplates()
	for _, p := range pages {
		if tpl.Lookup(p.template()) == nil {
			t.Errorf("template %q not found", p.template())
		}
	}
}

func TestComma(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{42688, "42,688"},
		{426880, "426,880"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := comma(tt.n); got != tt.want {
			t.Errorf("comma(%d) = %q; want %q", tt.n, got, tt.want)
		}
	}
}
