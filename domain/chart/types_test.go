package chart

import (
	"errors"
	"testing"

	"handchart/domain/core"
)

func TestParseChartType(t *testing.T) {
	tests := []struct {
		input    string
		expected ChartType
		hasError bool
	}{
		{"Line", ChartLine, false},
		{"bar", ChartBar, false},
		{" PIE ", ChartPie, false},
		{"scatter", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseChartType(tt.input)
		if tt.hasError {
			if !errors.Is(err, core.ErrUnknownChartType) {
				t.Errorf("ParseChartType(%q): expected ErrUnknownChartType, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseChartType(%q): unexpected error %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("ParseChartType(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestChartConfigValidate(t *testing.T) {
	ds := NewDataset("test", []Column{"month", "sales"}, nil)

	valid := ChartConfig{ChartType: ChartBar, XColumn: "month", YColumn: "sales"}
	if err := valid.Validate(ds); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	invalid := ChartConfig{ChartType: ChartBar, XColumn: "month", YColumn: "profit"}
	if err := invalid.Validate(ds); !errors.Is(err, core.ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}

	if err := DefaultConfig().Validate(nil); err != nil {
		t.Errorf("unselected axes need no dataset, got %v", err)
	}

	if DefaultConfig().Configured() {
		t.Error("default config must not be configured")
	}
}

func TestIsCartesian(t *testing.T) {
	if !ChartLine.IsCartesian() || !ChartBar.IsCartesian() {
		t.Error("line and bar charts use axes")
	}
	if ChartPie.IsCartesian() {
		t.Error("pie charts have no axes")
	}
}

func TestThemeOnlyChangesColors(t *testing.T) {
	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Error("Toggle should flip between light and dark")
	}
	if ParseTheme("DARK") != ThemeDark || ParseTheme("anything") != ThemeLight {
		t.Error("ParseTheme should default to light")
	}
	if ThemeLight.Palette().Text != "#000000" || ThemeDark.Palette().Text != "#ffffff" {
		t.Error("unexpected text colors")
	}
}

func TestDatasetFingerprintIgnoresID(t *testing.T) {
	rows := []RawRow{{"month": "Jan", "sales": "120"}}
	a := NewDataset("a", []Column{"month", "sales"}, rows)
	b := NewDataset("b", []Column{"month", "sales"}, rows)

	if a.ID == b.ID {
		t.Fatal("expected distinct dataset IDs")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprint should depend on content only")
	}
}

func TestGeometryMarksEmptyState(t *testing.T) {
	g := EmptyGeometry("no rows")
	if g.Ready() {
		t.Error("empty geometry must not be ready")
	}
	if g.Marks() != nil {
		t.Error("empty geometry has no marks")
	}
}
