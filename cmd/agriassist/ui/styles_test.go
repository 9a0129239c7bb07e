package ui

import (
	"strings"
	"testing"
)

func TestThemeByName(t *testing.T) {
	if !ThemeByName("dark").IsDark {
		t.Error("expected dark theme")
	}
	if ThemeByName("light").IsDark {
		t.Error("expected light theme")
	}
}

func TestDetectTheme_EnvOverride(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("AGRIASSIST_DARK_MODE", "1")
	if !DetectTheme().IsDark {
		t.Error("AGRIASSIST_DARK_MODE=1 should select the dark theme")
	}
}

func TestDetectTheme_ColorFgBg(t *testing.T) {
	t.Setenv("AGRIASSIST_DARK_MODE", "")
	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Error("dark background index should select the dark theme")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Error("light background index should select the light theme")
	}
}

func TestRenderDivider(t *testing.T) {
	s := NewStyles(LightTheme())
	if s.RenderDivider(0) != "" {
		t.Error("zero width divider should be empty")
	}
	out := s.RenderDivider(5)
	if !strings.Contains(out, "─────") {
		t.Errorf("divider missing rule characters: %q", out)
	}
}
