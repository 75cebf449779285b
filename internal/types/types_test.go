package types

import "testing"

func TestKindNormalize(t *testing.T) {
	tests := []struct {
		in   Kind
		want Kind
	}{
		{KindIdle, KindIdle},
		{KindText, KindText},
		{KindLyric, KindLyric},
		{KindImage, KindImage},
		{"", KindIdle},
		{"HOLOGRAM", KindIdle},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsIdle(t *testing.T) {
	if !(ContentUnit{Kind: KindIdle}).IsIdle() {
		t.Error("idle unit not idle")
	}
	if (ContentUnit{Kind: KindText, Body: "x"}).IsIdle() {
		t.Error("text unit reported idle")
	}
}

func TestClampFontSize(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{MinFontSizePx - 1, MinFontSizePx},
		{MinFontSizePx, MinFontSizePx},
		{DefaultFontSizePx, DefaultFontSizePx},
		{MaxFontSizePx, MaxFontSizePx},
		{MaxFontSizePx + 1, MaxFontSizePx},
		{0, MinFontSizePx},
		{-5, MinFontSizePx},
	}
	for _, tt := range tests {
		if got := ClampFontSize(tt.in); got != tt.want {
			t.Errorf("ClampFontSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSettingsPatchApply(t *testing.T) {
	base := DefaultSettings()

	t.Run("empty patch changes nothing", func(t *testing.T) {
		if got := (SettingsPatch{}).Apply(base); got != base {
			t.Errorf("got %+v, want %+v", got, base)
		}
	})

	t.Run("single field", func(t *testing.T) {
		size := 72
		got := SettingsPatch{FontSizePx: &size}.Apply(base)
		if got.FontSizePx != 72 {
			t.Errorf("FontSizePx = %d", got.FontSizePx)
		}
		if got.Theme != base.Theme || got.BackgroundImageURL != base.BackgroundImageURL {
			t.Error("untouched fields changed")
		}
	})

	t.Run("clears background with empty string", func(t *testing.T) {
		withBG := base
		withBG.BackgroundImageURL = "bg.jpg"
		empty := ""
		got := SettingsPatch{BackgroundImageURL: &empty}.Apply(withBG)
		if got.BackgroundImageURL != "" {
			t.Errorf("BackgroundImageURL = %q, want cleared", got.BackgroundImageURL)
		}
	})

	t.Run("clamps font size", func(t *testing.T) {
		size := 9999
		got := SettingsPatch{FontSizePx: &size}.Apply(base)
		if got.FontSizePx != MaxFontSizePx {
			t.Errorf("FontSizePx = %d, want %d", got.FontSizePx, MaxFontSizePx)
		}
	})
}
