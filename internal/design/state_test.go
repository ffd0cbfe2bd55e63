package design

import "testing"

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestDefaults(t *testing.T) {
	st := NewStore().State()
	if st.Text != "" || st.TextColor != "#000000" || st.TextSize != 24 ||
		st.TextFont != "Arial" || st.BackgroundColor != "#ffffff" {
		t.Fatalf("unexpected defaults: %+v", st)
	}
	if st.HasText() {
		t.Fatalf("default state must not report text")
	}
}

func TestApplyMergesPartialUpdate(t *testing.T) {
	s := NewStore()
	got := s.Apply(Update{Text: strPtr("Hello"), TextColor: strPtr("#ff0000")})
	if got.Text != "Hello" || got.TextColor != "#ff0000" {
		t.Fatalf("update not applied: %+v", got)
	}
	// untouched fields survive
	if got.TextSize != 24 || got.TextFont != "Arial" || got.BackgroundColor != "#ffffff" {
		t.Fatalf("unrelated fields changed: %+v", got)
	}
}

func TestApplyClampsTextSize(t *testing.T) {
	cases := []struct{ in, want int }{
		{5, 12},
		{11, 12},
		{12, 12},
		{40, 40},
		{72, 72},
		{73, 72},
		{999, 72},
		{-3, 12},
	}
	for _, c := range cases {
		s := NewStore()
		got := s.Apply(Update{TextSize: intPtr(c.in)})
		if got.TextSize != c.want {
			t.Errorf("Apply(size=%d) stored %d, want %d", c.in, got.TextSize, c.want)
		}
	}
}

func TestNormalizeFont(t *testing.T) {
	if got := NormalizeFont("  georgia "); got != "Georgia" {
		t.Fatalf("NormalizeFont(georgia) = %q", got)
	}
	if got := NormalizeFont("Comic Sans MS"); got != "Comic Sans MS" {
		t.Fatalf("unrecognized fonts pass through, got %q", got)
	}
}

func TestApplyPresetBoldWhite(t *testing.T) {
	s := NewStore()
	// Prove background/overlay survive the preset.
	s.Apply(Update{BackgroundColor: strPtr("#123456"), OverlayImage: strPtr("overlay.png")})

	p, ok := FindPreset("bold-white")
	if !ok {
		t.Fatalf("bold-white preset missing")
	}
	got := s.ApplyPreset(p)
	if got.Text != "Custom Design" || got.TextColor != "#ffffff" ||
		got.TextFont != "Arial" || got.TextSize != 36 {
		t.Fatalf("preset fields wrong: %+v", got)
	}
	if got.BackgroundColor != "#123456" || got.OverlayImage != "overlay.png" {
		t.Fatalf("preset must leave background/overlay untouched: %+v", got)
	}
}

func TestPresetLiterals(t *testing.T) {
	want := map[string]Preset{
		"classic-black": {ID: "classic-black", Name: "Classic Black", Text: "Prints Creations", TextColor: "#000000", TextFont: "Georgia", TextSize: 28},
		"brand-blue":    {ID: "brand-blue", Name: "Brand Blue", Text: "Made to Order", TextColor: "#007cba", TextFont: "Helvetica", TextSize: 32},
	}
	for id, w := range want {
		got, ok := FindPreset(id)
		if !ok {
			t.Fatalf("preset %s missing", id)
		}
		if got != w {
			t.Fatalf("preset %s = %+v, want %+v", id, got, w)
		}
	}
	if len(Presets()) < 3 {
		t.Fatalf("expected at least three presets")
	}
}

func TestHasTextWhitespaceOnly(t *testing.T) {
	s := NewStore()
	s.Apply(Update{Text: strPtr("   ")})
	if s.State().HasText() {
		t.Fatalf("whitespace-only text must not count as text")
	}
}
