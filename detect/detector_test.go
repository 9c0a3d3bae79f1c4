package detect

import (
	"context"
	"errors"
	"testing"
)

const (
	frenchText  = "Le chat est dans la maison et les enfants sont dans le jardin."
	spanishText = "El perro está en la casa y los niños están en el jardín con una pelota."
	germanText  = "Der Hund ist nicht in dem Haus und die Kinder sind mit einem Ball."
	russianText = "Кошка сидит на окне."
	chineseText = "猫坐在窗台上看着外面的世界。"
	koreanText  = "고양이가 창가에 앉아 있어요."
)

func TestDetect_French(t *testing.T) {
	d := New()

	lang, err := d.Detect(context.Background(), frenchText, false)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if lang != "fr" {
		t.Errorf("got %q, want fr", lang)
	}
}

func TestDetect_Scripts(t *testing.T) {
	d := New()

	tests := []struct {
		text string
		want string
	}{
		{russianText, "ru"},
		{chineseText, "zh"},
		{koreanText, "ko"},
	}
	for _, tt := range tests {
		lang, err := d.Detect(context.Background(), tt.text, false)
		if err != nil {
			t.Fatalf("Detect(%q) failed: %v", tt.text, err)
		}
		if lang != tt.want {
			t.Errorf("Detect(%q) = %q, want %q", tt.text, lang, tt.want)
		}
	}
}

func TestDetect_EmptyText(t *testing.T) {
	d := New()

	if _, err := d.Detect(context.Background(), "   ", false); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}

func TestDetect_BelowThresholdDefaultsToEnglish(t *testing.T) {
	d := New()

	// Two French matches at most — below the threshold of three.
	lang, err := d.Detect(context.Background(), "le jardin", false)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if lang != "en" {
		t.Errorf("inconclusive detection should default to en, got %q", lang)
	}
}

func TestDetect_StripsMarkup(t *testing.T) {
	d := New()

	html := `<html><head><style>le { la: les; }</style></head>` +
		`<body><script>var le = "la les des";</script>` +
		`<p>Le chat est dans la maison et les enfants sont dans le jardin.</p></body></html>`

	lang, err := d.Detect(context.Background(), html, false)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if lang != "fr" {
		t.Errorf("markup should be stripped before classification, got %q", lang)
	}
}

type stubFallback struct {
	lang  string
	err   error
	calls int
}

func (f *stubFallback) DetectLanguage(ctx context.Context, text string) (string, error) {
	f.calls++
	return f.lang, f.err
}

func TestDetect_FallbackConsulted(t *testing.T) {
	fb := &stubFallback{lang: "sv"}
	d := New(WithFallback(fb))

	lang, err := d.Detect(context.Background(), "hej hej hej", true)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if lang != "sv" {
		t.Errorf("got %q, want fallback result sv", lang)
	}
	if fb.calls != 1 {
		t.Errorf("fallback consulted %d times, want 1", fb.calls)
	}
}

func TestDetect_FallbackErrorPropagates(t *testing.T) {
	fb := &stubFallback{err: errors.New("detection service down")}
	d := New(WithFallback(fb))

	if _, err := d.Detect(context.Background(), "hej hej hej", true); err == nil {
		t.Error("fallback errors must propagate")
	}
}

func TestDetect_FallbackSkippedWhenLocalWins(t *testing.T) {
	fb := &stubFallback{lang: "sv"}
	d := New(WithFallback(fb))

	lang, err := d.Detect(context.Background(), frenchText, true)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if lang != "fr" {
		t.Errorf("got %q, want fr", lang)
	}
	if fb.calls != 0 {
		t.Error("fallback should not be consulted when a local pattern wins")
	}
}

func TestDetect_FallbackDisabled(t *testing.T) {
	fb := &stubFallback{lang: "sv"}
	d := New(WithFallback(fb))

	lang, err := d.Detect(context.Background(), "hej hej hej", false)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if lang != "en" {
		t.Errorf("disabled fallback should default to en, got %q", lang)
	}
	if fb.calls != 0 {
		t.Error("disabled fallback should not be consulted")
	}
}

func TestDetectMultiple_Ranked(t *testing.T) {
	d := New()

	scores := d.DetectMultiple(spanishText)
	if len(scores) == 0 {
		t.Fatal("expected at least one score")
	}
	if scores[0].Lang != "es" {
		t.Errorf("top score = %q, want es", scores[0].Lang)
	}
	for i := 1; i < len(scores); i++ {
		if scores[i].Matches > scores[i-1].Matches {
			t.Error("scores must be ranked by match count")
		}
	}
}

func TestIsLanguage(t *testing.T) {
	d := New()

	if !d.IsLanguage(germanText, "de", 0) {
		t.Error("German sample should match de at the default threshold")
	}
	if d.IsLanguage(germanText, "ko", 0) {
		t.Error("German sample should not match Korean")
	}
	if d.IsLanguage(germanText, "unknown", 0) {
		t.Error("unregistered languages never match")
	}
	if !d.IsLanguage("der die", "de", 2) {
		t.Error("custom minimum match count should be honored")
	}
}

func TestConfidence(t *testing.T) {
	d := New()

	c := d.Confidence(frenchText, "fr")
	if c <= 0 || c > 1 {
		t.Errorf("confidence should be in (0,1], got %v", c)
	}
	if got := d.Confidence(frenchText, "ko"); got != 0 {
		t.Errorf("confidence for an unmatched language should be 0, got %v", got)
	}
	if got := d.Confidence("", "fr"); got != 0 {
		t.Errorf("confidence of empty text should be 0, got %v", got)
	}
}

func TestRegisterPattern(t *testing.T) {
	d := New()

	d.RegisterPattern("eo", NewWordListMatcher("kaj", "estas", "la", "en"))

	lang, err := d.Detect(context.Background(), "La kato estas en la domo kaj la hundo estas en la korto.", false)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if lang != "eo" {
		t.Errorf("custom pattern should win, got %q", lang)
	}
}

func TestSample_Truncates(t *testing.T) {
	long := ""
	for i := 0; i < 2000; i++ {
		long += "a"
	}

	if got := len(Sample(long)); got != 1000 {
		t.Errorf("sample length = %d, want 1000", got)
	}
}
