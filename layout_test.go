package mushaf

import (
	"errors"
	"testing"
)

func TestLayoutPageCount(t *testing.T) {
	tests := []struct {
		layout Layout
		want   int
	}{
		{LayoutHafs, 604},
		{LayoutIndopak, 610},
	}

	for _, tt := range tests {
		t.Run(tt.layout.String(), func(t *testing.T) {
			if got := tt.layout.PageCount(); got != tt.want {
				t.Errorf("PageCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLayoutLineCount(t *testing.T) {
	tests := []struct {
		name string
		page int
		want int
	}{
		{"first opening page", 0, OpeningPageLines},
		{"second opening page", 1, OpeningPageLines},
		{"first body page", 2, BodyPageLines},
		{"last page", 603, BodyPageLines},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LayoutHafs.LineCount(tt.page); got != tt.want {
				t.Errorf("LineCount(%d) = %d, want %d", tt.page, got, tt.want)
			}
		})
	}
}

func TestLayoutFirstLineLeading(t *testing.T) {
	if got := LayoutHafs.FirstLineLeading(0); got != OpeningFirstLeading {
		t.Errorf("FirstLineLeading(0) = %v, want %v", got, OpeningFirstLeading)
	}
	if got := LayoutHafs.FirstLineLeading(5); got != BodyFirstLeading {
		t.Errorf("FirstLineLeading(5) = %v, want %v", got, BodyFirstLeading)
	}
}

func TestLayoutValidPage(t *testing.T) {
	if LayoutHafs.ValidPage(-1) {
		t.Error("ValidPage(-1) = true, want false")
	}
	if LayoutHafs.ValidPage(604) {
		t.Error("ValidPage(604) = true, want false")
	}
	if !LayoutHafs.ValidPage(0) || !LayoutHafs.ValidPage(603) {
		t.Error("ValidPage rejected an in-range page")
	}
}

func TestLineTypeCentered(t *testing.T) {
	if LineBody.Centered() {
		t.Error("LineBody.Centered() = true, want false")
	}
	if !LineSurahHeader.Centered() || !LineBasmala.Centered() {
		t.Error("header/basmala lines must use the centering rule")
	}
}

// stubTextService serves a fixed page of lines for root-level tests.
type stubTextService struct {
	lines []LineSource
}

func (s *stubTextService) Lines(Layout, int) ([]LineSource, error) {
	return s.lines, nil
}

func TestLineText(t *testing.T) {
	ts := &stubTextService{lines: []LineSource{
		{Type: LineBody, Words: []Word{{Text: "بسم"}, {Text: "الله"}}},
	}}

	got, err := LineText(ts, LayoutHafs, 0, 0)
	if err != nil {
		t.Fatalf("LineText() error = %v", err)
	}
	if want := "بسم الله"; got != want {
		t.Errorf("LineText() = %q, want %q", got, want)
	}
}

func TestLineTextOutOfRange(t *testing.T) {
	ts := &stubTextService{lines: []LineSource{{Type: LineBody}}}

	_, err := LineText(ts, LayoutHafs, 0, 3)
	var lie *LineIndexError
	if !errors.As(err, &lie) {
		t.Fatalf("LineText() error = %v, want *LineIndexError", err)
	}
	if lie.Line != 3 || lie.Count != 1 {
		t.Errorf("LineIndexError = %+v, want Line=3 Count=1", lie)
	}
}
