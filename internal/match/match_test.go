package match

import (
	"errors"
	"math/rand"
	"testing"
)

func TestFeedback(t *testing.T) {
	cases := []struct {
		code  string
		guess string
		want  Result
	}{
		{"1123", "1111", Result{Exact: 1, Partial: 1}},
		{"1234", "1234", Result{Exact: 4}},
		{"1234", "4321", Result{Partial: 4}},
		{"1234", "5678", Result{}},
		{"007", "700", Result{Exact: 1, Partial: 2}},
		{"1122", "2211", Result{Partial: 4}},
		{"1122", "1212", Result{Exact: 2, Partial: 2}},
		{"1000", "0111", Result{Partial: 2}},
		{"55", "05", Result{Exact: 1}},
	}
	for _, tc := range cases {
		got, err := Feedback(tc.code, tc.guess)
		if err != nil {
			t.Fatalf("Feedback(%q, %q): %v", tc.code, tc.guess, err)
		}
		if got != tc.want {
			t.Fatalf("Feedback(%q, %q) = %+v, want %+v", tc.code, tc.guess, got, tc.want)
		}
	}
}

func TestFeedbackIdentity(t *testing.T) {
	for _, code := range []string{"00", "1123", "9999999", "0123456789"} {
		got, err := Feedback(code, code)
		if err != nil {
			t.Fatalf("Feedback(%q, %q): %v", code, code, err)
		}
		if got != (Result{Exact: len(code)}) {
			t.Fatalf("identity guess %q scored %+v", code, got)
		}
		if !got.Solved(len(code)) {
			t.Fatalf("expected identity guess %q to be solved", code)
		}
	}
}

func TestFeedbackBoundsAndSymmetry(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	randomCode := func(n int) string {
		buf := make([]byte, n)
		for i := range buf {
			// Small alphabet to force repeated digits.
			buf[i] = byte('0' + rnd.Intn(3))
		}
		return string(buf)
	}
	for i := 0; i < 500; i++ {
		n := 2 + rnd.Intn(7)
		code, guess := randomCode(n), randomCode(n)
		forward, err := Feedback(code, guess)
		if err != nil {
			t.Fatalf("Feedback(%q, %q): %v", code, guess, err)
		}
		if forward.Exact < 0 || forward.Partial < 0 || forward.Exact+forward.Partial > n {
			t.Fatalf("Feedback(%q, %q) out of bounds: %+v", code, guess, forward)
		}
		backward, err := Feedback(guess, code)
		if err != nil {
			t.Fatalf("Feedback(%q, %q): %v", guess, code, err)
		}
		if forward != backward {
			t.Fatalf("asymmetric result for %q/%q: %+v vs %+v", code, guess, forward, backward)
		}
	}
}

func TestFeedbackInvalidInput(t *testing.T) {
	cases := []struct {
		code  string
		guess string
	}{
		{"1234", "123"},
		{"12", "1234"},
		{"1234", "12a4"},
		{"12 4", "1234"},
	}
	for _, tc := range cases {
		if _, err := Feedback(tc.code, tc.guess); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Feedback(%q, %q): expected ErrInvalidInput, got %v", tc.code, tc.guess, err)
		}
	}
}

func TestRender(t *testing.T) {
	got := Render(Result{Exact: 1, Partial: 2}, 4, ASCIIGlyphs)
	if got != "★  ☆☆  -" {
		t.Fatalf("unexpected render %q", got)
	}
	got = Render(Result{}, 3, EmojiGlyphs)
	if got != "    ➖➖➖" {
		t.Fatalf("unexpected render %q", got)
	}
}
