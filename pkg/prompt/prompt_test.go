package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLinePrompterConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("ReadsOneLinePerQuestion", func(t *testing.T) {
		var out bytes.Buffer
		p := NewLinePrompter(strings.NewReader("y\nno thanks\r\n"), &out)

		first, err := p.Confirm(ctx, "Remove file '/b/y.txt' [y/n]")
		if err != nil {
			t.Fatalf("Confirm() error = %v", err)
		}
		second, err := p.Confirm(ctx, "Remove file '/b/z.txt' [y/n]")
		if err != nil {
			t.Fatalf("Confirm() error = %v", err)
		}

		if first != "y" || second != "no thanks" {
			t.Errorf("responses = %q, %q", first, second)
		}
		want := "Remove file '/b/y.txt' [y/n]\nRemove file '/b/z.txt' [y/n]\n"
		if out.String() != want {
			t.Errorf("output = %q, want %q", out.String(), want)
		}
	})

	t.Run("EOFIsEmpty", func(t *testing.T) {
		p := NewLinePrompter(strings.NewReader(""), &bytes.Buffer{})
		resp, err := p.Confirm(ctx, "question")
		if err != nil {
			t.Fatalf("Confirm() error = %v", err)
		}
		if resp != "" {
			t.Errorf("response = %q, want empty", resp)
		}
	})

	t.Run("LastLineWithoutNewline", func(t *testing.T) {
		p := NewLinePrompter(strings.NewReader("Yes"), &bytes.Buffer{})
		resp, _ := p.Confirm(ctx, "question")
		if resp != "Yes" {
			t.Errorf("response = %q, want Yes", resp)
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		p := NewLinePrompter(strings.NewReader("y\n"), &bytes.Buffer{})
		if _, err := p.Confirm(cancelled, "question"); !errors.Is(err, context.Canceled) {
			t.Errorf("Confirm() error = %v, want context.Canceled", err)
		}
	})
}

func TestAcceptsDeclines(t *testing.T) {
	tests := []struct {
		response string
		accepts  bool
		declines bool
	}{
		{"y", true, false},
		{"Y", true, false},
		{"yes", true, false},
		{"n", false, true},
		{"No", false, true},
		{"", false, false},
		{" y", false, false},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.response, func(t *testing.T) {
			if got := Accepts(tt.response); got != tt.accepts {
				t.Errorf("Accepts(%q) = %v, want %v", tt.response, got, tt.accepts)
			}
			if got := Declines(tt.response); got != tt.declines {
				t.Errorf("Declines(%q) = %v, want %v", tt.response, got, tt.declines)
			}
		})
	}
}

func TestScripted(t *testing.T) {
	s := NewScripted("y", "n")
	ctx := context.Background()

	for _, want := range []string{"y", "n", ""} {
		got, err := s.Confirm(ctx, "q")
		if err != nil || got != want {
			t.Errorf("Confirm() = %q, %v; want %q", got, err, want)
		}
	}
	if len(s.Questions) != 3 {
		t.Errorf("recorded %d questions, want 3", len(s.Questions))
	}
}
