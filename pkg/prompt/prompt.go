// Package prompt asks the user yes/no questions on a line-oriented stream.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Prompter asks a question and returns the raw response line
type Prompter interface {
	Confirm(ctx context.Context, question string) (string, error)
}

// LinePrompter writes questions to an output stream and reads one line
// per question from an input stream
type LinePrompter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a prompter over the given streams
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm prints the question followed by a newline and blocks until a
// line is read. End of input yields an empty response.
func (p *LinePrompter) Confirm(ctx context.Context, question string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := fmt.Fprintln(p.out, question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Accepts reports whether a response starts with y or Y
func Accepts(response string) bool {
	return strings.HasPrefix(response, "y") || strings.HasPrefix(response, "Y")
}

// Declines reports whether a response starts with n or N
func Declines(response string) bool {
	return strings.HasPrefix(response, "n") || strings.HasPrefix(response, "N")
}

// Scripted replays fixed responses; once they run out every answer is empty
type Scripted struct {
	mu        sync.Mutex
	responses []string
	Questions []string
}

// NewScripted creates a prompter answering with responses in order
func NewScripted(responses ...string) *Scripted {
	return &Scripted{responses: responses}
}

// Confirm records the question and returns the next scripted response
func (s *Scripted) Confirm(ctx context.Context, question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Questions = append(s.Questions, question)
	if len(s.responses) == 0 {
		return "", nil
	}
	response := s.responses[0]
	s.responses = s.responses[1:]
	return response, nil
}
