package jagriti

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// CaptchaSolver supplies the text of the CAPTCHA currently on screen. Solve
// blocks until an answer is available.
type CaptchaSolver interface {
	Solve(ctx context.Context, challenge CaptchaChallenge) (string, error)
}

// CaptchaChallenge describes where the operator can see the CAPTCHA
type CaptchaChallenge struct {
	SessionID string
	// ImagePath is a saved copy of the CAPTCHA image, empty when none could be captured
	ImagePath string
}

// StaticSolver always answers with the same text
type StaticSolver string

func (s StaticSolver) Solve(_ context.Context, _ CaptchaChallenge) (string, error) {
	return string(s), nil
}

// TerminalSolver asks a human operator on a terminal. Prompts are serialised
// so concurrent searches never share one input line.
type TerminalSolver struct {
	mu    sync.Mutex
	once  sync.Once
	in    io.Reader
	out   io.Writer
	lines chan lineResult
	// abandoned is set when a prompt was cancelled before its answer arrived
	abandoned bool
	// staleGrace is how long input is discarded after an abandoned prompt,
	// before the next banner is shown
	staleGrace time.Duration
}

const defaultStaleGrace = time.Second

type lineResult struct {
	line string
	err  error
}

// NewTerminalSolver reads answers from in and writes prompts to out
func NewTerminalSolver(in io.Reader, out io.Writer) *TerminalSolver {
	return &TerminalSolver{
		in:         in,
		out:        out,
		staleGrace: defaultStaleGrace,
	}
}

func (s *TerminalSolver) readLines() {
	s.lines = make(chan lineResult, 1)
	go func() {
		defer close(s.lines)
		r := bufio.NewReader(s.in)
		for {
			line, err := r.ReadString('\n')
			s.lines <- lineResult{line: line, err: err}
			if err != nil {
				return
			}
		}
	}()
}

// discardStale drops answers typed for a prompt whose request already gave
// up. Anything arriving before the new banner is shown belongs to the old
// prompt, so lines are drained for the whole grace window.
func (s *TerminalSolver) discardStale() {
	timer := time.NewTimer(s.staleGrace)
	defer timer.Stop()
	for {
		select {
		case _, ok := <-s.lines:
			if !ok {
				return
			}
		case <-timer.C:
			return
		}
	}
}

func (s *TerminalSolver) Solve(ctx context.Context, challenge CaptchaChallenge) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.once.Do(s.readLines)
	if s.abandoned {
		fmt.Fprintln(s.out, "\nThe previous CAPTCHA request was cancelled. Discarding its answer...")
		s.discardStale()
		s.abandoned = false
	}

	fmt.Fprintln(s.out, "\n--- ACTION REQUIRED ---")
	fmt.Fprintf(s.out, "Browser session %s is waiting on a CAPTCHA. Please solve the CAPTCHA you see.\n", challenge.SessionID)
	if challenge.ImagePath != "" {
		fmt.Fprintf(s.out, "A copy of the CAPTCHA image was saved to %s\n", challenge.ImagePath)
	}
	fmt.Fprint(s.out, "Enter the CAPTCHA text here and press Enter: ")

	select {
	case <-ctx.Done():
		fmt.Fprintln(s.out, "\n---------------------")
		s.abandoned = true
		return "", ctx.Err()
	case res, ok := <-s.lines:
		fmt.Fprintln(s.out, "---------------------")
		if !ok {
			return "", fmt.Errorf("reading captcha answer: %w", io.EOF)
		}
		answer := strings.TrimSpace(res.line)
		if res.err != nil && !(errors.Is(res.err, io.EOF) && answer != "") {
			return "", fmt.Errorf("reading captcha answer: %w", res.err)
		}
		return answer, nil
	}
}
