package crawler

import (
	"context"
	"time"
)

// LaunchOptions are the per-call knobs of a browser launch. Everything else
// is fixed by BrowserConfig.
type LaunchOptions struct {
	Headless bool
}

// Launcher starts isolated browser sessions
type Launcher interface {
	// Launch starts a browser and returns a session holding one blank page.
	// The caller owns the session and must Close it on every path.
	Launch(ctx context.Context, opts LaunchOptions) (Session, error)
}

// Session is a single browser instance driving a single page
type Session interface {
	// ID identifies the session in logs and diagnostic artifacts
	ID() string

	// Navigate loads url and waits for the load event
	Navigate(ctx context.Context, url string) error

	// WaitClickable blocks until the element is visible and enabled
	WaitClickable(ctx context.Context, selector string, timeout time.Duration) error

	// WaitPresent blocks until the element exists in the DOM
	WaitPresent(ctx context.Context, selector string, timeout time.Duration) error

	// WaitCondition polls a JavaScript predicate until it returns true
	WaitCondition(ctx context.Context, js string, timeout time.Duration) error

	// Click clicks the element
	Click(ctx context.Context, selector string) error

	// Select picks the option carrying value inside a select element
	Select(ctx context.Context, selector, value string) error

	// Input types text into the element
	Input(ctx context.Context, selector, text string) error

	// PostForm issues a form-encoded POST from inside the page and returns the raw body
	PostForm(ctx context.Context, path, body string) (string, error)

	// HTML returns the current page markup
	HTML(ctx context.Context) (string, error)

	// Screenshot captures the element matched by selector, or the whole page when selector is empty
	Screenshot(ctx context.Context, selector string) ([]byte, error)

	// Close tears down the page, the browser and its OS process
	Close() error
}
