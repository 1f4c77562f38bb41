package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session is one live browser with its context and active page.
type Session struct {
	Browser playwright.Browser
	Context playwright.BrowserContext
	Page    playwright.Page

	// Headless records how the browser was launched.
	Headless bool

	// CurrentURL tracks the page URL after the last action.
	CurrentURL string

	// StartedAt is when the session was created.
	StartedAt time.Time
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless launches the browser without a visible window.
	Headless bool

	// Viewport sets the initial page size; zero values use the defaults.
	ViewportWidth  int
	ViewportHeight int

	// Timeout is the default per-action timeout in milliseconds; zero
	// uses DefaultTimeout.
	Timeout float64
}

// NavigateOptions configures page navigation.
type NavigateOptions struct {
	// WaitUntil is the load state that completes navigation: "load"
	// (default), "domcontentloaded" or "networkidle".
	WaitUntil string

	// Timeout in milliseconds; zero uses the session default.
	Timeout float64
}

// ExtractOptions configures page content extraction.
type ExtractOptions struct {
	// IncludeTitle prepends the page title as a heading.
	IncludeTitle bool

	// MaxLength caps the extracted text; zero uses DefaultMaxLength.
	MaxLength int
}

// WaitOptions configures waiting for an element.
type WaitOptions struct {
	// Selector identifies the element to wait for.
	Selector string

	// State is the target state: "attached", "detached", "visible" or
	// "hidden".
	State string

	// Timeout in milliseconds; zero uses the session default.
	Timeout float64
}

const (
	DefaultTimeout        = 30000.0
	DefaultMaxLength      = 10000
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)
