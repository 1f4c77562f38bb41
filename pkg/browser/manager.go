package browser

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/webpilothq/webpilot/pkg/instructions"
	"github.com/webpilothq/webpilot/pkg/logging"
)

// pageContextEnv disables instruction-context resolution at the call site
// when set to an explicitly false-like value. The resolver itself never
// sees this toggle.
const pageContextEnv = "WEBPILOT_PAGE_CONTEXT"

// PageContextEnabled reports whether instruction context should be
// resolved after URL-changing actions. Only an explicit false-like value
// disables it; unset or anything else leaves it on.
func PageContextEnabled() bool {
	switch strings.ToLower(os.Getenv(pageContextEnv)) {
	case "false", "0", "no", "off":
		return false
	}
	return true
}

// Manager owns the Playwright runtime and the browser session the
// orchestrator drives, and attaches instruction context to navigation.
type Manager struct {
	mu             sync.Mutex
	pw             *playwright.Playwright
	session        *Session
	resolver       *instructions.Resolver
	logger         *logging.Logger
	contextEnabled bool
	initialized    bool
}

// NewManager creates a manager with page context enabled. The resolver may
// be nil, in which case no page context is ever attached. The logger may
// be nil.
func NewManager(resolver *instructions.Resolver, logger *logging.Logger) *Manager {
	return &Manager{resolver: resolver, logger: logger, contextEnabled: true}
}

// SetPageContext sets the configured default for instruction-context
// resolution. The WEBPILOT_PAGE_CONTEXT environment variable still
// disables resolution when explicitly false-like, regardless of this
// setting.
func (m *Manager) SetPageContext(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contextEnabled = enabled
}

// Initialize installs and starts the Playwright runtime. Must be called
// before Start. Driver output is discarded so it cannot interleave with
// the command protocol on stdout.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("install playwright: %w", err)
	}
	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("start playwright: %w", err)
	}
	m.pw = pw
	m.initialized = true
	return nil
}

// Start launches the browser session. Only one session runs at a time;
// starting while one is active is an error.
func (m *Manager) Start(opts SessionOptions) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil, fmt.Errorf("manager not initialized")
	}
	if m.session != nil {
		return nil, fmt.Errorf("a session is already running")
	}

	if opts.ViewportWidth == 0 {
		opts.ViewportWidth = DefaultViewportWidth
	}
	if opts.ViewportHeight == 0 {
		opts.ViewportHeight = DefaultViewportHeight
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	b, err := m.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	})
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	ctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
	})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("create browser context: %w", err)
	}
	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		b.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}
	page.SetDefaultTimeout(opts.Timeout)

	m.session = &Session{
		Browser:    b,
		Context:    ctx,
		Page:       page,
		Headless:   opts.Headless,
		CurrentURL: "about:blank",
		StartedAt:  time.Now(),
	}
	if m.logger != nil {
		m.logger.Infof("browser session started (headless=%v)", opts.Headless)
	}
	return m.session, nil
}

// Session returns the active session.
func (m *Manager) Session() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, fmt.Errorf("no active session")
	}
	return m.session, nil
}

// PageContext resolves and formats the instruction context for url.
// Returns false when resolution is disabled, no resolver is attached, or
// no instructions apply.
func (m *Manager) PageContext(url string) (string, bool) {
	m.mu.Lock()
	enabled := m.contextEnabled
	m.mu.Unlock()

	if m.resolver == nil || !enabled || !PageContextEnabled() {
		return "", false
	}
	text, ok := m.resolver.Resolve(url)
	if !ok {
		if m.logger != nil {
			m.logger.Debugf("no instruction context for %s", url)
		}
		return "", false
	}
	return instructions.FormatForPrompt(text, url), true
}

// ClearContextCache drops the resolver's memoized resolutions and set
// configurations so edited instructions take effect without a restart.
func (m *Manager) ClearContextCache() {
	if m.resolver != nil {
		m.resolver.ClearCache()
	}
}

// Close ends the active session, leaving the runtime usable for another
// Start.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil
	}
	s := m.session
	m.session = nil
	_ = s.Page.Close()
	_ = s.Context.Close()
	if err := s.Browser.Close(); err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}

// Shutdown closes any active session and stops the Playwright runtime.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	if s := m.session; s != nil {
		m.session = nil
		_ = s.Page.Close()
		_ = s.Context.Close()
		_ = s.Browser.Close()
	}
	pw := m.pw
	m.pw = nil
	m.initialized = false
	m.mu.Unlock()

	if pw != nil {
		if err := pw.Stop(); err != nil {
			return fmt.Errorf("stop playwright: %w", err)
		}
	}
	return nil
}
