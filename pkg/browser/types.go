package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session represents a running browser with its associated resources.
// It is an opaque handle: a Manager owns at most one Session at a time.
type Session struct {
	// ID uniquely identifies this session for the lifetime of the process
	ID string

	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated profile)
	Context playwright.BrowserContext

	// Page is the active page
	Page playwright.Page

	// Headless indicates whether the browser runs without a visible window
	Headless bool

	// StartedAt is the timestamp when the browser process was launched
	StartedAt time.Time
}

// Options configures a Manager. The zero value selects defaults suited
// to unattended automation: headless Chromium, a 1920x1080 viewport, a
// desktop user agent and a 10 second element wait.
type Options struct {
	// Headless controls whether the browser runs without a visible window.
	// Nil means headless (the automation default).
	Headless *bool

	// Width and Height set the viewport size. Zero means 1920x1080.
	Width  int
	Height int

	// UserAgent overrides the default desktop user agent.
	UserAgent string

	// WaitTimeout is the default deadline for element waits.
	// Zero means DefaultWaitTimeout.
	WaitTimeout time.Duration

	// ExtraArgs are appended to the Chromium launch arguments.
	ExtraArgs []string

	// SkipInstall disables the automatic browser download performed on
	// first Acquire. Set it when a managed environment already provides
	// the Playwright browsers.
	SkipInstall bool
}

// Defaults for browser sessions.
const (
	DefaultWaitTimeout    = 10 * time.Second
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
)

// DefaultUserAgent is sent when Options.UserAgent is empty. A plain
// desktop Chrome string avoids the trivial bot checks that match the
// headless default.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// automationArgs are the Chromium flags applied to every session.
var automationArgs = []string{
	"--no-sandbox",
	"--disable-dev-shm-usage",
	"--disable-blink-features=AutomationControlled",
	"--disable-gpu",
	"--no-first-run",
	"--no-default-browser-check",
	"--disable-popup-blocking",
}

// headless resolves the Headless option, defaulting to true.
func (o Options) headless() bool {
	if o.Headless == nil {
		return true
	}
	return *o.Headless
}

// viewport resolves the viewport size options.
func (o Options) viewport() (int, int) {
	width, height := o.Width, o.Height
	if width <= 0 {
		width = DefaultViewportWidth
	}
	if height <= 0 {
		height = DefaultViewportHeight
	}
	return width, height
}

// userAgent resolves the user agent option.
func (o Options) userAgent() string {
	if o.UserAgent == "" {
		return DefaultUserAgent
	}
	return o.UserAgent
}

// waitTimeout resolves the element wait deadline.
func (o Options) waitTimeout() time.Duration {
	if o.WaitTimeout <= 0 {
		return DefaultWaitTimeout
	}
	return o.WaitTimeout
}

// launchArgs builds the full Chromium argument list for this configuration.
func (o Options) launchArgs() []string {
	args := make([]string, 0, len(automationArgs)+len(o.ExtraArgs))
	args = append(args, automationArgs...)
	args = append(args, o.ExtraArgs...)
	return args
}
