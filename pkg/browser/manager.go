package browser

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "browser")

// clickablePollInterval is how often WaitForClickable re-checks the
// enabled state once the element is visible.
const clickablePollInterval = 100 * time.Millisecond

// pwRunner is the slice of the playwright handle the manager depends
// on, narrowed so teardown paths can be exercised without a live
// driver.
type pwRunner interface {
	Launch(options ...playwright.BrowserTypeLaunchOptions) (playwright.Browser, error)
	Stop() error
}

// chromiumRunner adapts a running playwright handle to pwRunner,
// launching through its Chromium browser type.
type chromiumRunner struct {
	*playwright.Playwright
}

func (r chromiumRunner) Launch(options ...playwright.BrowserTypeLaunchOptions) (playwright.Browser, error) {
	return r.Chromium.Launch(options...)
}

// Manager owns the lifecycle of a single browser session. The session
// is launched lazily on the first Acquire and torn down by Release.
// All methods are synchronous and safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	opts    Options
	pw      pwRunner
	session *Session
}

// NewManager creates a manager with the given configuration. No browser
// process is started until Acquire is called.
func NewManager(opts Options) *Manager {
	return &Manager{opts: opts}
}

// Acquire returns the running session, launching the browser on first
// use. Repeat calls without an intervening Release return the same
// handle; no second process is spawned. A launch failure is fatal to
// the caller: the manager stays unstarted and the error propagates.
// The driver is kept running after a failed launch so a retry does
// not pay the startup cost again; Release tears it down either way.
func (m *Manager) Acquire() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		return m.session, nil
	}

	session, err := m.launch()
	if err != nil {
		log.WithError(err).Error("failed to launch browser")
		return nil, err
	}

	m.session = session
	log.WithField("session", session.ID).Info("browser launched")
	return m.session, nil
}

// launch resolves the browser binary, starts the driver and opens a
// page. Callers must hold m.mu.
func (m *Manager) launch() (*Session, error) {
	// Keep driver output away from the caller's stdio
	runOpts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}

	if !m.opts.SkipInstall {
		if err := playwright.Install(runOpts); err != nil {
			return nil, fmt.Errorf("failed to install playwright browsers: %w", err)
		}
	}

	if m.pw == nil {
		pw, err := playwright.Run(runOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to start playwright driver: %w", err)
		}
		m.pw = chromiumRunner{pw}
	}

	browser, err := m.pw.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.opts.headless()),
		Args:     m.opts.launchArgs(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	width, height := m.opts.viewport()
	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport:  &playwright.Size{Width: width, Height: height},
		UserAgent: playwright.String(m.opts.userAgent()),
	})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(float64(m.opts.waitTimeout().Milliseconds()))

	return &Session{
		ID:        uuid.New().String(),
		Browser:   browser,
		Context:   context,
		Page:      page,
		Headless:  m.opts.headless(),
		StartedAt: time.Now(),
	}, nil
}

// Release closes the session and stops the driver. Calling Release when
// nothing is running is a no-op, so it is safe to defer unconditionally.
func (m *Manager) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil && m.pw == nil {
		return nil
	}

	if m.session != nil {
		// Ignore page/context errors, continue cleanup
		_ = m.session.Page.Close()
		_ = m.session.Context.Close()
		_ = m.session.Browser.Close()
		m.session = nil
	}

	// Stop the driver even when no session was established, so a
	// failed launch cannot leak the node process.
	if m.pw != nil {
		err := m.pw.Stop()
		m.pw = nil
		if err != nil {
			return fmt.Errorf("failed to stop playwright driver: %w", err)
		}
	}

	log.Info("browser released")
	return nil
}

// Running reports whether a session is currently acquired.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil
}

// active returns the current session or an error when none is acquired.
func (m *Manager) active() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, fmt.Errorf("no active browser session: call Acquire first")
	}
	return m.session, nil
}

// Navigate loads the given URL in the active session. Navigation
// failures propagate to the caller unchanged.
func (m *Manager) Navigate(url string) error {
	session, err := m.active()
	if err != nil {
		return err
	}

	if _, err := session.Page.Goto(url); err != nil {
		log.WithError(err).WithField("url", url).Error("navigation failed")
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	log.WithField("url", url).Info("navigated")
	return nil
}

// WaitForElement waits until an element matching the CSS selector is
// attached to the DOM and returns its locator. A zero timeout uses the
// manager's configured wait timeout. Expiry propagates as an error.
func (m *Manager) WaitForElement(selector string, timeout time.Duration) (playwright.Locator, error) {
	session, err := m.active()
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = m.opts.waitTimeout()
	}

	locator := session.Page.Locator(selector)
	err = locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return nil, fmt.Errorf("timed out waiting for element %q: %w", selector, err)
	}

	return locator, nil
}

// WaitForClickable waits until an element matching the CSS selector is
// visible and enabled, polling until the deadline elapses.
func (m *Manager) WaitForClickable(selector string, timeout time.Duration) (playwright.Locator, error) {
	session, err := m.active()
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = m.opts.waitTimeout()
	}
	deadline := time.Now().Add(timeout)

	locator := session.Page.Locator(selector)
	err = locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return nil, fmt.Errorf("timed out waiting for element %q: %w", selector, err)
	}

	for {
		enabled, enabledErr := locator.IsEnabled()
		if enabledErr == nil && enabled {
			return locator, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for element %q to become clickable", selector)
		}
		time.Sleep(clickablePollInterval)
	}
}

// CurrentURL returns the URL of the active page.
func (m *Manager) CurrentURL() (string, error) {
	session, err := m.active()
	if err != nil {
		return "", err
	}
	return session.Page.URL(), nil
}

// PageSource returns the full HTML of the active page.
func (m *Manager) PageSource() (string, error) {
	session, err := m.active()
	if err != nil {
		return "", err
	}

	source, err := session.Page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page source: %w", err)
	}
	return source, nil
}
