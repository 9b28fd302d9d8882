// Package browser manages a headless Chromium session for automation
// scripts through Playwright.
//
// A Manager holds the configuration and owns at most one Session. The
// browser process is launched lazily on the first Acquire (downloading
// a matching browser build when needed), reused by every subsequent
// call, and torn down by Release:
//
//	manager := browser.NewManager(browser.Options{})
//	defer manager.Release()
//
//	if _, err := manager.Acquire(); err != nil {
//	    return err
//	}
//	if err := manager.Navigate("https://example.com"); err != nil {
//	    return err
//	}
//	element, err := manager.WaitForClickable("#submit", 5*time.Second)
//
// Launch and navigation failures are fatal and propagate to the caller;
// the package performs no retries. Element waits poll until the
// condition holds or the deadline elapses, then return a timeout error.
package browser
