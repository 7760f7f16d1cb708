package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// surface is one open overlay window.
type surface interface {
	Resize(width, height int) error
	Navigate(url string) error
	Close() error
}

// host opens and tears down surfaces.
type host interface {
	Open(width, height int) (surface, error)
	Shutdown() error
}

// playwrightHost runs every overlay as a page of one Chromium context.
type playwrightHost struct {
	mu         sync.Mutex
	playwright *playwright.Playwright
	browser    playwright.Browser
	context    playwright.BrowserContext
	timeout    float64
}

// startPlaywright installs the driver if needed and launches Chromium.
func startPlaywright(opts Options) (*playwrightHost, error) {
	// Keep driver output off the terminal the TUI draws on.
	runOpts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}

	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: opts.DefaultWidth, Height: opts.DefaultHeight},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	return &playwrightHost{
		playwright: pw,
		browser:    browser,
		context:    context,
		timeout:    opts.Timeout,
	}, nil
}

func (h *playwrightHost) Open(width, height int) (surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	page, err := h.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(h.timeout)

	if err := page.SetViewportSize(width, height); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("failed to size page: %w", err)
	}
	return &pageSurface{page: page}, nil
}

func (h *playwrightHost) Shutdown() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	_ = h.context.Close() // Ignore errors, continue cleanup
	_ = h.browser.Close() // Ignore errors, continue cleanup

	if err := h.playwright.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}

type pageSurface struct {
	page playwright.Page
}

func (s *pageSurface) Resize(width, height int) error {
	return s.page.SetViewportSize(width, height)
}

func (s *pageSurface) Navigate(url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

func (s *pageSurface) Close() error {
	return s.page.Close()
}
