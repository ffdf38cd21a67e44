package browser

import (
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog/log"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Session owns a lazily launched headless Chromium shared across trend
// fetches and related-content searches. Each logical fetch opens its own
// page and closes it; the browser process persists until Close.
type Session struct {
	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) launch() (playwright.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil && s.browser.IsConnected() {
		return s.browser, nil
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args: []string{
			"--no-sandbox",
			"--disable-setuid-sandbox",
			"--disable-dev-shm-usage",
			"--disable-gpu",
		},
	})
	if err != nil {
		if stopErr := pw.Stop(); stopErr != nil {
			log.Error().Err(stopErr).Msg("Failed to stop playwright after launch failure")
		}
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	s.pw = pw
	s.browser = b
	log.Info().Msg("Headless browser launched")
	return b, nil
}

// NewPage opens a fresh page with a realistic user agent and viewport.
// Closing the page also closes its dedicated context.
func (s *Session) NewPage() (playwright.Page, error) {
	b, err := s.launch()
	if err != nil {
		return nil, err
	}

	page, err := b.NewPage(playwright.BrowserNewPageOptions{
		UserAgent: playwright.String(userAgent),
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return page, nil
}

func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing browser")
		}
		s.browser = nil
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			log.Error().Err(err).Msg("Error stopping playwright")
		}
		s.pw = nil
	}
}
