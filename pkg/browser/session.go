package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Navigate loads url in the session's page and records the resulting URL,
// which may differ from the request after redirects.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	gotoOpts := playwright.PageGotoOptions{}
	if opts.WaitUntil != "" {
		state := playwright.WaitUntilState(opts.WaitUntil)
		gotoOpts.WaitUntil = &state
	}
	if opts.Timeout > 0 {
		gotoOpts.Timeout = &opts.Timeout
	}
	if _, err := s.Page.Goto(url, gotoOpts); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	s.CurrentURL = s.Page.URL()
	return nil
}

// Click clicks the element matching selector. The current URL is refreshed
// afterwards because a click may navigate.
func (s *Session) Click(selector string) error {
	if err := s.Page.Click(selector); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	s.CurrentURL = s.Page.URL()
	return nil
}

// Fill types value into the input matching selector.
func (s *Session) Fill(selector, value string) error {
	if err := s.Page.Fill(selector, value); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

// Wait blocks until the element matching opts.Selector reaches the
// requested state.
func (s *Session) Wait(opts WaitOptions) error {
	if opts.Selector == "" {
		return fmt.Errorf("wait requires a selector")
	}
	waitOpts := playwright.PageWaitForSelectorOptions{}
	if opts.State != "" {
		state := playwright.WaitForSelectorState(opts.State)
		waitOpts.State = &state
	}
	if opts.Timeout > 0 {
		waitOpts.Timeout = &opts.Timeout
	}
	if _, err := s.Page.WaitForSelector(opts.Selector, waitOpts); err != nil {
		return fmt.Errorf("wait for %s: %w", opts.Selector, err)
	}
	return nil
}

// ExtractContent returns the page's readable text, cleaned of scripts,
// styles and markup.
func (s *Session) ExtractContent(opts ExtractOptions) (string, error) {
	if opts.MaxLength == 0 {
		opts.MaxLength = DefaultMaxLength
	}
	raw, err := s.Page.Content()
	if err != nil {
		return "", fmt.Errorf("read page content: %w", err)
	}
	cleaned, err := cleanHTML(raw, opts.MaxLength)
	if err != nil {
		return "", err
	}
	if opts.IncludeTitle && cleaned.Title != "" {
		return fmt.Sprintf("# %s\n\n%s", cleaned.Title, cleaned.Text), nil
	}
	return cleaned.Text, nil
}

// Screenshot captures the current page as a PNG file at path.
func (s *Session) Screenshot(path string, fullPage bool) error {
	_, err := s.Page.Screenshot(playwright.PageScreenshotOptions{
		Path:     &path,
		FullPage: &fullPage,
	})
	if err != nil {
		return fmt.Errorf("screenshot to %s: %w", path, err)
	}
	return nil
}

// Title returns the current page title, or "" when unavailable.
func (s *Session) Title() string {
	title, err := s.Page.Title()
	if err != nil {
		return ""
	}
	return title
}
