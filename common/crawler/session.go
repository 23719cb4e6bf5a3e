package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog/log"
)

const postFormJS = `(path, body) => fetch(path, {
	method: 'POST',
	headers: {'Content-Type': 'application/x-www-form-urlencoded'},
	body: body,
}).then(res => {
	if (!res.ok) {
		throw new Error('HTTP ' + res.status + ' from ' + path);
	}
	return res.text();
})`

type rodSession struct {
	id            string
	launcher      *launcher.Launcher
	browser       *rod.Browser
	page          *rod.Page
	actionTimeout time.Duration
}

func (s *rodSession) ID() string {
	return s.id
}

func (s *rodSession) element(ctx context.Context, selector string) (*rod.Element, error) {
	pg := s.page.Context(ctx)
	if s.actionTimeout > 0 {
		pg = pg.Timeout(s.actionTimeout)
	}
	el, err := pg.Element(selector)
	if err != nil {
		return nil, fmt.Errorf("element %s: %w", selector, err)
	}
	return el, nil
}

func (s *rodSession) Navigate(ctx context.Context, url string) error {
	pg := s.page.Context(ctx)
	if err := pg.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := pg.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	return nil
}

func (s *rodSession) WaitClickable(ctx context.Context, selector string, timeout time.Duration) error {
	pg := s.page.Context(ctx).Timeout(timeout)
	el, err := pg.Element(selector)
	if err != nil {
		return err
	}
	if err := el.WaitVisible(); err != nil {
		return err
	}
	return el.WaitEnabled()
}

func (s *rodSession) WaitPresent(ctx context.Context, selector string, timeout time.Duration) error {
	_, err := s.page.Context(ctx).Timeout(timeout).Element(selector)
	return err
}

func (s *rodSession) WaitCondition(ctx context.Context, js string, timeout time.Duration) error {
	return s.page.Context(ctx).Timeout(timeout).Wait(rod.Eval(js))
}

func (s *rodSession) Click(ctx context.Context, selector string) error {
	el, err := s.element(ctx, selector)
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (s *rodSession) Select(ctx context.Context, selector, value string) error {
	el, err := s.element(ctx, selector)
	if err != nil {
		return err
	}
	option := fmt.Sprintf(`option[value=%q]`, value)
	if err := el.Select([]string{option}, true, rod.SelectorTypeCSSSector); err != nil {
		return fmt.Errorf("select %s in %s: %w", value, selector, err)
	}
	return nil
}

func (s *rodSession) Input(ctx context.Context, selector, text string) error {
	el, err := s.element(ctx, selector)
	if err != nil {
		return err
	}
	return el.Input(text)
}

func (s *rodSession) PostForm(ctx context.Context, path, body string) (string, error) {
	res, err := s.page.Context(ctx).Eval(postFormJS, path, body)
	if err != nil {
		return "", fmt.Errorf("in-page POST %s: %w", path, err)
	}
	return res.Value.Str(), nil
}

func (s *rodSession) HTML(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

func (s *rodSession) Screenshot(ctx context.Context, selector string) ([]byte, error) {
	if selector == "" {
		return s.page.Context(ctx).Screenshot(true, nil)
	}
	el, err := s.element(ctx, selector)
	if err != nil {
		return nil, err
	}
	return el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
}

func (s *rodSession) Close() error {
	var errs []error
	if err := s.page.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing page: %w", err))
	}
	if err := s.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing browser: %w", err))
	}
	s.launcher.Kill()
	s.launcher.Cleanup()

	log.Info().Str("sessionID", s.id).Msg("Browser session closed")
	return errors.Join(errs...)
}
