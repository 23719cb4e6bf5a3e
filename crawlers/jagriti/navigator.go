package jagriti

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/LexiconIndonesia/jagriti-case-service/common/crawler"
	"github.com/LexiconIndonesia/jagriti-case-service/common/storage"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// LookupError reports a state or commission name the portal does not list
type LookupError struct {
	Msg string
}

func (e *LookupError) Error() string {
	return e.Msg
}

func (e *LookupError) Unwrap() error {
	return crawler.ErrNotFound
}

// Navigator drives the e-Jagriti advance search page. Every call owns a
// fresh browser session and closes it before returning.
type Navigator struct {
	launcher crawler.Launcher
	solver   CaptchaSolver
	storage  storage.StorageService
	config   Config
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option customises a Navigator
type Option func(*Navigator)

// WithDiagnosticsStorage uploads failure screenshots next to the local copy
func WithDiagnosticsStorage(svc storage.StorageService) Option {
	return func(n *Navigator) {
		n.storage = svc
	}
}

// NewNavigator creates a navigator
func NewNavigator(launcher crawler.Launcher, solver CaptchaSolver, config Config, opts ...Option) *Navigator {
	n := &Navigator{
		launcher: launcher,
		solver:   solver,
		config:   config,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (n *Navigator) baseURL() string {
	return n.config.SearchPageURL
}

// FetchStates returns every state the portal lists, in portal order
func (n *Navigator) FetchStates(ctx context.Context) ([]State, error) {
	body := url.Values{"flag": {"1"}}.Encode()
	pairs, err := n.fetchPairs(ctx, statesPath, body)
	if err != nil {
		return nil, err
	}
	return lo.Map(pairs, func(p [2]string, _ int) State {
		return State{ID: p[0], Name: p[1]}
	}), nil
}

// FetchCommissions returns the district commissions of a state, in portal order
func (n *Navigator) FetchCommissions(ctx context.Context, stateID string) ([]Commission, error) {
	body := url.Values{"stateId": {stateID}}.Encode()
	pairs, err := n.fetchPairs(ctx, commissionsPath, body)
	if err != nil {
		return nil, err
	}
	return lo.Map(pairs, func(p [2]string, _ int) Commission {
		return Commission{ID: p[0], Name: p[1]}
	}), nil
}

func (n *Navigator) fetchPairs(ctx context.Context, endpoint, body string) ([][2]string, error) {
	session, err := n.launcher.Launch(ctx, crawler.LaunchOptions{Headless: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", crawler.ErrFetch, err)
	}
	defer n.closeSession(session)

	logger := log.With().Str("sessionID", session.ID()).Str("endpoint", endpoint).Logger()

	if err := n.openSearchPage(ctx, session); err != nil {
		logger.Error().Err(err).Msgf("Search page did not become ready sessionID=%s", session.ID())
		return nil, fmt.Errorf("%w: %w", crawler.ErrFetch, err)
	}
	if err := n.sleep(ctx, n.config.SettleDelay); err != nil {
		return nil, fmt.Errorf("%w: %w", crawler.ErrFetch, err)
	}

	raw, err := session.PostForm(ctx, endpoint, body)
	if err != nil {
		logger.Error().Err(err).Msgf("Reference data request failed sessionID=%s", session.ID())
		return nil, fmt.Errorf("%w: %w", crawler.ErrFetch, err)
	}

	pairs, err := decodePairs(raw)
	if err != nil {
		logger.Error().Err(err).Msgf("Reference data could not be decoded sessionID=%s", session.ID())
		return nil, fmt.Errorf("%w: %w", crawler.ErrFetch, err)
	}

	logger.Info().Int("count", len(pairs)).Msg("Reference data fetched")
	return pairs, nil
}

// decodePairs reads the portal's [[id, name], ...] arrays. Ids arrive as
// numbers or strings and are kept verbatim.
func decodePairs(raw string) ([][2]string, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var rows [][]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding reference data: %w", err)
	}

	pairs := make([][2]string, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("reference entry %d has %d elements, want 2", i, len(row))
		}
		pairs = append(pairs, [2]string{fmt.Sprint(row[0]), fmt.Sprint(row[1])})
	}
	return pairs, nil
}

func (n *Navigator) openSearchPage(ctx context.Context, session crawler.Session) error {
	if err := session.Navigate(ctx, n.config.SearchPageURL); err != nil {
		return err
	}
	if err := session.WaitClickable(ctx, stateSelector, n.config.ReadyTimeout); err != nil {
		return fmt.Errorf("%w: %s not clickable within %s: %w", crawler.ErrNotReady, stateSelector, n.config.ReadyTimeout, err)
	}
	return nil
}

// ResolveLocation maps human-readable state and commission names to portal
// ids. Names are compared case-insensitively.
func (n *Navigator) ResolveLocation(ctx context.Context, stateName, commissionName string) (string, string, error) {
	states, err := n.FetchStates(ctx)
	if err != nil {
		return "", "", err
	}
	state, ok := lo.Find(states, func(s State) bool {
		return strings.EqualFold(s.Name, stateName)
	})
	if !ok {
		return "", "", &LookupError{Msg: fmt.Sprintf("State '%s' not found.", stateName)}
	}

	commissions, err := n.FetchCommissions(ctx, state.ID)
	if err != nil {
		return "", "", err
	}
	commission, ok := lo.Find(commissions, func(c Commission) bool {
		return strings.EqualFold(c.Name, commissionName)
	})
	if !ok {
		return "", "", &LookupError{Msg: fmt.Sprintf("Commission '%s' not found in %s.", commissionName, stateName)}
	}

	return state.ID, commission.ID, nil
}

// SearchCases runs one advanced search and returns the parsed result rows.
// The CAPTCHA is answered by the configured solver and is never retried.
func (n *Navigator) SearchCases(ctx context.Context, params SearchParams) ([]Case, error) {
	if !params.Category.valid() {
		return nil, fmt.Errorf("%w: %q", crawler.ErrUnknownSearchCategory, params.Category.Key)
	}

	session, err := n.launcher.Launch(ctx, crawler.LaunchOptions{Headless: n.config.CaptchaHeadless})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", crawler.ErrSearch, err)
	}
	defer n.closeSession(session)

	cases, err := n.runSearch(ctx, session, params)
	if err != nil {
		log.Error().Err(err).Str("category", params.Category.Key).Msgf("Case search failed sessionID=%s", session.ID())
		n.captureFailure(ctx, session)
		return nil, fmt.Errorf("%w: %w", crawler.ErrSearch, err)
	}

	log.Info().Str("sessionID", session.ID()).Str("category", params.Category.Key).Int("count", len(cases)).Msg("Case search completed")
	return cases, nil
}

func (n *Navigator) runSearch(ctx context.Context, session crawler.Session, params SearchParams) ([]Case, error) {
	logger := log.With().Str("sessionID", session.ID()).Logger()

	if err := n.openSearchPage(ctx, session); err != nil {
		return nil, err
	}
	if err := session.Click(ctx, dcdrcRadioSelector); err != nil {
		return nil, fmt.Errorf("choosing district commissions: %w", err)
	}
	if err := session.Select(ctx, stateSelector, params.StateID); err != nil {
		return nil, fmt.Errorf("choosing state: %w", err)
	}
	if err := n.waitForCommission(ctx, session, params.CommissionID); err != nil {
		return nil, err
	}
	if err := session.Select(ctx, commissionSelector, params.CommissionID); err != nil {
		return nil, fmt.Errorf("choosing commission: %w", err)
	}
	if err := session.Click(ctx, advancedModeSelector); err != nil {
		return nil, fmt.Errorf("choosing advanced search: %w", err)
	}
	if err := n.sleep(ctx, n.config.AdvancedModeDelay); err != nil {
		return nil, err
	}
	if err := session.Select(ctx, searchBySelector, params.Category.Code); err != nil {
		return nil, fmt.Errorf("choosing search category: %w", err)
	}
	if err := session.Input(ctx, searchTextSelector, params.Value); err != nil {
		return nil, fmt.Errorf("typing search value: %w", err)
	}

	answer, err := n.solver.Solve(ctx, CaptchaChallenge{
		SessionID: session.ID(),
		ImagePath: n.saveCaptchaImage(ctx, session),
	})
	if err != nil {
		return nil, fmt.Errorf("solving captcha: %w", err)
	}
	if err := session.Input(ctx, captchaInputSelector, answer); err != nil {
		return nil, fmt.Errorf("typing captcha: %w", err)
	}

	if err := session.Click(ctx, searchButtonSelector); err != nil {
		return nil, fmt.Errorf("submitting search: %w", err)
	}
	logger.Info().Msg("Search submitted, waiting for results")

	if err := session.WaitPresent(ctx, resultsSelector, n.config.ResultsTimeout); err != nil {
		return nil, fmt.Errorf("%w: results table not present within %s: %w", crawler.ErrTimeout, n.config.ResultsTimeout, err)
	}

	html, err := session.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading results page: %w", err)
	}
	return ExtractCases(strings.NewReader(html), n.baseURL())
}

// waitForCommission polls until the commission option is populated, then
// falls back to a fixed delay if it never shows up.
func (n *Navigator) waitForCommission(ctx context.Context, session crawler.Session, commissionID string) error {
	id, err := json.Marshal(commissionID)
	if err != nil {
		return err
	}
	js := fmt.Sprintf(`() => document.querySelector('%s option[value=' + JSON.stringify(%s) + ']') !== null`, commissionSelector, id)

	if err := session.WaitCondition(ctx, js, n.config.CommissionWait); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Debug().Str("sessionID", session.ID()).Err(err).Msg("Commission list not observed, falling back to fixed delay")
		return n.sleep(ctx, n.config.CommissionFallback)
	}
	return nil
}

// saveCaptchaImage stores the CAPTCHA so a remote operator can read it.
// The returned path is empty when nothing was written.
func (n *Navigator) saveCaptchaImage(ctx context.Context, session crawler.Session) string {
	if n.config.CaptchaImagePath == "" {
		return ""
	}

	shotCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	img, err := session.Screenshot(shotCtx, captchaImageSelector)
	cancel()
	if err != nil {
		img, err = session.Screenshot(ctx, "")
	}
	if err != nil {
		log.Warn().Err(err).Msgf("Could not capture CAPTCHA image sessionID=%s", session.ID())
		return ""
	}

	if err := os.WriteFile(n.config.CaptchaImagePath, img, 0o644); err != nil {
		log.Warn().Err(err).Msgf("Could not save CAPTCHA image sessionID=%s", session.ID())
		return ""
	}
	return n.config.CaptchaImagePath
}

// captureFailure writes a full-page screenshot to disk and, when storage is
// configured, uploads it. Failures here are logged and swallowed.
func (n *Navigator) captureFailure(ctx context.Context, session crawler.Session) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()

	img, err := session.Screenshot(ctx, "")
	if err != nil {
		log.Warn().Err(err).Msgf("Could not capture error screenshot sessionID=%s", session.ID())
		return
	}

	if n.config.ScreenshotPath != "" {
		if err := os.WriteFile(n.config.ScreenshotPath, img, 0o644); err != nil {
			log.Warn().Err(err).Msgf("Could not save error screenshot sessionID=%s", session.ID())
		} else {
			log.Info().Str("sessionID", session.ID()).Msgf("An error occurred. A screenshot has been saved to '%s'", n.config.ScreenshotPath)
		}
	}

	if n.storage == nil || n.config.DiagnosticsBucket == "" {
		return
	}
	objectName := path.Join(n.config.DiagnosticsPrefix, fmt.Sprintf("%s-%s.png", time.Now().UTC().Format("20060102-150405"), session.ID()))
	if _, err := n.storage.Upload(ctx, n.config.DiagnosticsBucket, objectName, img, "image/png"); err != nil {
		log.Warn().Err(err).Msgf("Could not upload error screenshot sessionID=%s", session.ID())
		return
	}
	log.Info().Str("sessionID", session.ID()).Str("object", objectName).Msg("Error screenshot uploaded")
}

func (n *Navigator) closeSession(session crawler.Session) {
	if err := session.Close(); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Msgf("Error closing browser session sessionID=%s", session.ID())
	}
}
