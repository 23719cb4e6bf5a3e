package jagriti

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/LexiconIndonesia/jagriti-case-service/common/crawler"
	"github.com/LexiconIndonesia/jagriti-case-service/common/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSearchURL = "https://e-jagriti.gov.in/advance-case-search"

type sleepLog struct {
	durations []time.Duration
}

func newTestNavigator(t *testing.T, l crawler.Launcher, solver CaptchaSolver, opts ...Option) (*Navigator, *sleepLog) {
	t.Helper()

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.SearchPageURL = testSearchURL
	cfg.ScreenshotPath = filepath.Join(dir, "error_screenshot.png")
	cfg.CaptchaImagePath = filepath.Join(dir, "captcha.png")

	n := NewNavigator(l, solver, cfg, opts...)
	sleeps := &sleepLog{}
	n.sleep = func(_ context.Context, d time.Duration) error {
		sleeps.durations = append(sleeps.durations, d)
		return nil
	}
	return n, sleeps
}

func referenceSession() *fakeSession {
	s := newFakeSession()
	s.posts[statesPath] = `[[12,"KARNATAKA"],["7","KERALA"]]`
	s.posts[commissionsPath] = `[[1201,"Bangalore 1st & Rural Additional"],[1202,"Mysore"]]`
	return s
}

func TestFetchStates(t *testing.T) {
	l := &fakeLauncher{next: referenceSession}
	n, sleeps := newTestNavigator(t, l, StaticSolver(""))

	states, err := n.FetchStates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []State{{ID: "12", Name: "KARNATAKA"}, {ID: "7", Name: "KERALA"}}, states)
	require.Len(t, l.sessions, 1)
	s := l.sessions[0]
	assert.True(t, s.closed)
	assert.True(t, l.launches[0].Headless)
	assert.Equal(t, []string{"flag=1"}, s.bodies)
	assert.Equal(t, []string{
		"navigate " + testSearchURL,
		"clickable #stateId",
		"post " + statesPath,
	}, s.actions)
	assert.Equal(t, 20*time.Second, s.waitDurs["clickable #stateId"])
	assert.Equal(t, []time.Duration{2 * time.Second}, sleeps.durations)
}

func TestFetchCommissions(t *testing.T) {
	l := &fakeLauncher{next: referenceSession}
	n, _ := newTestNavigator(t, l, StaticSolver(""))

	commissions, err := n.FetchCommissions(context.Background(), "12")
	require.NoError(t, err)

	assert.Equal(t, []Commission{
		{ID: "1201", Name: "Bangalore 1st & Rural Additional"},
		{ID: "1202", Name: "Mysore"},
	}, commissions)
	assert.Equal(t, []string{"stateId=12"}, l.sessions[0].bodies)
	assert.True(t, l.sessions[0].closed)
}

func TestFetchCommissionsEmpty(t *testing.T) {
	l := &fakeLauncher{next: func() *fakeSession {
		s := newFakeSession()
		s.posts[commissionsPath] = `[]`
		return s
	}}
	n, _ := newTestNavigator(t, l, StaticSolver(""))

	commissions, err := n.FetchCommissions(context.Background(), "999")
	require.NoError(t, err)
	assert.NotNil(t, commissions)
	assert.Empty(t, commissions)
}

func TestFetchStatesFailures(t *testing.T) {
	tests := []struct {
		name    string
		session func() *fakeSession
		wantErr error
	}{
		{
			name: "page never ready",
			session: func() *fakeSession {
				s := referenceSession()
				s.errs["clickable #stateId"] = context.DeadlineExceeded
				return s
			},
			wantErr: crawler.ErrNotReady,
		},
		{
			name: "portal error status",
			session: func() *fakeSession {
				s := referenceSession()
				s.postErr = errors.New("HTTP 500 from " + statesPath)
				return s
			},
		},
		{
			name: "malformed body",
			session: func() *fakeSession {
				s := newFakeSession()
				s.posts[statesPath] = `<html>maintenance</html>`
				return s
			},
		},
		{
			name: "short pair",
			session: func() *fakeSession {
				s := newFakeSession()
				s.posts[statesPath] = `[[12]]`
				return s
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &fakeLauncher{next: tt.session}
			n, _ := newTestNavigator(t, l, StaticSolver(""))

			states, err := n.FetchStates(context.Background())
			require.Error(t, err)
			assert.Nil(t, states)
			assert.ErrorIs(t, err, crawler.ErrFetch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			require.Len(t, l.sessions, 1)
			assert.True(t, l.sessions[0].closed)
		})
	}
}

func TestFetchStatesLaunchFailure(t *testing.T) {
	l := &fakeLauncher{err: crawler.ErrLaunch}
	n, _ := newTestNavigator(t, l, StaticSolver(""))

	_, err := n.FetchStates(context.Background())
	assert.ErrorIs(t, err, crawler.ErrFetch)
	assert.ErrorIs(t, err, crawler.ErrLaunch)
}

func TestDecodePairsKeepsIDsVerbatim(t *testing.T) {
	pairs, err := decodePairs(`[[9007199254740993,"A"],["007","B"],[1.5,"C"]]`)
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"9007199254740993", "A"}, {"007", "B"}, {"1.5", "C"}}, pairs)
}

func TestResolveLocation(t *testing.T) {
	l := &fakeLauncher{next: referenceSession}
	n, _ := newTestNavigator(t, l, StaticSolver(""))

	stateID, commissionID, err := n.ResolveLocation(context.Background(), "karnataka", "BANGALORE 1st & rural additional")
	require.NoError(t, err)
	assert.Equal(t, "12", stateID)
	assert.Equal(t, "1201", commissionID)

	require.Len(t, l.sessions, 2)
	assert.Equal(t, []string{"stateId=12"}, l.sessions[1].bodies)
}

func TestResolveLocationNotFound(t *testing.T) {
	tests := []struct {
		name       string
		state      string
		commission string
		wantMsg    string
		launches   int
	}{
		{"unknown state", "Atlantis", "Anything", "State 'Atlantis' not found.", 1},
		{"unknown commission", "KARNATAKA", "Nowhere", "Commission 'Nowhere' not found in KARNATAKA.", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &fakeLauncher{next: referenceSession}
			n, _ := newTestNavigator(t, l, StaticSolver(""))

			_, _, err := n.ResolveLocation(context.Background(), tt.state, tt.commission)
			require.Error(t, err)
			assert.ErrorIs(t, err, crawler.ErrNotFound)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Len(t, l.launches, tt.launches)
		})
	}
}

const resultsHTML = `<html><body><table id="reportOrde"><tbody>
<tr><td>01/02/2023</td><td>Admit</td><td>DC/77/CC/1/2023</td><td>A. Reddy</td><td>XYZ Ltd</td><td>Adv. Rao</td><td><a href="/doc/1.pdf">View</a></td></tr>
</tbody></table></body></html>`

func searchSession() *fakeSession {
	s := newFakeSession()
	s.html = resultsHTML
	return s
}

func testSearchParams(t *testing.T) SearchParams {
	t.Helper()
	category, err := ParseSearchCategory("complainant")
	require.NoError(t, err)
	return SearchParams{StateID: "12", CommissionID: "1201", Category: category, Value: "REDDY"}
}

func TestSearchCasesSequence(t *testing.T) {
	l := &fakeLauncher{next: searchSession}
	solver := &recordingSolver{answer: "x7k2p"}
	n, sleeps := newTestNavigator(t, l, solver)

	cases, err := n.SearchCases(context.Background(), testSearchParams(t))
	require.NoError(t, err)

	require.Len(t, cases, 1)
	assert.Equal(t, "DC/77/CC/1/2023", cases[0].CaseNumber)
	assert.Equal(t, testSearchURL+"/doc/1.pdf", cases[0].DocumentLink.OrEmpty())

	require.Len(t, l.sessions, 1)
	s := l.sessions[0]
	assert.False(t, l.launches[0].Headless)
	assert.True(t, s.closed)
	assert.Equal(t, []string{
		"navigate " + testSearchURL,
		"clickable #stateId",
		"click #radDCDRC",
		"select #stateId=12",
		"condition",
		"select #consumerForumId=1201",
		"click #radMorAdvSear",
		"select #searchBy=2",
		"input #searchText=REDDY",
		"screenshot " + captchaImageSelector,
		"input #captcha=x7k2p",
		"click #searchButton",
		"present #reportOrde",
		"html",
	}, s.actions)
	assert.Equal(t, 30*time.Second, s.waitDurs["present #reportOrde"])
	assert.Equal(t, 5*time.Second, s.waitDurs["condition"])
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, sleeps.durations)

	require.Len(t, solver.challenges, 1)
	assert.Equal(t, s.ID(), solver.challenges[0].SessionID)
	saved, err := os.ReadFile(solver.challenges[0].ImagePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), saved)

	_, err = os.Stat(n.config.ScreenshotPath)
	assert.True(t, os.IsNotExist(err))
}

func TestSearchCasesHeadlessOverride(t *testing.T) {
	l := &fakeLauncher{next: searchSession}
	n, _ := newTestNavigator(t, l, StaticSolver("abcd"))
	n.config.CaptchaHeadless = true

	_, err := n.SearchCases(context.Background(), testSearchParams(t))
	require.NoError(t, err)
	assert.True(t, l.launches[0].Headless)
}

func TestSearchCasesCommissionFallbackDelay(t *testing.T) {
	l := &fakeLauncher{next: func() *fakeSession {
		s := searchSession()
		s.errs["condition"] = context.DeadlineExceeded
		return s
	}}
	n, sleeps := newTestNavigator(t, l, StaticSolver("abcd"))

	_, err := n.SearchCases(context.Background(), testSearchParams(t))
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Second, 500 * time.Millisecond}, sleeps.durations)
}

func TestSearchCasesCaptchaImageFallsBackToPage(t *testing.T) {
	l := &fakeLauncher{next: func() *fakeSession {
		s := searchSession()
		s.errs["screenshot "+captchaImageSelector] = errors.New("no captcha element")
		return s
	}}
	solver := &recordingSolver{answer: "abcd"}
	n, _ := newTestNavigator(t, l, solver)

	_, err := n.SearchCases(context.Background(), testSearchParams(t))
	require.NoError(t, err)
	assert.Contains(t, l.sessions[0].actions, "screenshot ")
	assert.Equal(t, n.config.CaptchaImagePath, solver.challenges[0].ImagePath)
}

func TestSearchCasesNoResults(t *testing.T) {
	l := &fakeLauncher{next: func() *fakeSession {
		s := searchSession()
		s.html = `<table id="reportOrde"><tbody></tbody></table>`
		return s
	}}
	n, _ := newTestNavigator(t, l, StaticSolver("abcd"))

	cases, err := n.SearchCases(context.Background(), testSearchParams(t))
	require.NoError(t, err)
	assert.NotNil(t, cases)
	assert.Empty(t, cases)
}

func TestSearchCasesResultsTimeout(t *testing.T) {
	l := &fakeLauncher{next: func() *fakeSession {
		s := searchSession()
		s.errs["present #reportOrde"] = context.DeadlineExceeded
		s.shot = []byte("error-page")
		return s
	}}
	store := &fakeStorage{}
	n, _ := newTestNavigator(t, l, StaticSolver("wrong"), WithDiagnosticsStorage(store))
	n.config.DiagnosticsBucket = "diagnostics"

	cases, err := n.SearchCases(context.Background(), testSearchParams(t))
	require.Error(t, err)
	assert.Nil(t, cases)
	assert.ErrorIs(t, err, crawler.ErrSearch)
	assert.ErrorIs(t, err, crawler.ErrTimeout)

	s := l.sessions[0]
	assert.True(t, s.closed)
	assert.Equal(t, "screenshot ", s.actions[len(s.actions)-1])
	assert.Len(t, l.launches, 1, "a wrong CAPTCHA is not retried")

	saved, err := os.ReadFile(n.config.ScreenshotPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("error-page"), saved)

	require.Len(t, store.uploads, 1)
	assert.Equal(t, "diagnostics", store.uploads[0].bucket)
	assert.True(t, strings.HasPrefix(store.uploads[0].object, "jagriti/screenshots/"))
	assert.True(t, strings.HasSuffix(store.uploads[0].object, s.ID()+".png"))
	assert.Equal(t, "image/png", store.uploads[0].contentType)
}

func TestSearchCasesFailures(t *testing.T) {
	tests := []struct {
		name    string
		session func() *fakeSession
		solver  CaptchaSolver
		wantErr error
	}{
		{
			name: "page never ready",
			session: func() *fakeSession {
				s := searchSession()
				s.errs["clickable #stateId"] = context.DeadlineExceeded
				return s
			},
			solver:  StaticSolver("abcd"),
			wantErr: crawler.ErrNotReady,
		},
		{
			name: "commission option missing",
			session: func() *fakeSession {
				s := searchSession()
				s.errs["select #consumerForumId=1201"] = errors.New("option not found")
				return s
			},
			solver: StaticSolver("abcd"),
		},
		{
			name:    "solver fails",
			session: searchSession,
			solver:  &recordingSolver{err: errors.New("operator gone")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &fakeLauncher{next: tt.session}
			n, _ := newTestNavigator(t, l, tt.solver)

			_, err := n.SearchCases(context.Background(), testSearchParams(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, crawler.ErrSearch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.True(t, l.sessions[0].closed)
			assert.FileExists(t, n.config.ScreenshotPath)
		})
	}
}

func TestSearchCasesScreenshotFailureKeepsSearchError(t *testing.T) {
	l := &fakeLauncher{next: func() *fakeSession {
		s := searchSession()
		s.errs["present #reportOrde"] = context.DeadlineExceeded
		s.errs["screenshot "] = errors.New("browser crashed")
		return s
	}}
	n, _ := newTestNavigator(t, l, StaticSolver("abcd"))

	_, err := n.SearchCases(context.Background(), testSearchParams(t))
	assert.ErrorIs(t, err, crawler.ErrTimeout)
	assert.NoFileExists(t, n.config.ScreenshotPath)
	assert.True(t, l.sessions[0].closed)
}

func TestSearchCasesUnknownCategory(t *testing.T) {
	l := &fakeLauncher{next: searchSession}
	n, _ := newTestNavigator(t, l, StaticSolver("abcd"))

	params := testSearchParams(t)
	params.Category = SearchCategory{Key: "lawyer", Code: "9"}

	_, err := n.SearchCases(context.Background(), params)
	assert.ErrorIs(t, err, crawler.ErrUnknownSearchCategory)
	assert.Empty(t, l.launches)
}

func TestSearchCasesLaunchFailure(t *testing.T) {
	l := &fakeLauncher{err: crawler.ErrLaunch}
	n, _ := newTestNavigator(t, l, StaticSolver("abcd"))

	_, err := n.SearchCases(context.Background(), testSearchParams(t))
	assert.ErrorIs(t, err, crawler.ErrSearch)
	assert.ErrorIs(t, err, crawler.ErrLaunch)
}

type capturedLogRow struct {
	args []any
}

type capturingExecer struct {
	rows chan capturedLogRow
}

func (c *capturingExecer) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	c.rows <- capturedLogRow{args: args}
	return pgconn.CommandTag{}, nil
}

func TestFailureLogsCarrySessionID(t *testing.T) {
	conn := &capturingExecer{rows: make(chan capturedLogRow, 8)}
	previous := log.Logger
	log.Logger = zerolog.New(io.Discard).Hook(logger.NewDatabaseLogHook(conn))
	t.Cleanup(func() { log.Logger = previous })

	l := &fakeLauncher{next: func() *fakeSession {
		s := referenceSession()
		s.errs["clickable #stateId"] = context.DeadlineExceeded
		return s
	}}
	n, _ := newTestNavigator(t, l, StaticSolver(""))

	_, err := n.FetchStates(context.Background())
	require.ErrorIs(t, err, crawler.ErrNotReady)

	select {
	case row := <-conn.rows:
		require.Len(t, row.args, 6)
		sessionID, ok := row.args[3].(*string)
		require.True(t, ok)
		require.NotNil(t, sessionID)
		assert.Equal(t, l.sessions[0].ID(), *sessionID)
		assert.Equal(t, "error", row.args[1])
	case <-time.After(2 * time.Second):
		t.Fatal("failure was not persisted")
	}
}
