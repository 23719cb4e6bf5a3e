package jagriti

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/LexiconIndonesia/jagriti-case-service/common/crawler"
)

type fakeLauncher struct {
	mu       sync.Mutex
	sessions []*fakeSession
	launches []crawler.LaunchOptions
	err      error
	// next builds the session handed out on each launch
	next func() *fakeSession
}

func (l *fakeLauncher) Launch(_ context.Context, opts crawler.LaunchOptions) (crawler.Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.launches = append(l.launches, opts)
	if l.err != nil {
		return nil, l.err
	}
	s := newFakeSession()
	if l.next != nil {
		s = l.next()
	}
	s.id = fmt.Sprintf("session-%d", len(l.sessions)+1)
	l.sessions = append(l.sessions, s)
	return s, nil
}

type fakeSession struct {
	id      string
	actions []string
	closed  bool

	// posts maps an endpoint to its raw response body
	posts    map[string]string
	postErr  error
	bodies   []string
	html     string
	shot     []byte
	shotErr  error
	errs     map[string]error
	waitDurs map[string]time.Duration
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		posts:    map[string]string{},
		errs:     map[string]error{},
		waitDurs: map[string]time.Duration{},
		shot:     []byte("png-bytes"),
	}
}

func (s *fakeSession) record(action string) error {
	s.actions = append(s.actions, action)
	return s.errs[action]
}

func (s *fakeSession) ID() string {
	return s.id
}

func (s *fakeSession) Navigate(_ context.Context, url string) error {
	return s.record("navigate " + url)
}

func (s *fakeSession) WaitClickable(_ context.Context, selector string, timeout time.Duration) error {
	s.waitDurs["clickable "+selector] = timeout
	return s.record("clickable " + selector)
}

func (s *fakeSession) WaitPresent(_ context.Context, selector string, timeout time.Duration) error {
	s.waitDurs["present "+selector] = timeout
	return s.record("present " + selector)
}

func (s *fakeSession) WaitCondition(_ context.Context, _ string, timeout time.Duration) error {
	s.waitDurs["condition"] = timeout
	return s.record("condition")
}

func (s *fakeSession) Click(_ context.Context, selector string) error {
	return s.record("click " + selector)
}

func (s *fakeSession) Select(_ context.Context, selector, value string) error {
	return s.record("select " + selector + "=" + value)
}

func (s *fakeSession) Input(_ context.Context, selector, text string) error {
	return s.record("input " + selector + "=" + text)
}

func (s *fakeSession) PostForm(_ context.Context, path, body string) (string, error) {
	s.bodies = append(s.bodies, body)
	if err := s.record("post " + path); err != nil {
		return "", err
	}
	if s.postErr != nil {
		return "", s.postErr
	}
	raw, ok := s.posts[path]
	if !ok {
		return "", errors.New("unexpected endpoint " + path)
	}
	return raw, nil
}

func (s *fakeSession) HTML(_ context.Context) (string, error) {
	return s.html, s.record("html")
}

func (s *fakeSession) Screenshot(_ context.Context, selector string) ([]byte, error) {
	if err := s.record("screenshot " + selector); err != nil {
		return nil, err
	}
	return s.shot, s.shotErr
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

type upload struct {
	bucket      string
	object      string
	content     []byte
	contentType string
}

type fakeStorage struct {
	uploads []upload
}

func (f *fakeStorage) Upload(_ context.Context, bucket, objectName string, content []byte, contentType string) (string, error) {
	f.uploads = append(f.uploads, upload{bucket, objectName, content, contentType})
	return objectName, nil
}

func (f *fakeStorage) StreamUpload(ctx context.Context, bucket, objectName string, reader io.Reader, contentType string) (string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return f.Upload(ctx, bucket, objectName, content, contentType)
}

type recordingSolver struct {
	answer     string
	err        error
	challenges []CaptchaChallenge
}

func (r *recordingSolver) Solve(_ context.Context, c CaptchaChallenge) (string, error) {
	r.challenges = append(r.challenges, c)
	return r.answer, r.err
}
