package crawler

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RodLauncher launches local Chromium instances through go-rod
type RodLauncher struct {
	Config BrowserConfig
}

// NewRodLauncher creates a launcher with the given browser configuration
func NewRodLauncher(config BrowserConfig) *RodLauncher {
	return &RodLauncher{Config: config}
}

func (l *RodLauncher) newLauncher(ctx context.Context, opts LaunchOptions) *launcher.Launcher {
	ln := launcher.New().
		Context(ctx).
		Headless(opts.Headless)

	for _, f := range l.Config.Flags {
		ln = ln.Set(flags.Flag(f))
	}
	if l.Config.UserAgent != "" {
		ln = ln.Set("user-agent", l.Config.UserAgent)
	}
	if l.Config.Bin != "" {
		ln = ln.Bin(l.Config.Bin)
	}
	return ln
}

// Launch starts a browser process, connects to it and opens a blank page
func (l *RodLauncher) Launch(ctx context.Context, opts LaunchOptions) (Session, error) {
	id := uuid.NewString()
	logger := log.With().Str("sessionID", id).Bool("headless", opts.Headless).Logger()

	ln := l.newLauncher(ctx, opts)
	controlURL, err := ln.Launch()
	if err != nil {
		logger.Error().Err(err).Msgf("Error launching browser sessionID=%s", id)
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		logger.Error().Err(err).Msgf("Error connecting to browser sessionID=%s", id)
		ln.Kill()
		ln.Cleanup()
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		logger.Error().Err(err).Msgf("Error creating page sessionID=%s", id)
		_ = browser.Close()
		ln.Kill()
		ln.Cleanup()
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	logger.Info().Msg("Browser session started")

	return &rodSession{
		id:            id,
		launcher:      ln,
		browser:       browser,
		page:          page,
		actionTimeout: l.Config.ActionTimeout,
	}, nil
}
