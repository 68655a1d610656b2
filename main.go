package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/8secz-johndpope/Community-App-sub000/internal/applog"
	"github.com/8secz-johndpope/Community-App-sub000/internal/asset"
	"github.com/8secz-johndpope/Community-App-sub000/internal/config"
	"github.com/8secz-johndpope/Community-App-sub000/internal/engine"
	"github.com/8secz-johndpope/Community-App-sub000/internal/errmsg"
	"github.com/8secz-johndpope/Community-App-sub000/internal/lifecycle"
	"github.com/8secz-johndpope/Community-App-sub000/internal/notify"
	"github.com/8secz-johndpope/Community-App-sub000/internal/progress"
	"github.com/8secz-johndpope/Community-App-sub000/internal/remote"
	"github.com/8secz-johndpope/Community-App-sub000/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: %s <media-file>", os.Args[0])
	}
	url := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}

	applog.Configure(applog.Config{Level: cfg.LogLevel})
	log := applog.Base()

	storePath, err := progress.DefaultPath()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpProgressLoad, err))
	}
	store := progress.New(storePath, log)
	if err := store.Initialize(); err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpProgressLoad, err))
	}
	defer store.Shutdown()

	var render session.RenderTarget = session.NoSurface{}
	if cfg.RenderTarget == "video" {
		render = session.LogSurface{Log: log}
	}

	sess := session.New(engine.NewSim(), asset.FileResolver{}, session.Options{
		AutoPlay:        cfg.AutoPlay,
		Loop:            cfg.Loop,
		FreezeLastFrame: cfg.FreezeLastFrame,
		Render:          render,
		Logger:          &log,
	})
	defer sess.Close()

	sub := sess.Subscribe()
	defer sess.Unsubscribe(sub)

	publishers := remote.MultiPublisher{remote.LogPublisher{Log: log}}
	if notifier, err := notify.New(); err == nil {
		publishers = append(publishers, notify.NewNowPlayingPublisher(notifier))
	}
	binding := remote.NewBinding(cfg.SkipInterval(), publishers)
	binding.Bind(sess, "")
	defer binding.Close()

	mpris, err := remote.NewMPRIS(binding)
	if err != nil {
		log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpRemoteBind, err))
	} else {
		defer mpris.Close()
	}

	guard := lifecycle.NewGuard(sess, lifecycle.Options{
		BackgroundAudio: cfg.BackgroundAudio,
		Logger:          &log,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	lifecycleCh := make(chan lifecycle.Signal, 4)
	go guard.Run(ctx, lifecycleCh)

	// The host app shell would deliver these; for the demo, SIGUSR1/SIGUSR2
	// stand in for backgrounding and foregrounding.
	appState := make(chan os.Signal, 2)
	signal.Notify(appState, syscall.SIGUSR1, syscall.SIGUSR2)

	sess.Load(url)
	if resume, ok := store.ResumeTimestamp(url, progress.MediaTypeAudio); ok {
		log.Info().Dur("resume", resume).Msg("resuming from saved position")
		sess.Seek(resume)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case e := <-sub.Ready:
			log.Info().Dur("duration", e.Duration).Msg("item ready")
		case e := <-sub.TransportChanged:
			log.Info().Stringer("from", e.Previous).Stringer("to", e.Current).Msg("transport")
			if e.Current == session.TransportStopped && e.Previous == session.TransportPlaying {
				return saveProgress(store, sess, url, log)
			}
		case e := <-sub.BufferingChanged:
			log.Info().Stringer("state", e.Current).Bool("rebuffering", e.Rebuffering).Msg("buffering")
		case e := <-sub.PositionChanged:
			log.Debug().Dur("position", e.Position).Dur("duration", e.Duration).Msg("tick")
		case e := <-sub.Failed:
			return fmt.Errorf("%s", errmsg.FormatWith(errmsg.OpPlaybackStart, url, e.Err))
		case sig := <-appState:
			if sig == syscall.SIGUSR1 {
				lifecycleCh <- lifecycle.Background
			} else {
				lifecycleCh <- lifecycle.Foreground
			}
		case <-interrupt:
			sess.Pause()
			return saveProgress(store, sess, url, log)
		}
	}
}

func saveProgress(store *progress.Store, sess *session.Session, url string, log zerolog.Logger) error {
	snap := sess.Snapshot()
	pos := snap.Position
	if snap.Completed {
		// Natural completion rewinds the transport; record the full runtime.
		pos = snap.Duration
	}
	err := store.Upsert(url, progress.MediaTypeAudio, pos, sess.Progress())
	if err != nil {
		log.Error().Err(err).Msg(errmsg.Format(errmsg.OpProgressSave, err))
		return err
	}
	log.Info().
		Dur("timestamp", pos).
		Float64("progress", sess.Progress()).
		Bool("complete", store.IsComplete(url, progress.MediaTypeAudio)).
		Msg("progress saved")
	return nil
}
