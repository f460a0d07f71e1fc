package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/event"
	"github.com/oomph-ac/roam/platform"
	"github.com/oomph-ac/roam/render"
	"github.com/oomph-ac/roam/settings"
	"github.com/oomph-ac/roam/simulation"
	"github.com/oomph-ac/roam/worker"
	"github.com/oomph-ac/roam/world"
	"github.com/sirupsen/logrus"
)

// The following program walks a scripted player through the world on a headless platform and
// periodically prints the debug HUD.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ./roam <settings.toml> <optional: frames>")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:     false,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	logger.SetLevel(logrus.InfoLevel)
	if os.Getenv("ROAM_DEBUG") != "" {
		logger.SetLevel(logrus.DebugLevel)
	}
	slogLevel := slog.LevelInfo
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		slogLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(logger.Writer(), &slog.HandlerOptions{Level: slogLevel}))

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn, Release: "roam-headless"}); err != nil {
			logger.Fatalf("unable to initialize sentry: %v", err)
		}
		defer sentry.Flush(time.Second * 5)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	frames := 600
	if len(os.Args) >= 3 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n <= 0 {
			logger.Fatalf("invalid frame count %q", os.Args[2])
		}
		frames = n
	}

	conf := loadSettings(logger, os.Args[1])
	p := platform.NewStub()
	p.Input.(*platform.StubInput).Push(script(frames)...)

	var (
		recorder *event.Recorder
		replayer *event.Replayer
	)
	if path := os.Getenv("ROAM_REPLAY"); path != "" {
		rec := loadRecording(logger, path)
		conf.World.Seed, conf.World.ChunkSize, conf.Loop.TickRate = rec.Seed, rec.ChunkSize, rec.TickRate
		replayer = event.NewReplayer(rec)
		p = replayer.Wrap(p)
		logger.Infof("replaying %v", rec)
	} else if os.Getenv("ROAM_RECORD") != "" {
		recorder = event.NewRecorder()
		p = recorder.Wrap(p)
	}

	source, closeSource := newSource(logger, log, conf)
	defer closeSource()

	if dir := os.Getenv("ROAM_EXPORT_DIR"); dir != "" {
		if err := exportChunks(dir, source, conf.World.LoadRadius); err != nil {
			logger.Fatalf("unable to export chunks: %v", err)
		}
		logger.Infof("exported chunks to %s", dir)
	}

	pool := worker.NewPool(conf.World.LoadWorkers, log)
	defer pool.Close()
	w := world.New(world.Config{
		ChunkSize:  conf.World.ChunkSize,
		LoadRadius: conf.World.LoadRadius,
		Source:     source,
		Renderer:   p.Renderer,
		Pool:       pool,
		Logger:     log,
	})
	defer w.Close()

	opts := simulation.OptionsFromSettings(conf)
	if logger.IsLevelEnabled(logrus.TraceLevel) {
		opts.Debugf = logger.Tracef
	}
	opts.MarkerTexture = loadMarker(logger, log, source, conf)
	loop := simulation.New(p, w, opts, log)

	// Fill the starting neighbourhood before the first frame so the player spawns on solid ground.
	w.UpdateActiveChunks(loop.State().Camera.Position)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := w.Flush(ctx); err != nil {
		logger.Warnf("starting chunks still loading: %v", err)
	}
	cancel()

	start := time.Now()
	for i := 0; i < frames; i++ {
		if replayer != nil && replayer.Done() {
			break
		}
		loop.Frame()
		if st := loop.State(); st.DebugHUD && i%60 == 0 {
			logger.Info(simulation.FormatDebugInfo(loop.DebugInfo()))
		}
	}
	if recorder != nil {
		saveRecording(logger, recorder.Recording(conf.World.Seed, conf.World.ChunkSize, conf.Loop.TickRate))
	}

	stats := w.Stats()
	nr := p.Renderer.(*render.NullRenderer)
	logger.Infof("ran %d frames (%d ticks) in %v: %d chunks active, %d loaded, %d evicted, %d fallbacks, %d meshes live",
		nr.Frames, loop.State().Ticks, time.Since(start), stats.Active, stats.Loaded, stats.Evicted, stats.Fallbacks, nr.LiveMeshes())
}

func loadRecording(logger *logrus.Logger, path string) *event.Recording {
	f, err := os.Open(path)
	if err != nil {
		logger.Fatalf("unable to open recording: %v", err)
	}
	defer f.Close()

	rec, err := event.ReadRecording(f)
	if err != nil {
		logger.Fatalf("unable to decode recording: %v", err)
	}
	return rec
}

func saveRecording(logger *logrus.Logger, rec *event.Recording) {
	path := os.Getenv("ROAM_RECORD")
	f, err := os.Create(path)
	if err != nil {
		logger.Errorf("unable to create recording file: %v", err)
		return
	}
	defer f.Close()

	if err := event.WriteRecording(f, rec); err != nil {
		logger.Errorf("unable to write recording: %v", err)
		return
	}
	logger.Infof("saved %v to %s", rec, path)
}

func loadSettings(logger *logrus.Logger, path string) settings.Settings {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := settings.SaveDefault(path); err != nil {
			logger.Fatalf("unable to write default settings: %v", err)
		}
		logger.Infof("wrote default settings to %s", path)
	}
	conf, err := settings.Load(path)
	if err != nil {
		logger.Fatalf("unable to load settings: %v", err)
	}
	return conf
}

func newSource(logger *logrus.Logger, log *slog.Logger, conf settings.Settings) (world.Source, func()) {
	if conf.World.Source != settings.SourceFiles {
		return world.NewProceduralSource(uint64(conf.World.Seed), conf.World.ChunkSize), func() {}
	}
	src, err := world.NewFileSource(conf.World.ChunkDir, conf.World.AssetDir, log)
	if err != nil {
		logger.Fatalf("unable to open chunk directory: %v", err)
	}
	src.SharedLayout = conf.World.SharedLayout
	return src, src.Close
}

// loadMarker reads the pause transition marker from the asset directory. A missing marker only
// disables the transition overlay.
func loadMarker(logger *logrus.Logger, log *slog.Logger, source world.Source, conf settings.Settings) []byte {
	if conf.World.MarkerAsset == "" {
		return nil
	}
	src, ok := source.(*world.FileSource)
	if !ok {
		var err error
		if src, err = world.NewFileSource(conf.World.ChunkDir, conf.World.AssetDir, log); err != nil {
			logger.Warnf("unable to open asset directory: %v", err)
			return nil
		}
		defer src.Close()
	}
	data, err := src.LoadTexture(conf.World.MarkerAsset)
	if err != nil {
		logger.Warnf("unable to load transition marker: %v", err)
		return nil
	}
	return data
}

// exportChunks writes the neighbourhood of the origin as compressed chunk files readable by
// world.FileSource.
func exportChunks(dir string, source world.Source, radius int32) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, pos := range world.ChunksInRadius(nil, world.ChunkPos{}, radius) {
		d, err := source.Load(context.Background(), pos)
		if err != nil {
			return fmt.Errorf("chunk %v: %w", pos, err)
		}
		if err := world.SaveDescriptor(filepath.Join(dir, world.FileName(pos)+".json.zst"), d); err != nil {
			return err
		}
	}
	return nil
}

// script walks forward while slowly turning, shows the debug HUD and pauses once halfway.
func script(frames int) []platform.Intent {
	intents := make([]platform.Intent, frames)
	for i := range intents {
		in := &intents[i]
		in.Move = mgl32.Vec2{0, 1}
		in.Look.Yaw = 0.1
	}
	intents[0].ToggleDebugHUD = true
	if frames > 4 {
		intents[frames/2].Pause = true
		intents[frames/2+frames/4].Pause = true
	}
	return intents
}
