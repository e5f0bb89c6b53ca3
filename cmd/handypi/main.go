package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lasaths/HandyPi/internal/app"
	"github.com/lasaths/HandyPi/internal/capture"
	"github.com/lasaths/HandyPi/internal/detector"
	"github.com/lasaths/HandyPi/internal/gesture"
	"github.com/lasaths/HandyPi/internal/messaging"
	"github.com/lasaths/HandyPi/internal/server"
	"github.com/lasaths/HandyPi/internal/store"
	"github.com/lasaths/HandyPi/internal/tray"
)

func main() {
	var (
		cameraID  = flag.Int("camera", 0, "camera device ID")
		width     = flag.Int("width", capture.DefaultWidth, "capture width")
		height    = flag.Int("height", capture.DefaultHeight, "capture height")
		variant   = flag.String("variant", string(store.VariantPinch), "gesture variant: pinch or raise")
		threshold = flag.Float64("threshold", 0, "activation threshold override (0 uses the stored profile)")
		motion    = flag.Float64("motion", 1.0, "motion percentage for the FPS governor (0 disables it)")
		headless  = flag.Bool("headless", false, "run without the preview window")
		useTray   = flag.Bool("tray", false, "show the system tray toggle")
		listen    = flag.String("listen", "", "status API listen address (empty disables it)")
		dbPath    = flag.String("db", "", "profile database path (default ~/.handypi/handypi.db)")
	)
	flag.Parse()

	fmt.Println("HandyPi - Gesture Event Tracker")

	// Broker settings may come from a .env file next to the binary.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	st, err := openStore(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	if err := st.Profiles().SeedDefaults(); err != nil {
		log.Fatalf("Failed to seed default profiles: %v", err)
	}

	profile, err := st.Profiles().GetByVariant(store.Variant(*variant))
	if err != nil {
		log.Fatalf("No enabled profile for variant %q: %v", *variant, err)
	}
	if *threshold > 0 {
		profile.Threshold = *threshold
	}

	measure, detectorVariant := measureFor(profile.Variant)

	det := newDetector(detectorVariant)
	defer det.Close()

	publisher := newPublisher()

	a := app.New(app.Config{
		Camera:    capture.NewCamera(*cameraID, *width, *height),
		Detector:  det,
		Measure:   measure,
		Publisher: publisher,
		Threshold: profile.Threshold,
		Display:   !*headless,
		// Motion only throttles the capture rate; detection still runs on
		// every processed frame.
		MotionThresh: *motion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *listen != "" {
		srv := server.New(server.Config{Store: st, Stats: a.Stats})
		go func() {
			log.Printf("Status API listening on %s", *listen)
			if err := srv.ListenAndServe(*listen); err != nil {
				log.Printf("Status API stopped: %v", err)
			}
		}()
	}

	log.Printf("Tracking %q (threshold %v) on camera %d", profile.Name, profile.Threshold, *cameraID)

	if *useTray {
		runWithTray(ctx, stop, a)
		return
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("Tracker stopped: %v", err)
	}
}

// runWithTray runs the pipeline in a goroutine and the tray event loop on
// the main goroutine, which macOS requires.
func runWithTray(ctx context.Context, stop context.CancelFunc, a *app.App) {
	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnQuit(stop)
	a.OnTrigger(t.SetLastTrigger)

	go func() {
		if err := a.Run(ctx); err != nil {
			log.Printf("Tracker stopped: %v", err)
		}
		t.Quit()
	}()

	t.Run()
}

// openStore opens the profile database, defaulting to ~/.handypi/handypi.db.
func openStore(path string) (*store.Store, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}

		dir := filepath.Join(homeDir, ".handypi")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		path = filepath.Join(dir, "handypi.db")
	}

	return store.New(path)
}

// measureFor maps a profile variant to its geometric measure and the
// keypoint model it needs.
func measureFor(variant store.Variant) (gesture.Measure, detector.Variant) {
	if variant == store.VariantRaise {
		return gesture.RaiseMeasure{}, detector.VariantBody
	}
	return gesture.PinchMeasure{}, detector.VariantHand
}

// newDetector prefers the Python keypoint service and falls back to the
// mock detector (which never sees a subject) when the service scripts are
// not installed, so the rest of the pipeline stays testable.
func newDetector(variant detector.Variant) detector.Detector {
	det, err := detector.NewServiceDetector(detector.DefaultConfig(variant))
	if err != nil {
		log.Printf("Keypoint service unavailable (%v), using mock detector", err)
		return detector.NewMockDetector()
	}
	return det
}

// newPublisher connects to the broker. If the broker is unreachable or the
// exchange topology conflicts, the tracker runs without publishing rather
// than not at all.
func newPublisher() messaging.Publisher {
	cfg, err := messaging.ParseConfig()
	if err != nil {
		log.Printf("Invalid broker configuration (%v), events will not be published", err)
		return messaging.NopPublisher{}
	}

	publisher, err := messaging.Connect(cfg)
	if err != nil {
		if errors.Is(err, messaging.ErrTopologyConflict) {
			log.Printf("Exchange topology conflict (%v), events will not be published", err)
		} else {
			log.Printf("Broker unreachable (%v), events will not be published", err)
		}
		return messaging.NopPublisher{}
	}

	log.Printf("Publishing events to exchange %q at %s:%d", cfg.ExchangeName, cfg.Host, cfg.Port)
	return publisher
}
