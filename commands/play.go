package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sam-masaki/layout-speed/internal/core/playback"
	"github.com/sam-masaki/layout-speed/internal/presentation/display"
	"github.com/sam-masaki/layout-speed/internal/util"
)

var (
	playFile  string
	playSpeed float64
)

var playCmd = &cobra.Command{
	Use:   "play [flags] [text]",
	Short: "Replay the typing simulation in the terminal",
	Long: `Builds the full keyframe timeline for the text and animates every
finger on an on-screen keyboard, pressed keys highlighted, in real time.

The simulation clock can be scaled with --speed to slow down or speed up
the replay.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVarP(&playFile, "file", "f", "",
		"Read text to replay from a file")
	playCmd.Flags().Float64Var(&playSpeed, "speed", 1.0,
		"Playback speed multiplier (0.25 = quarter speed)")
}

// Display refresh interval, roughly 60 Hz.
const frameInterval = 16 * time.Millisecond

func runPlay(cmd *cobra.Command, args []string) error {
	initLogging()

	text, err := playInput(args)
	if err != nil {
		return err
	}
	if playSpeed <= 0 {
		return fmt.Errorf("--speed must be positive")
	}

	builder, err := newBuilder()
	if err != nil {
		return err
	}
	tl := builder.Build(text, true)
	sampler := playback.NewSampler(tl)
	view := display.NewKeyboardView(builder.Layout())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	view.EnterAltScreen()
	defer view.ExitAltScreen()

	util.LogInfof("Replaying %d keyframed chars over %s", tl.TotalChars, util.FormatMillis(tl.TotalTimeMs))

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			sampler.Advance(int64(float64(elapsed.Milliseconds()) * playSpeed))
			view.Render(sampler.Sample(), sampler.TimeMs())
			if sampler.Done() {
				// Hold the final frame briefly so the resting pose is visible.
				time.Sleep(500 * time.Millisecond)
				return nil
			}
		}
	}
}

func playInput(args []string) (string, error) {
	if playFile != "" && len(args) > 0 {
		return "", fmt.Errorf("pass either text or --file, not both")
	}
	if playFile != "" {
		data, err := os.ReadFile(expandPath(playFile))
		if err != nil {
			return "", fmt.Errorf("failed to read source file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("no input: pass text as an argument or use --file")
	}
	return args[0], nil
}
