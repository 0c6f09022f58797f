package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/highshore/one-cup-eng-sub002/config"
	"github.com/highshore/one-cup-eng-sub002/internal/ffmpeg"
	"github.com/highshore/one-cup-eng-sub002/internal/playback"
	"github.com/highshore/one-cup-eng-sub002/internal/reader"
	"github.com/highshore/one-cup-eng-sub002/internal/textindex"
	"github.com/highshore/one-cup-eng-sub002/models"
)

const probeTimeout = 30 * time.Second

type inspectFlags struct {
	file     string
	simulate bool
	step     float64
	probe    bool
}

func newInspectCmd(load func() (*config.Config, error)) *cobra.Command {
	var flags inspectFlags
	cmd := &cobra.Command{
		Use:   "inspect [article-id]",
		Short: "Report how an article's narration aligns with its text",
		Long: "Inspect builds the reading index of an article under both paragraph\n" +
			"break conventions and reports character map coverage, stream lengths\n" +
			"and whether highlighting would fall back to time estimation.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.file == "" && len(args) == 0 {
				return errors.New("an article id or --file is required")
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			logger := config.NewLogger(cfg.Log.Level)
			logger.SetOutput(cmd.ErrOrStderr())

			article, err := loadInspectArticle(cmd.Context(), cfg, logger, flags.file, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			report(out, article, flags.probe)
			if flags.simulate {
				return simulate(cmd.Context(), out, article, cfg.Reading, flags.step, logger)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.file, "file", "", "read the article from a JSON file instead of the store")
	cmd.Flags().BoolVar(&flags.simulate, "simulate", false, "play the narration on a simulated clock and print each highlighted word")
	cmd.Flags().Float64Var(&flags.step, "step", 0.05, "simulated seconds per frame")
	cmd.Flags().BoolVar(&flags.probe, "probe", true, "measure the audio duration with ffprobe when it is installed")
	return cmd
}

func loadInspectArticle(ctx context.Context, cfg *config.Config, logger *logrus.Logger, file string, args []string) (*models.Article, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read article file: %w", err)
		}
		var article models.Article
		if err := json.Unmarshal(data, &article); err != nil {
			return nil, fmt.Errorf("failed to decode article file: %w", err)
		}
		article.Normalize()
		return &article, nil
	}

	svc, err := newServices(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer svc.Close()
	return svc.store.GetArticle(ctx, args[0])
}

func report(out io.Writer, article *models.Article, probe bool) {
	fmt.Fprintf(out, "article   %s\n", article.ID)
	fmt.Fprintf(out, "paragraphs %d\n", len(article.Content.English))
	if !article.HasAudio() {
		fmt.Fprintln(out, "no narration")
		return
	}

	track := article.Audio.Track()
	chars := article.Audio.CharacterStream()
	fmt.Fprintf(out, "timestamps %d, narration characters %d\n", len(track), len(chars))
	if n := len(track); n > 0 {
		fmt.Fprintf(out, "last timestamp ends at %.3fs\n", track[n-1].End)
	}

	for _, bw := range []int{0, 1} {
		h := textindex.NewHighlighter(article, bw)
		a := h.Alignment()
		mode := "exact"
		if !a.Exact {
			mode = "estimated"
		}
		fmt.Fprintf(out, "break %d: offsets %v stream %d delta %+d coverage %.1f%% highlight %s\n",
			bw, h.Index().Offsets(), a.StreamLength, a.Delta, 100*h.CharacterMap().Coverage(chars), mode)
	}

	if !probe {
		return
	}
	if !ffmpeg.Available() {
		fmt.Fprintln(out, "ffprobe not installed, skipping duration probe")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	info, err := ffmpeg.ProbeAudio(ctx, article.Audio.URL)
	if err != nil {
		fmt.Fprintf(out, "probe failed: %v\n", err)
		return
	}
	fmt.Fprintf(out, "audio duration %.3fs\n", info.Duration.Seconds())
}

// simulate plays the narration on a simulated source driven frame by frame
// and prints every change of highlighted word.
func simulate(ctx context.Context, out io.Writer, article *models.Article, rc config.ReadingConfig, step float64, logger *logrus.Logger) error {
	if !article.HasAudio() {
		return reader.ErrNoAudio
	}
	if step <= 0 {
		step = 0.05
	}
	duration := 0.0
	if track := article.Audio.Track(); len(track) > 0 {
		duration = track[len(track)-1].End
	}

	var src *playback.SimulatedSource
	sched := playback.NewManualScheduler()
	opts := readerOptions(rc)
	opts.Audio = func(url string) (playback.Source, error) {
		src = playback.NewSimulatedSource(url, duration)
		return src, nil
	}
	opts.Scheduler = sched
	opts.Viewport = reader.NewWindowViewport(2)
	opts.Document = reader.NewHeadlessDocument()
	opts.Logger = logger
	c := reader.NewController(opts)
	defer c.Close()

	c.Open(article)
	if err := c.ToggleAudio(ctx); err != nil {
		return err
	}
	clock := c.Clock()
	if err := clock.Play(); err != nil {
		return err
	}
	clock.Settle()

	ix := c.Highlighter().Index()
	var last textindex.WordRef
	seen := false
	for clock.Playing() {
		src.Advance(step)
		sched.Step()
		snap := clock.Snapshot()
		hl := snap.Highlight
		if !hl.Active || (seen && hl.Word == last) {
			continue
		}
		last, seen = hl.Word, true
		tag := ""
		if hl.Estimated {
			tag = " (estimated)"
		}
		fmt.Fprintf(out, "%8.3fs  p%d w%d  %s%s\n", snap.CurrentTime, hl.Word.Paragraph, hl.Word.Word, ix.Word(hl.Word), tag)
	}
	return nil
}
