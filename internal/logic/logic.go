// Package logic runs encryption and decryption over form files.
package logic

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/formcipher/internal/config"
	"github.com/idelchi/formcipher/internal/form"
	"github.com/idelchi/formcipher/internal/item"
	"github.com/idelchi/formcipher/internal/layered"
	"github.com/idelchi/formcipher/internal/logger"
	"github.com/idelchi/formcipher/internal/primitive"
)

// Run encrypts or decrypts every form file selected by cfg.
//
//nolint:cyclop,gocognit // parallel processing pipeline with printer goroutine
func Run(cfg *config.Config, log *logger.Logger) error {
	start := time.Now()

	files, scanned, err := resolveFiles(cfg)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	p, err := primitive.New(cfg.Primitive)
	if err != nil {
		return fmt.Errorf("creating primitive: %w", err)
	}

	runner := &runner{
		cfg:       cfg,
		binding:   cfg.Binding(),
		overrides: cfg.Overrides(),
		processor: item.NewProcessor(
			layered.New(p, layered.WithLogger(log.Named("layered"))),
			log.Named("item"),
		),
	}

	log.Debug().Int("files", len(files)).Str("primitive", cfg.Primitive).Bool("decrypt", cfg.Decrypt).Msg("starting")

	type result struct {
		input      string
		output     string
		level      *layered.Level
		outputSize int64
		err        error
	}

	results := make(chan result, len(files))

	group := errgroup.Group{}
	group.SetLimit(cfg.Parallel)

	printed := make(chan struct{})

	var processed, errored int

	var totalSize int64

	success := color.New(color.FgGreen)
	failure := color.New(color.FgRed)

	go func() {
		defer close(printed)

		for res := range results {
			if res.err != nil {
				errored++

				failure.Fprintf(os.Stderr, "Error processing %q: %v\n", res.input, res.err) //nolint:errcheck

				continue
			}

			processed++

			totalSize += res.outputSize

			if !cfg.Quiet {
				success.Printf("Processed %q -> %q (level %s)\n", res.input, res.output, layered.Format(res.level)) //nolint:errcheck
			}

			if cfg.Delete {
				if err := os.Remove(res.input); err != nil {
					failure.Fprintf(os.Stderr, "Error deleting %q: %v\n", res.input, err) //nolint:errcheck
				} else if !cfg.Quiet {
					fmt.Printf("Deleted %q\n", res.input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range files {
		group.Go(func() error {
			outPath := outputPath(file, cfg)

			level, size, err := runner.processFile(file, outPath)
			if err != nil {
				results <- result{input: file, level: level, err: err}

				return err
			}

			results <- result{input: file, output: outPath, level: level, outputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(results)

	<-printed

	if cfg.Stats {
		printStats(scanned, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("processing forms: %w", err)
	}

	return nil
}

type runner struct {
	cfg       *config.Config
	binding   item.Binding
	overrides layered.Keys
	processor *item.Processor
}

// processFile transforms one form and writes it to outPath.
func (r *runner) processFile(filename, outPath string) (*layered.Level, int64, error) {
	doc, err := form.Load(filename)
	if err != nil {
		return nil, 0, err
	}

	var outcome item.Outcome

	if r.cfg.Decrypt {
		outcome = r.processor.DecryptItem(doc, r.binding, r.overrides)
	} else {
		outcome = r.processor.EncryptItem(doc, r.binding, r.overrides)
	}

	if !outcome.OK() {
		return outcome.Level, 0, fmt.Errorf("%s: %w", outcome.Status, outcome.Err)
	}

	r.binding.Apply(doc, outcome)

	size, err := doc.Save(outPath, filename)
	if err != nil {
		return outcome.Level, 0, err
	}

	return outcome.Level, size, nil
}

func outputPath(filename string, cfg *config.Config) string {
	ext := cfg.EncryptExt

	if cfg.Decrypt {
		filename = strings.TrimSuffix(filename, cfg.EncryptExt)
		ext = cfg.DecryptExt
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}

func printStats(scanned, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
