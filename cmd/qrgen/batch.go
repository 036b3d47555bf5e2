package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"qrstudio/internal/content"
	"qrstudio/pkg/zip"
)

type batchOptions struct {
	requests  string
	out       string
	keepGoing bool
}

func newBatchCmd() *cobra.Command {
	var opts batchOptions
	cmd := &cobra.Command{
		Use:     "batch",
		Short:   "Render a JSON array of requests into a zip of PNG files",
		Example: `  qrgen batch --requests menu-week.json --out codes.zip`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd.Context(), opts, cmd.InOrStdin())
		},
	}
	cmd.Flags().StringVarP(&opts.requests, "requests", "r", "-", "JSON array of requests, - for stdin")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "qrcodes.zip", "zip output path")
	cmd.Flags().BoolVar(&opts.keepGoing, "keep-going", false, "skip requests that fail instead of aborting")
	return cmd
}

func runBatch(ctx context.Context, opts batchOptions, stdin io.Reader) error {
	log := zerolog.Ctx(ctx)
	raw, err := readInput(opts.requests, stdin)
	if err != nil {
		return err
	}
	var reqs []content.Request
	if err := json.Unmarshal(raw, &reqs); err != nil {
		return fmt.Errorf("parse requests: %w", err)
	}
	if len(reqs) == 0 {
		return fmt.Errorf("no requests in %s", opts.requests)
	}

	gen, err := newGenerator()
	if err != nil {
		return err
	}
	assets := make([]zip.Asset, 0, len(reqs))
	failed := 0
	for i := range reqs {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := gen.Generate(ctx, &reqs[i])
		if err != nil {
			if !opts.keepGoing {
				return fmt.Errorf("request %d: %w", i+1, err)
			}
			failed++
			log.Warn().Err(err).Int("index", i+1).Msg("request skipped")
			continue
		}
		assets = append(assets, zip.Asset{
			Filename: fmt.Sprintf("%03d-%s", i+1, res.Kind),
			MIME:     "image/png",
			Data:     res.PNG,
		})
	}
	if len(assets) == 0 {
		return fmt.Errorf("all %d requests failed", len(reqs))
	}

	archive, err := zip.ArchiveAssets(assets)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.out, archive, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	log.Info().
		Int("written", len(assets)).
		Int("failed", failed).
		Str("out", opts.out).
		Str("size", humanize.Bytes(uint64(len(archive)))).
		Msg("batch written")
	return nil
}
