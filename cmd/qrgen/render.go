package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"qrstudio/internal/content"
	"qrstudio/internal/storage"
)

type renderOptions struct {
	request   string
	out       string
	dataURI   bool
	file      string
	logo      string
	uploadDir string
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one request to a PNG file or a data URI",
		Example: `  qrgen render --request wifi.json --out wifi.png
  echo '{"type":"Website","text":"https://example.com"}' | qrgen render --data-uri`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.request, "request", "r", "-", "request JSON file, - for stdin")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "PNG output path")
	cmd.Flags().BoolVar(&opts.dataURI, "data-uri", false, "print the data URI to stdout")
	cmd.Flags().StringVar(&opts.file, "file", "", "PDF document to stage for PDF requests")
	cmd.Flags().StringVar(&opts.logo, "logo", "", "logo image to embed")
	cmd.Flags().StringVar(&opts.uploadDir, "upload-dir", "uploads", "directory for staged documents")
	return cmd
}

func runRender(ctx context.Context, opts renderOptions, stdin io.Reader, stdout io.Writer) error {
	if opts.out == "" && !opts.dataURI {
		return fmt.Errorf("either --out or --data-uri is required")
	}
	raw, err := readInput(opts.request, stdin)
	if err != nil {
		return err
	}
	var req content.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	if opts.logo != "" {
		if req.LogoFile, err = os.ReadFile(opts.logo); err != nil {
			return fmt.Errorf("read logo: %w", err)
		}
	}
	if opts.file != "" {
		if req.File, err = stageFile(ctx, opts.uploadDir, opts.file); err != nil {
			return err
		}
	}

	gen, err := newGenerator()
	if err != nil {
		return err
	}
	res, err := gen.Generate(ctx, &req)
	if err != nil {
		return err
	}

	if opts.out != "" {
		if err := os.WriteFile(opts.out, res.PNG, 0o644); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		zerolog.Ctx(ctx).Info().
			Str("kind", res.Kind.String()).
			Str("out", opts.out).
			Str("size", humanize.Bytes(uint64(len(res.PNG)))).
			Msg("qrcode written")
	}
	if opts.dataURI {
		if _, err := fmt.Fprintln(stdout, res.DataURI); err != nil {
			return err
		}
	}
	return nil
}

func stageFile(ctx context.Context, dir, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	store, err := storage.NewFileStore(dir)
	if err != nil {
		return "", err
	}
	return store.Stage(ctx, filepath.Base(path), data)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	return data, nil
}

func parseBytes(s string) (int64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}
