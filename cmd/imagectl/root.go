package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"imagestudio/internal/catalog"
	"imagestudio/internal/domain"
	"imagestudio/internal/imagegen"
	"imagestudio/internal/infra"
)

type globalOptions struct {
	OutputDir string
	Language  string
	JSON      bool
	Verbose   bool
}

// app is built once per invocation by the root pre-run hook.
type app struct {
	opts    globalOptions
	cfg     *infra.Config
	gateway *imagegen.Gateway
	out     io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{out: os.Stdout}
	root := &cobra.Command{
		Use:          "imagectl",
		Short:        "Generate images from text, with a local fallback when the remote API is unavailable",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.out = cmd.OutOrStdout()
			return a.init(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&a.opts.OutputDir, "output-dir", "o", "", "directory for generated images (overrides OUTPUT_DIR)")
	root.PersistentFlags().StringVar(&a.opts.Language, "lang", "", "language for prompt suffixes and listings: en or zh (overrides PROMPT_LANGUAGE)")
	root.PersistentFlags().BoolVar(&a.opts.JSON, "json", false, "print results as JSON")
	root.PersistentFlags().BoolVarP(&a.opts.Verbose, "verbose", "v", false, "log pipeline decisions to stderr")

	root.AddCommand(
		newGenerateCmd(a),
		newVaryCmd(a),
		newListCmd(a, "styles"),
		newListCmd(a, "qualities"),
		newListCmd(a, "ratios"),
		newListCmd(a, "enhancers"),
	)
	return root
}

func (a *app) init(stderr io.Writer) error {
	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		return err
	}
	if a.opts.OutputDir != "" {
		cfg.OutputDir = a.opts.OutputDir
	}
	if a.opts.Language != "" {
		lang, ok := catalog.ParseLanguage(a.opts.Language)
		if !ok {
			return fmt.Errorf("--lang must be en or zh, got %q", a.opts.Language)
		}
		cfg.PromptLanguage = lang
	}

	logger := infra.NewLoggerTo(cfg.AppEnv, stderr).Level(zerolog.WarnLevel)
	if a.opts.Verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}
	gw, _, err := imagegen.NewFromConfig(cfg, &logger)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.gateway = gw
	return nil
}

func (a *app) printImages(imgs []domain.GeneratedImage) error {
	if a.opts.JSON {
		return a.printJSON(imgs)
	}
	for _, img := range imgs {
		fmt.Fprintf(a.out, "%s\t%dx%d\tseed=%d\t%s\n", img.Path, img.Width, img.Height, img.Seed, img.Source)
	}
	return nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
