// cmd/codetutor/generate.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/julianshen/codetutor/internal/crawler"
	"github.com/julianshen/codetutor/internal/llm"
	"github.com/julianshen/codetutor/internal/provider"
	"github.com/julianshen/codetutor/internal/tutorial"
)

func generateCmd() *cobra.Command {
	var (
		repoFlag            string
		nameFlag            string
		outputFlag          string
		includeFlag         []string
		excludeFlag         []string
		maxSizeFlag         int64
		languageFlag        string
		maxAbstractionsFlag int
		noCacheFlag         bool
	)

	cmd := &cobra.Command{
		Use:   "generate [path]",
		Short: "Generate a tutorial from a codebase",
		Long: `Crawl a local directory (or a GitHub repository with --repo), identify its
core abstractions with an LLM, and write a linked tutorial under the output
directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			localDir := "."
			if len(args) > 0 {
				localDir = args[0]
			}
			if repoFlag != "" && len(args) > 0 {
				return fmt.Errorf("use either --repo or a local path, not both")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if outputFlag != "" {
				cfg.Tutorial.OutputDir = outputFlag
			}
			if languageFlag != "" {
				cfg.Tutorial.Language = languageFlag
			}
			if maxAbstractionsFlag > 0 {
				cfg.Tutorial.MaxAbstractions = maxAbstractionsFlag
			}
			if maxSizeFlag > 0 {
				cfg.Tutorial.MaxFileBytes = maxSizeFlag
			}

			opts := crawler.Options{
				Include:      includeFlag,
				Exclude:      excludeFlag,
				MaxFileBytes: cfg.Tutorial.MaxFileBytes,
			}

			var collector crawler.Collector
			if repoFlag != "" {
				collector, err = crawler.NewGitHub(repoFlag, os.Getenv("GITHUB_TOKEN"), opts)
				if err != nil {
					return fmt.Errorf("creating GitHub crawler: %w", err)
				}
			} else {
				collector = crawler.NewLocal(localDir, opts)
			}

			p, err := provider.NewProvider(cfg)
			if err != nil {
				return fmt.Errorf("creating provider: %w", err)
			}

			var gen llm.Generator = llm.NewRateLimited(
				llm.NewGenerator(p, cfg.Provider.Model, cfg.Provider.MaxTokens),
				cfg.Tutorial.RequestsPerMinute,
			)
			if !noCacheFlag {
				cachePath := cfg.Tutorial.CachePath
				if cachePath == "" {
					dir, err := configDir()
					if err != nil {
						return err
					}
					cachePath = filepath.Join(dir, "cache.db")
				}
				cache, err := llm.NewCache(gen, cachePath)
				if err != nil {
					return fmt.Errorf("opening response cache: %w", err)
				}
				defer cache.Close()
				gen = cache
			}

			state := &tutorial.Context{
				ProjectName:     nameFlag,
				RepoURL:         repoFlag,
				LocalDir:        localDir,
				Language:        cfg.Tutorial.Language,
				UseCache:        !noCacheFlag,
				MaxAbstractions: cfg.Tutorial.MaxAbstractions,
				OutputDir:       cfg.Tutorial.OutputDir,
			}

			return tutorial.Run(cmd.Context(), state, collector, gen)
		},
	}

	cmd.Flags().StringVar(&repoFlag, "repo", "", "GitHub repository URL to crawl instead of a local path")
	cmd.Flags().StringVar(&nameFlag, "name", "", "project name (derived from the source when empty)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output directory (default from config)")
	cmd.Flags().StringSliceVarP(&includeFlag, "include", "i", nil, "glob patterns of files to include (empty = all)")
	cmd.Flags().StringSliceVarP(&excludeFlag, "exclude", "e", nil, "glob patterns of files to exclude")
	cmd.Flags().Int64Var(&maxSizeFlag, "max-size", 0, "maximum file size in bytes (default from config)")
	cmd.Flags().StringVar(&languageFlag, "language", "", "tutorial language (default from config)")
	cmd.Flags().IntVar(&maxAbstractionsFlag, "max-abstractions", 0, "maximum number of abstractions (default from config)")
	cmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "disable the LLM response cache")

	return cmd
}
