package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ANSSI-FR/mdbook-checklist/internal/cite"
	"github.com/ANSSI-FR/mdbook-checklist/internal/mdbook"
)

var version = "0.2.0"

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "mdbook-cite",
})

var rootCmd = &cobra.Command{
	Use:   "mdbook-cite",
	Short: "mdbook preprocessor that resolves [@key] citations",
	Long: `An mdbook preprocessor.

Rewrites [@key] citations to links and appends a references section
built from each chapter's YAML front matter.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPreprocess,
}

var supportsCmd = &cobra.Command{
	Use:   "supports [renderer]",
	Short: "Check whether a renderer is supported by this preprocessor",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Always supported, exits 0.
	},
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	ctx, book, err := mdbook.ParseInput(os.Stdin)
	if err != nil {
		return err
	}
	if !ctx.VersionMatches() {
		logger.Warn("built against a different mdbook release",
			"host", ctx.MdbookVersion, "supported", mdbook.Version)
	}

	processed, err := cite.New(logger).Run(ctx, book)
	if err != nil {
		return err
	}
	return mdbook.WriteBook(os.Stdout, processed)
}

func main() {
	rootCmd.AddCommand(supportsCmd)
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
