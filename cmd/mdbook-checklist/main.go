package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ANSSI-FR/mdbook-checklist/internal/checklist"
	"github.com/ANSSI-FR/mdbook-checklist/internal/config"
	"github.com/ANSSI-FR/mdbook-checklist/internal/lint"
	"github.com/ANSSI-FR/mdbook-checklist/internal/mdbook"
	"github.com/ANSSI-FR/mdbook-checklist/internal/ui"
)

var version = "0.2.0"

// stdout carries the processed book back to mdbook, so all logging
// goes to stderr.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "mdbook-checklist",
})

var rootCmd = &cobra.Command{
	Use:   "mdbook-checklist",
	Short: "mdbook preprocessor that collects check marks into a checklist chapter",
	Long: `An mdbook preprocessor.

Invoked by mdbook with the [context, book] pair on stdin, it scans
every chapter for {{#check <id> | <description>}} marks and
recommendation divs, rewrites each mark to a linkable anchor, and
appends a generated checklist chapter indexing them all.

Run it standalone with "lint" or "browse" to inspect a book's checks
without building the book.`,
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
		// Text rewriting is renderer-agnostic: every renderer is
		// supported, so this always exits 0.
	},
}

var lintCmd = &cobra.Command{
	Use:   "lint [book-dir]",
	Short: "Scan the book sources and report all check marks",
	Long: `Scans the book's markdown sources directly, without mdbook,
and reports every check mark along with malformed directives and
duplicate identifiers. Exits non-zero when problems are found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

var browseCmd = &cobra.Command{
	Use:   "browse [book-dir]",
	Short: "Browse the book's check marks interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(supportsCmd, lintCmd, browseCmd)

	lintCmd.Flags().BoolP("watch", "w", false, "Re-run the scan when sources change")
	lintCmd.Flags().Duration("debounce", 300*time.Millisecond, "Delay before re-running after a change")
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

	processed, err := checklist.New(logger).Run(ctx, book)
	if err != nil {
		return err
	}
	return mdbook.WriteBook(os.Stdout, processed)
}

func bookDirArg(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if !config.BookDirExists(dir) {
		return "", fmt.Errorf("no such book directory: %s", dir)
	}
	return dir, config.Init(dir)
}

func runLint(cmd *cobra.Command, args []string) error {
	dir, err := bookDirArg(args)
	if err != nil {
		return err
	}
	src := config.SrcDir(dir)

	runOnce := func() (*lint.Report, error) {
		report, err := lint.Run(src)
		if err != nil {
			return nil, err
		}
		fmt.Print(report.Render())
		return report, nil
	}

	report, err := runOnce()
	if err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		debounce, _ := cmd.Flags().GetDuration("debounce")
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		err := lint.Watch(ctx, src, debounce, func() {
			if _, err := runOnce(); err != nil {
				logger.Error("lint failed", "err", err)
			}
		})
		if err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	}

	if !report.Clean() {
		return fmt.Errorf("%d problems, %d duplicate identifiers",
			len(report.Problems), len(report.Duplicates))
	}
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	dir, err := bookDirArg(args)
	if err != nil {
		return err
	}
	report, err := lint.Run(config.SrcDir(dir))
	if err != nil {
		return err
	}
	if report.Total() == 0 {
		return fmt.Errorf("no checks found under %s", config.SrcDir(dir))
	}
	return ui.Run(report)
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
