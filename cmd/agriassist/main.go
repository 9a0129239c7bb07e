// Command agriassist is the interactive terminal client for the AgriAssist
// farm assessment service: a guided questionnaire, one-shot GPS auto-fill,
// submission to the analysis endpoint, and a tabbed, exportable strategy
// report.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agriassist/cmd/agriassist/survey"
	"agriassist/cmd/agriassist/ui"
	"agriassist/internal/advisory"
	"agriassist/internal/catalog"
	"agriassist/internal/config"
	"agriassist/internal/geo"
	"agriassist/internal/logging"
	"agriassist/internal/report"
	"agriassist/internal/session"
)

const version = "1.0.0"

var (
	// Global flags
	configPath string
	endpoint   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "agriassist",
	Short: "AgriAssist - Smart Agricultural Analysis",
	Long: `AgriAssist is a terminal client for the AgriAssist advisory service.

It walks a farmer through a six-module assessment (identity, land, finances,
symptoms, crop history, market), optionally auto-fills location data from the
device position, and submits the answers for analysis. The response is a
three-scenario advisory plan (low risk, balanced, high risk) shown as tabs
and exportable as a document.

Run without arguments to start the questionnaire.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSurvey()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agriassist v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.agriassist/config.json)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "analysis service base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug log files")
	rootCmd.AddCommand(versionCmd)
}

func runSurvey() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if verbose {
		cfg.Debug = true
	}

	logging.Init(config.Dir(), cfg.Debug)
	defer logging.Sync()
	boot := logging.Get(logging.CategoryBoot)

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
	}
	boot.Info("catalog loaded",
		zap.Int("modules", len(cat.Modules)),
		zap.Int("questions", len(cat.Questions)))

	// A missing positioning endpoint means no location capability; the GPS
	// control then reports that on use rather than at startup.
	var locator geo.Locator
	if l, err := geo.NewHTTPLocator(cfg.GeoEndpoint); err == nil {
		locator = l
	}

	client := advisory.NewClient(cfg.GetEndpoint(), logging.Get(logging.CategorySubmit))
	writer := report.NewMarkdownWriter(cfg.GetExportDir())
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	model := survey.New(survey.Options{
		Catalog:   cat,
		Session:   session.New(),
		Locator:   locator,
		Submitter: client,
		Writer:    writer,
		Styles:    styles,
	})

	boot.Info("starting TUI", zap.String("endpoint", cfg.GetEndpoint()))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
