package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"picgrid/internal/config"
	"picgrid/internal/eventbus"
	"picgrid/internal/filters"
	"picgrid/internal/logging"
	"picgrid/internal/schedule"
	"picgrid/internal/storage"
	"picgrid/internal/ui"
)

var (
	dataFlag      string
	queryFlag     string
	configFlag    string
	noStorageFlag bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "picgrid [gallery.json]",
		Short:         "Browse an image gallery in the terminal",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataFlag == "" && len(args) > 0 {
				dataFlag = args[0]
			}
			return run(cmd)
		},
	}
	rootCmd.Flags().StringVarP(&dataFlag, "data", "d", "", "Gallery metadata file or URL")
	rootCmd.Flags().StringVarP(&queryFlag, "query", "q", "", "Initial filters, e.g. \"search=sun&sort=date&order=desc\"")
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Config file (default "+config.DefaultPath()+")")
	rootCmd.Flags().BoolVar(&noStorageFlag, "no-storage", false, "Do not read or persist the theme")
	return rootCmd
}

func run(cmd *cobra.Command) error {
	// Create event bus
	bus := eventbus.New()

	configSvc := config.NewConfigServiceWithBus(configFlag, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}

	// Set up logging before the TUI takes over the terminal
	logFile, err := logging.Setup(cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
	} else {
		defer logFile.Close()
	}
	logging.SetLevel(cfg.Logging.Level)

	source := cfg.DataSource
	if dataFlag != "" {
		source = dataFlag
	}
	query, err := filters.ParseQuery(queryFlag)
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}

	store, err := storage.Open(cfg.Storage.Path, noStorageFlag || cfg.Storage.Disabled)
	if err != nil {
		logging.Warn("Settings storage unavailable, theme will not persist: %v", err)
	}

	e2e := os.Getenv("PICGRID_E2E_TEST") == "1"
	// The background query goes unanswered in a bare pty
	systemDark := true
	if !e2e {
		systemDark = lipgloss.HasDarkBackground()
	}

	model := ui.NewModel(ui.Options{
		Config:     cfg,
		Bus:        bus,
		Storage:    store,
		Timer:      &schedule.Timer{},
		Source:     source,
		Query:      query,
		SystemDark: systemDark,
		E2E:        e2e,
	})

	log.Printf("Starting UI with %s", source)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	model.SetProgram(p)

	_, runErr := p.Run()
	model.Shutdown()
	if runErr != nil {
		log.Printf("Error running program: %v", runErr)
		return fmt.Errorf("error running program: %w", runErr)
	}
	log.Printf("UI exited normally")

	if q := model.Query(); q != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Resume with: picgrid --query '%s'\n", q[1:])
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
