package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"picgrid/internal/datastore"
	"picgrid/internal/domain"
	"picgrid/internal/filters"
	"picgrid/internal/storage"
	"picgrid/internal/theme"
)

var (
	dbPathFlag   string
	dataFlag     string
	localeFlag   string
	store        storage.Store
	loadTimeout  = 30 * time.Second
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// StoreOpener returns the settings store used by the theme commands
type StoreOpener func(dbPath string) (storage.Store, error)

func cliLogger(format string, args ...interface{}) {
	log.Printf("[picgrid-cli] "+format, args...)
}

// NewRootCmd creates the root command. openStore is called lazily by the
// commands that need settings so tests can hand in a Memory store.
func NewRootCmd(openStore StoreOpener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "picgrid-cli",
		Short:        "picgrid CLI - query gallery data and manage settings",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "dbpath", "", "Path to the settings database")

	rootCmd.AddCommand(newFilterCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newThemeCmd(openStore))
	return rootCmd
}

func loadGallery(cmd *cobra.Command) (*datastore.Store, error) {
	if dataFlag == "" {
		return nil, fmt.Errorf("--data is required")
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), loadTimeout)
	defer cancel()
	return datastore.Load(ctx, dataFlag)
}

func newFilterCmd() *cobra.Command {
	var (
		queryFlag    string
		searchFlag   string
		categoryFlag string
		sortFlag     string
		orderFlag    string
		jsonFlag     bool
	)
	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "Print the images matching a search, category and sort order",
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := filters.ParseQuery(queryFlag)
			if err != nil {
				return fmt.Errorf("invalid --query: %w", err)
			}
			// Explicit flags win over --query
			overrides := map[string]string{
				"search":   filters.ParamSearch,
				"category": filters.ParamCategory,
				"sort":     filters.ParamSort,
				"order":    filters.ParamOrder,
			}
			flagValues := map[string]string{
				"search":   searchFlag,
				"category": categoryFlag,
				"sort":     sortFlag,
				"order":    orderFlag,
			}
			for name, param := range overrides {
				if cmd.Flags().Changed(name) {
					values.Set(param, flagValues[name])
				}
			}
			criteria := filters.DecodeQuery(values)

			gallery, err := loadGallery(cmd)
			if err != nil {
				return err
			}
			images := filters.ApplyCriteria(gallery.Images(), criteria, localeFlag)

			if jsonFlag {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(images)
			}
			if len(images) == 0 {
				cmd.Println("No images match the current filters.")
				return nil
			}
			cmd.Println(imageTable(images))
			summary := fmt.Sprintf("%d of %d images", len(images), len(gallery.Images()))
			if q := filters.EncodeQuery(criteria).Encode(); q != "" {
				summary += "  ?" + q
			}
			cmd.Println(summary)
			return nil
		},
	}
	filterCmd.Flags().StringVarP(&queryFlag, "query", "q", "", "Filters as a query string, e.g. \"search=sun&sort=date\"")
	filterCmd.Flags().StringVarP(&searchFlag, "search", "s", "", "Search term")
	filterCmd.Flags().StringVar(&categoryFlag, "category", "", "Category (empty for all)")
	filterCmd.Flags().StringVar(&sortFlag, "sort", "", "Sort key: name, date or category")
	filterCmd.Flags().StringVar(&orderFlag, "order", "", "Sort order: asc or desc")
	filterCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the result as JSON")
	addDataFlags(filterCmd)
	return filterCmd
}

func imageTable(images []domain.Image) string {
	rows := make([][]string, 0, len(images))
	for _, img := range images {
		rows = append(rows, []string{
			img.ID,
			img.Title(),
			img.Category,
			img.DateAdded,
			strings.Join(img.Tags, ", "),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "FILENAME", "CATEGORY", "ADDED", "TAGS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

func newValidateCmd() *cobra.Command {
	var strictFlag bool
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Load gallery data and report problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			gallery, err := loadGallery(cmd)
			if err != nil {
				return err
			}
			images := gallery.Images()
			declared := gallery.Categories()
			cmd.Printf("%s: %d images, %d categories\n", gallery.Source(), len(images), len(declared))

			known := make(map[string]bool, len(declared))
			for _, c := range declared {
				known[c] = true
			}
			for _, cc := range gallery.CategoryCounts() {
				cmd.Printf("  %-20s %d\n", cc.Name, cc.Count)
			}

			warnings := validateImages(gallery, known)
			for _, w := range warnings {
				cmd.Println(warningStyle.Render("warning: " + w))
			}
			if len(warnings) == 0 {
				cmd.Println("OK")
				return nil
			}
			if strictFlag {
				return fmt.Errorf("%d problems found", len(warnings))
			}
			cmd.Printf("%d warnings\n", len(warnings))
			return nil
		},
	}
	validateCmd.Flags().BoolVar(&strictFlag, "strict", false, "Exit with an error when warnings are found")
	addDataFlags(validateCmd)
	return validateCmd
}

// validateImages reports data the gallery tolerates but that is probably wrong
func validateImages(gallery *datastore.Store, known map[string]bool) []string {
	var warnings []string
	epoch := time.Unix(0, 0).UTC()
	seen := make(map[string]bool)
	remote := datastore.IsRemote(gallery.Source())
	for _, img := range gallery.Images() {
		name := img.Title()
		if img.ID == "" {
			warnings = append(warnings, fmt.Sprintf("%s: missing id", name))
		} else if seen[img.ID] {
			warnings = append(warnings, fmt.Sprintf("%s: duplicate id %q", name, img.ID))
		}
		seen[img.ID] = true
		if img.Category != "" && !known[img.Category] {
			warnings = append(warnings, fmt.Sprintf("%s: category %q is not declared", name, img.Category))
		}
		if filters.ParseDate(img.DateAdded).Equal(epoch) {
			warnings = append(warnings, fmt.Sprintf("%s: invalid date %q", name, img.DateAdded))
		}
		if remote || img.Path == "" {
			continue
		}
		if _, err := os.Stat(gallery.ResolvePath(img.Path)); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: image file not found", name))
		}
	}
	return warnings
}

func addDataFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&dataFlag, "data", "d", "", "Gallery metadata file or URL")
	cmd.Flags().StringVar(&localeFlag, "locale", "en", "Collation locale for name and category sorting")
}

func newThemeCmd(openStore StoreOpener) *cobra.Command {
	var controller *theme.Controller
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect or change the stored theme",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			store, err = openStore(dbPathFlag)
			if err != nil {
				return fmt.Errorf("failed to open settings: %w", err)
			}
			controller = theme.New(store, nil, nil, theme.WithSystemDark(lipgloss.HasDarkBackground()))
			return nil
		},
	}

	report := func(cmd *cobra.Command) {
		cmd.Printf("theme: %s (effective %s)\n", controller.Mode(), controller.Effective())
	}

	themeCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the stored and effective theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report(cmd)
			return nil
		},
	})

	themeCmd.AddCommand(&cobra.Command{
		Use:       "set [light|dark|auto]",
		Short:     "Store a theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.ThemeLight), string(domain.ThemeDark), string(domain.ThemeAuto)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !controller.SetTheme(args[0]) {
				return fmt.Errorf("invalid theme %q: expected light, dark or auto", args[0])
			}
			report(cmd)
			return nil
		},
	})

	themeCmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Advance light, dark, auto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			controller.Toggle()
			report(cmd)
			return nil
		},
	})

	themeCmd.AddCommand(&cobra.Command{
		Use:   "export [file]",
		Short: "Write the theme settings as JSON to file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(controller.ExportSettings(), "", "  ")
			if err != nil {
				return err
			}
			if len(args) == 0 {
				cmd.Println(string(data))
				return nil
			}
			if err := os.WriteFile(args[0], append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[0], err)
			}
			cmd.Printf("Exported to %s\n", args[0])
			return nil
		},
	})

	themeCmd.AddCommand(&cobra.Command{
		Use:   "import [file]",
		Short: "Apply theme settings exported earlier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			var settings theme.Settings
			if err := json.Unmarshal(data, &settings); err != nil {
				return fmt.Errorf("invalid settings file: %w", err)
			}
			if !controller.ImportSettings(settings) {
				return fmt.Errorf("invalid theme %q in %s", settings.Theme, args[0])
			}
			report(cmd)
			return nil
		},
	})

	themeCmd.AddCommand(&cobra.Command{
		Use:   "system [light|dark]",
		Short: "Record the system appearance used by auto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dark bool
			switch args[0] {
			case "dark":
				dark = true
			case "light":
			default:
				return fmt.Errorf("invalid appearance %q: expected light or dark", args[0])
			}
			if err := store.Set(storage.KeySystemAppearance, theme.Appearance(dark)); err != nil {
				return fmt.Errorf("failed to store appearance: %w", err)
			}
			controller.SystemChanged(dark)
			report(cmd)
			return nil
		},
	})

	return themeCmd
}

func main() {
	openStore := func(dbPath string) (storage.Store, error) {
		s, err := storage.Open(dbPath, false)
		if err != nil {
			cliLogger("settings unavailable, changes will not persist: %v", err)
		}
		return s, nil
	}
	rootCmd := NewRootCmd(openStore)
	rootCmd.SetOut(os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
