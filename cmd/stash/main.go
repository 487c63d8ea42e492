package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nlohse/stash/internal/culler"
	"github.com/nlohse/stash/internal/enhance"
	"github.com/nlohse/stash/internal/exporter"
	"github.com/nlohse/stash/internal/importer"
	"github.com/nlohse/stash/internal/model"
	"github.com/nlohse/stash/internal/picker"
	"github.com/nlohse/stash/internal/search"
	"github.com/nlohse/stash/internal/server"
	"github.com/nlohse/stash/internal/storage"
	"github.com/nlohse/stash/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: stash import <file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			format := "html"
			var outputPath string
			if len(os.Args) >= 3 {
				format = os.Args[2]
			}
			if len(os.Args) >= 4 {
				outputPath = os.Args[3]
			}
			runExport(format, outputPath)
			return
		case "enhance":
			runEnhance()
			return
		case "check":
			archive := len(os.Args) >= 3 && os.Args[2] == "--archive"
			runCheck(archive)
			return
		case "serve":
			runServe()
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `stash - bookmark manager

Usage:
  stash                      Open interactive TUI
  stash <query>              Quick search → select → open
  stash import <file>        Import bookmarks from HTML
  stash export [fmt] [path]  Export bookmarks (html, opml, json, page)
  stash enhance              Fetch descriptions, tags and screenshots
  stash check [--archive]    Check for dead links (optionally archive them)
  stash serve                Run the HTTP API server
  stash help                 Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom

  Actions:
    l/Enter     Open bookmark in browser
    Y           Copy URL to clipboard
    +/-         Like / dislike
    a           Archive bookmark
    A           Toggle archived visibility
    d           Delete
    /           Fuzzy filter
    t           Cycle tag filter
    o           Cycle sort mode
    q           Quit

Data Storage:
  ~/.config/stash/bookmarks.json (or bookmarks.db when present)
`
	fmt.Print(help)
}

// openStore loads the bookmark collection from the default backend.
func openStore() (storage.Storage, *model.Store) {
	back, err := storage.OpenStorage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	store, err := back.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}
	return back, store
}

func closeStore(back storage.Storage) {
	if c, ok := back.(io.Closer); ok {
		_ = c.Close()
	}
}

func saveStore(back storage.Storage, store *model.Store) {
	if err := back.Save(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving bookmarks: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() *storage.Config {
	path, err := storage.DefaultConfigFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config path: %v\n", err)
		os.Exit(1)
	}
	cfg, err := storage.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// runTUI runs the full interactive TUI.
func runTUI() {
	back, store := openStore()
	defer closeStore(back)

	app := tui.NewApp(tui.AppParams{Store: store})
	p := tea.NewProgram(app, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}

	finalApp := finalModel.(tui.App)
	saveStore(back, finalApp.Store())
}

// runQuickSearch performs a fuzzy search and opens the selected bookmark.
func runQuickSearch(query string) {
	back, store := openStore()
	defer closeStore(back)

	results := search.Bookmarks(store, query)
	if len(results) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", query)
		os.Exit(0)
	}

	var selected *model.Bookmark

	if len(results) == 1 {
		// Single result - select it directly
		selected = results[0].Bookmark
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		// Multiple results - show picker
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.SelectedBookmark()
	}

	if selected == nil {
		os.Exit(0)
	}

	if store.RecordVisit(selected.ID) {
		if err := back.Save(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving bookmarks: %v\n", err)
		}
	}

	if err := tui.OpenInBrowser(selected.URL); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening browser: %v\n", err)
	}
}

// runImport handles the import subcommand.
func runImport(filePath string) {
	back, store := openStore()
	defer closeStore(back)

	batch, err := importer.ParseFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}

	result := importer.Merge(store, batch, importer.MergeOptions{
		MergeMetadata: true,
		CleanTitles:   true,
	})
	saveStore(back, store)

	fmt.Printf("Imported %d bookmarks", len(result.Added))
	if result.Duplicates > 0 {
		fmt.Printf(" (%d duplicates merged)", result.Duplicates)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(format, outputPath string) {
	back, store := openStore()
	defer closeStore(back)

	var (
		out string
		err error
	)
	switch format {
	case "html":
		out = exporter.ExportHTML(store)
	case "opml":
		out, err = exporter.ExportOPML(store)
	case "json":
		out, err = exporter.ExportJSON(store)
	case "page":
		out, err = exporter.ExportPage(store)
	default:
		fmt.Fprintf(os.Stderr, "Unknown export format %q (want html, opml, json or page)\n", format)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		os.Exit(1)
	}

	if outputPath == "" {
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
		if format != "html" && format != "page" {
			outputPath = strings.TrimSuffix(outputPath, ".html") + "." + format
		}
	}

	if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d bookmarks to %s\n", len(store.Bookmarks), outputPath)
}

// runEnhance fetches metadata for the whole collection in batches.
func runEnhance() {
	cfg := loadConfig()
	back, store := openStore()
	defer closeStore(back)

	if len(store.Bookmarks) == 0 {
		fmt.Println("Nothing to enhance.")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	enhancer := enhance.New()
	if cfg.EnhanceBatchSize > 0 {
		enhancer.BatchSize = cfg.EnhanceBatchSize
	}

	result, err := enhancer.Enhance(ctx, store.Bookmarks, func(processed, total int) {
		fmt.Printf("\rEnhancing %d/%d", processed, total)
	})
	fmt.Println()

	store.Bookmarks = result.Bookmarks
	saveStore(back, store)

	if err != nil {
		fmt.Printf("Interrupted; progress so far was saved.\n")
		return
	}
	fmt.Printf("Enhanced %d bookmarks (%d fell back to placeholders)\n",
		len(result.Bookmarks), result.Failed)
}

// runCheck scans the collection for dead links.
func runCheck(archive bool) {
	cfg := loadConfig()
	back, store := openStore()
	defer closeStore(back)

	if len(store.Bookmarks) == 0 {
		fmt.Println("Nothing to check.")
		return
	}

	results := culler.CheckURLs(store.Bookmarks, culler.DefaultConcurrency,
		10*time.Second, cfg.CullExcludeDomains, func(completed, total int) {
			fmt.Printf("\rChecking %d/%d", completed, total)
		})
	fmt.Println()

	healthy := 0
	for _, r := range results {
		if r.Status == culler.Healthy {
			healthy++
			continue
		}
		detail := r.Error
		if r.StatusCode != 0 {
			detail = fmt.Sprintf("HTTP %d", r.StatusCode)
		}
		fmt.Printf("  %-11s %s (%s)\n", r.Status, r.URL, detail)
	}
	fmt.Printf("%d healthy, %d flagged\n", healthy, len(results)-healthy)

	if archive {
		n := culler.ArchiveDead(store, results)
		saveStore(back, store)
		fmt.Printf("Archived %d dead bookmarks\n", n)
	}
}

// runServe runs the HTTP API server until interrupted.
func runServe() {
	cfg := loadConfig()
	back, store := openStore()
	defer closeStore(back)

	logger, err := server.NewLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	srv := server.New(cfg.ListenAddr, store, back, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Error shutting down: %v\n", err)
			os.Exit(1)
		}
	}
}
