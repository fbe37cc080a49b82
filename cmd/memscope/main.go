package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/memarena/memarena/cmd/memscope/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	debugMode := false
	capacity := 0

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--debug", "-d":
			debugMode = true
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("memscope %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built: %s\n", date)
			os.Exit(0)
		case "--capacity", "-c":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: --capacity requires a value")
				os.Exit(1)
			}
			i++
			if _, err := fmt.Sscanf(args[i], "%d", &capacity); err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid capacity %q\n", args[i])
				os.Exit(1)
			}
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown argument %q\n", args[i])
			printUsage()
			os.Exit(1)
		}
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	logger.Info("starting memscope", "capacity", capacity, "debug", debugMode)

	m, err := NewModel(capacity)
	if err != nil {
		logger.Error("arena construction failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	if model, ok := finalModel.(Model); ok {
		if err := model.Close(); err != nil {
			logger.Warn("error closing arena", "error", err)
		}
	}

	logger.Info("memscope exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: memscope [options]\n")
	fmt.Fprintf(os.Stderr, "Try 'memscope --help' for more information.\n")
}

func printHelp() {
	fmt.Println("memscope - Interactive TUI for the memarena allocator")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  memscope [options]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Launches an interactive terminal UI over a fresh arena. Drive the")
	fmt.Println("  allocator by hand and watch chunks split and coalesce in real time.")
	fmt.Println()
	fmt.Println("  Keys:")
	fmt.Println("    ↑/k, ↓/j    Move through the chunk table")
	fmt.Println("    a           Allocate (prompts for a byte count)")
	fmt.Println("    f           Free the selected chunk")
	fmt.Println("    1-5         Run a stress workload")
	fmt.Println("    y           Yank the selected chunk's summary to the clipboard")
	fmt.Println("    ?           Toggle help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -c, --capacity N  Arena capacity in bytes (default 4096)")
	fmt.Println("  -d, --debug       Enable debug logging to ~/.memscope/logs/")
	fmt.Println("  -h, --help        Show this help message")
	fmt.Println("  -v, --version     Show version information")
	fmt.Println()
	fmt.Println("For non-interactive operations, use the 'memctl' command instead.")
}
