package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/neptaco/unibuild/pkg/logger"
	"github.com/neptaco/unibuild/pkg/ui"
	"github.com/neptaco/unibuild/pkg/unity"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	logFollow    bool
	logLines     int
	logRaw       bool
	logFullTrace bool
	logTimestamp bool
)

var logCmd = &cobra.Command{
	Use:   "logs [file]",
	Short: "Display a Unity Editor log",
	Long: `Display a Unity Editor log with syntax highlighting.

Without an argument the build log (build.log-file) is shown when it is
configured, otherwise the editor's default log:
  - macOS: ~/Library/Logs/Unity/Editor.log
  - Windows: %LOCALAPPDATA%\Unity\Editor\Editor.log
  - Linux: ~/.config/unity3d/Editor.log

Log lines are colorized:
  - Red: Errors, exceptions and failed builds
  - Yellow: Warnings
  - Gray: Stack traces and startup noise`,
	Example: `  # Show last 100 lines (default)
  unibuild logs

  # Show last 500 lines of a build log
  unibuild logs -n 500 Build/build.log

  # Follow log in real-time (like tail -F)
  unibuild logs -f

  # Show full stack traces (including Unity internals)
  unibuild logs --full-trace`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().BoolVarP(&logFollow, "follow", "f", false, "Follow log output in real-time")
	logCmd.Flags().IntVarP(&logLines, "lines", "n", 100, "Number of lines to show")
	logCmd.Flags().BoolVar(&logRaw, "raw", false, "Show raw output without colors or filtering")
	logCmd.Flags().BoolVar(&logFullTrace, "full-trace", false, "Show full stack traces including Unity internals")
	logCmd.Flags().BoolVarP(&logTimestamp, "timestamp", "t", false, "Show timestamp for each line")
}

func resolveLogPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if path := viper.GetString("build.log-file"); path != "" && path != "-" {
		return path, nil
	}
	return unity.DefaultLogPath()
}

func runLog(cmd *cobra.Command, args []string) error {
	logPath, err := resolveLogPath(args)
	if err != nil {
		return fmt.Errorf("failed to get log path: %w", err)
	}

	ui.Debug("Log file path", "path", logPath)

	if logFollow {
		return followLog(cmd, logPath)
	}

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s", logPath)
	}

	return showLog(logPath, logLines)
}

func newLogFormatter() *logger.Formatter {
	return logger.NewFormatter(
		logger.WithNoColor(noColor()),
		logger.WithHideStackTrace(!logFullTrace),
	)
}

func followLog(cmd *cobra.Command, logPath string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	formatter := newLogFormatter()
	fmt.Printf("Following %s (Ctrl+C to stop)\n\n", logPath)

	// the file may not exist yet; Follow picks it up once the editor creates it
	return logger.Follow(ctx, logPath, false, func(line string) {
		if logRaw {
			fmt.Println(line)
			return
		}
		if !formatter.ShouldShow(line) {
			return
		}
		formatted := formatter.FormatLine(line)
		if logTimestamp {
			ts := time.Now().Format("15:04:05.000")
			fmt.Printf("%s %s\n", formatter.Dim("["+ts+"]"), formatted)
		} else {
			fmt.Println(formatted)
		}
	})
}

func showLog(logPath string, lines int) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	lines = max(lines, 0)

	// Keep only the last n lines in a ring
	ring := make([]string, 0, lines)
	total := 0
	reader := bufio.NewReader(file)

	for {
		text, err := reader.ReadString('\n')
		if text != "" {
			total++
			text = strings.TrimRight(text, "\r\n")
			switch {
			case lines == 0:
			case len(ring) < lines:
				ring = append(ring, text)
			default:
				ring[(total-1)%lines] = text
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read log file: %w", err)
		}
	}

	formatter := newLogFormatter()
	first := total - len(ring) + 1

	for i := range ring {
		lineNo := first + i
		line := ring[(lineNo-1)%lines]

		if logRaw {
			fmt.Println(line)
			continue
		}
		if !formatter.ShouldShow(line) {
			continue
		}
		formatted := formatter.FormatLine(line)
		if logTimestamp {
			// For historical logs, show line number instead of time
			fmt.Printf("%s %s\n", formatter.Dim(fmt.Sprintf("[%5d]", lineNo)), formatted)
		} else {
			fmt.Println(formatted)
		}
	}

	return nil
}
