package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/daemon"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/mcp"
	"github.com/1broseidon/deskwm/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "window":
		os.Exit(runWindow(os.Args[2:]))
	case "workspace":
		os.Exit(runWorkspace(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deskwm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the deskwm daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  reload              Ask the daemon to reload its config")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  window create       Create a window")
	fmt.Fprintln(w, "  window list         List windows")
	fmt.Fprintln(w, "  window focus        Focus a window")
	fmt.Fprintln(w, "  window close        Close a window")
	fmt.Fprintln(w, "  window move         Move a window")
	fmt.Fprintln(w, "  window resize       Resize a window")
	fmt.Fprintln(w, "  window minimize     Minimize a window")
	fmt.Fprintln(w, "  window maximize     Maximize a window")
	fmt.Fprintln(w, "  window restore      Restore a window")
	fmt.Fprintln(w, "  window snap         Snap a window to a viewport region")
	fmt.Fprintln(w, "  window move-to      Move a window to another workspace")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  workspace list      List workspaces")
	fmt.Fprintln(w, "  workspace new       Create a workspace")
	fmt.Fprintln(w, "  workspace switch    Switch to a workspace")
	fmt.Fprintln(w, "  workspace delete    Delete a workspace")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open the terminal desktop")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskwm <command> --help' for command-specific options.")
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm daemon [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the window manager daemon in the foreground.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(cfg.LogLevel),
	}))

	d, err := daemon.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to start daemon: %v", err)
	}
	if err := d.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running:   %v\n", status.DaemonRunning)
	fmt.Printf("active_workspace: %s\n", status.ActiveWorkspace)
	fmt.Printf("workspace_count:  %d\n", status.WorkspaceCount)
	fmt.Printf("window_count:     %d\n", status.WindowCount)
	fmt.Printf("focused_window:   %d\n", status.FocusedWindow)
	fmt.Printf("viewport:         %dx%d\n", status.ViewportWidth, status.ViewportHeight)
	fmt.Printf("uptime_seconds:   %d\n", status.UptimeSeconds)
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm reload")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	client := ipc.NewClient()
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printWindowUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  deskwm window create --title T [--x N --y N] [--width N --height N]")
	fmt.Fprintln(w, "  deskwm window list")
	fmt.Fprintln(w, "  deskwm window focus <id>")
	fmt.Fprintln(w, "  deskwm window close <id>")
	fmt.Fprintln(w, "  deskwm window move <id> <x> <y>")
	fmt.Fprintln(w, "  deskwm window resize <id> <width> <height>")
	fmt.Fprintln(w, "  deskwm window minimize <id>")
	fmt.Fprintln(w, "  deskwm window maximize <id>")
	fmt.Fprintln(w, "  deskwm window restore <id>")
	fmt.Fprintln(w, "  deskwm window snap <id> <region>")
	fmt.Fprintln(w, "  deskwm window move-to <id> <workspace>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Snap regions: left-half, right-half, top-half, bottom-half,")
	fmt.Fprintln(w, "              top-left, top-right, bottom-left, bottom-right, full")
}

func runWindow(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printWindowUsage(os.Stderr)
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "create":
		fs := flag.NewFlagSet("create", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		title := fs.String("title", "", "Window title (required)")
		x := fs.Int("x", 0, "X position (omit for automatic placement)")
		y := fs.Int("y", 0, "Y position (omit for automatic placement)")
		width := fs.Int("width", 0, "Width (omit for the daemon default)")
		height := fs.Int("height", 0, "Height (omit for the daemon default)")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if *title == "" {
			fmt.Fprintln(os.Stderr, "window create requires --title")
			return 2
		}

		var xSet, ySet bool
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "x":
				xSet = true
			case "y":
				ySet = true
			}
		})
		if xSet != ySet {
			fmt.Fprintln(os.Stderr, "--x and --y must be given together")
			return 2
		}
		var px, py *int
		if xSet {
			px, py = x, y
		}

		w, err := client.CreateWindow(*title, px, py, *width, *height)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("created window %d at %d,%d (%dx%d)\n", w.ID, w.X, w.Y, w.Width, w.Height)
		return 0

	case "list":
		data, err := client.ListWindows()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, w := range data.Windows {
			state := ""
			if w.Minimized {
				state = " [min]"
			}
			if w.Maximized {
				state = " [max]"
			}
			if w.Hidden {
				state += " [hidden]"
			}
			focus := " "
			if w.Focused {
				focus = "*"
			}
			fmt.Printf("%s %3d  %-20s %4d,%-4d %4dx%-4d z=%-3d ws=%s%s\n",
				focus, w.ID, w.Title, w.X, w.Y, w.Width, w.Height, w.Z, w.Workspace, state)
		}
		return 0

	case "focus":
		return windowIDOp(args[1:], "focus", client.FocusWindow)
	case "close":
		return windowIDOp(args[1:], "close", client.CloseWindow)
	case "minimize":
		return windowIDOp(args[1:], "minimize", client.MinimizeWindow)
	case "maximize":
		return windowIDOp(args[1:], "maximize", client.MaximizeWindow)
	case "restore":
		return windowIDOp(args[1:], "restore", client.RestoreWindow)

	case "move":
		if len(args) != 4 {
			fmt.Fprintln(os.Stderr, "Usage: deskwm window move <id> <x> <y>")
			return 2
		}
		id, x, y, ok := parseThreeInts(args[1], args[2], args[3])
		if !ok {
			return 2
		}
		if err := client.MoveWindow(id, x, y); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "resize":
		if len(args) != 4 {
			fmt.Fprintln(os.Stderr, "Usage: deskwm window resize <id> <width> <height>")
			return 2
		}
		id, w, h, ok := parseThreeInts(args[1], args[2], args[3])
		if !ok {
			return 2
		}
		if err := client.ResizeWindow(id, w, h); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "snap":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, "Usage: deskwm window snap <id> <region>")
			return 2
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid window id: %s\n", args[1])
			return 2
		}
		if err := client.SnapWindow(id, args[2]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "move-to":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, "Usage: deskwm window move-to <id> <workspace>")
			return 2
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid window id: %s\n", args[1])
			return 2
		}
		if err := client.MoveToWorkspace(id, args[2]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown window command: %s\n\n", args[0])
		printWindowUsage(os.Stderr)
		return 2
	}
}

func windowIDOp(args []string, name string, op func(int) error) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: deskwm window %s <id>\n", name)
		return 2
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid window id: %s\n", args[0])
		return 2
	}
	if err := op(id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func parseThreeInts(a, b, c string) (int, int, int, bool) {
	x, err1 := strconv.Atoi(a)
	y, err2 := strconv.Atoi(b)
	z, err3 := strconv.Atoi(c)
	if err1 != nil || err2 != nil || err3 != nil {
		fmt.Fprintln(os.Stderr, "arguments must be integers")
		return 0, 0, 0, false
	}
	return x, y, z, true
}

func printWorkspaceUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  deskwm workspace list")
	fmt.Fprintln(w, "  deskwm workspace new <name>")
	fmt.Fprintln(w, "  deskwm workspace switch <name>")
	fmt.Fprintln(w, "  deskwm workspace delete <name>")
}

func runWorkspace(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printWorkspaceUsage(os.Stderr)
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "list":
		data, err := client.ListWorkspaces()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, ws := range data.Workspaces {
			marker := " "
			if ws.Active {
				marker = "*"
			}
			fmt.Printf("%s %s (%d windows)\n", marker, ws.Name, ws.WindowCount)
		}
		return 0

	case "new":
		return workspaceNameOp(args[1:], "new", client.CreateWorkspace)
	case "switch":
		return workspaceNameOp(args[1:], "switch", client.SwitchWorkspace)
	case "delete":
		return workspaceNameOp(args[1:], "delete", client.DeleteWorkspace)

	default:
		fmt.Fprintf(os.Stderr, "Unknown workspace command: %s\n\n", args[0])
		printWorkspaceUsage(os.Stderr)
		return 2
	}
}

func workspaceNameOp(args []string, name string, op func(string) error) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: deskwm workspace %s <name>\n", name)
		return 2
	}
	if err := op(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  deskwm config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  deskwm config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			loaded, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			cfg = loaded
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/deskwm/config.yaml)")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: deskwm tui [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Render a standalone desktop in the terminal. Windows are managed")
		fmt.Fprintln(os.Stderr, "in-process; the daemon does not need to be running.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  n         New window")
		fmt.Fprintln(os.Stderr, "  w         New workspace")
		fmt.Fprintln(os.Stderr, "  Tab       Cycle focus")
		fmt.Fprintln(os.Stderr, "  m/f/r/x   Minimize / maximize / restore / close")
		fmt.Fprintln(os.Stderr, "  , .       Snap left / right half")
		fmt.Fprintln(os.Stderr, "  [ ] 1-9   Switch workspace")
		fmt.Fprintln(os.Stderr, "  d         Delete active workspace")
		fmt.Fprintln(os.Stderr, "  Arrows    Nudge the focused window")
		fmt.Fprintln(os.Stderr, "  Esc       Cancel an in-flight drag/resize")
		fmt.Fprintln(os.Stderr, "  q         Quit")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Drag title bars to move windows, borders and corners to resize.")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := tui.Run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runMCP(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: deskwm mcp serve")
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	switch args[0] {
	case "serve":
		s := mcp.NewServer()
		if err := s.Run(context.Background()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp subcommand: %s\n", args[0])
		return 2
	}
}
