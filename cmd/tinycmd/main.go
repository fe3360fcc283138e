// =============================================================================
// main.go - tinycmd CLI Entry Point
// =============================================================================
//
// The tinycmd command drives the interpreter library from a workstation.
// Every front end registers the same demo command set, so a line behaves the
// same whether it is typed, piped or sent over a socket.
//
// Usage:
//
//	tinycmd                              Interactive REPL (same as "repl")
//	tinycmd feed < commands.txt          Byte-wise ingestion, UART style
//	tinycmd serve --socket /tmp/t.sock   Serve one interpreter on a socket
//	tinycmd send --socket /tmp/t.sock "LED ON" "add 2 40"
//
// Global flags:
//
//	--config PATH      TOML config file (or $TINYCMD_CONFIG)
//	--log-level LEVEL  debug, info, warn or error
//	--log-format FMT   text or json
//
// =============================================================================

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const (
	// version is the current version of the CLI.
	version = "0.3.0"

	// appName is the application name.
	appName = "TinyCmd"
)

// fullTitle returns the application name with version.
func fullTitle() string {
	return fmt.Sprintf("%s v%s", appName, version)
}

// welcomeBanner returns the banner displayed when the REPL starts.
func welcomeBanner() string {
	return fmt.Sprintf(`%s - line command interpreter

Type '.help' for available commands.
Type '.quit' to exit.
`, fullTitle())
}

// errCommandsFailed is returned by "send" when at least one line failed.
// The individual errors have already been printed.
var errCommandsFailed = errors.New("one or more commands failed")

// app carries the global flags and the state derived from them.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	file fileConfig
	log  *slog.Logger
}

// GO CONCEPT: Command Trees with cobra
// ------------------------------------
// cobra models a CLI as a tree of *cobra.Command values. Persistent flags
// declared on the root are inherited by every subcommand, and
// PersistentPreRunE runs before any command's RunE, which makes it the right
// place to load shared configuration. Returning an error from RunE hands it
// back to Execute instead of exiting, so main decides how to report it and
// tests can run the whole tree in-process.
//
// Compare with Python: this is the role of argparse subparsers or click
// groups, with PersistentPreRunE playing the part of a click group callback.

// newRootCmd builds the full command tree.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:     "tinycmd",
		Short:   "Line-oriented command interpreter for small devices",
		Version: version,
		Long: `tinycmd runs a fixed-capacity command interpreter: lines of space
separated tokens, the first naming a registered command and the rest its
arguments. Without a subcommand it starts the interactive REPL.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd)
		},
	}
	root.SetVersionTemplate(fullTitle() + "\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $"+configEnvVar+")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config, else warn)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json (default from config, else text)")

	root.AddCommand(
		a.newREPLCmd(),
		a.newFeedCmd(),
		a.newServeCmd(),
		a.newSendCmd(),
	)
	return root
}

// setup loads the config file and builds the logger. Flags given on the
// command line override the file.
func (a *app) setup(logOut io.Writer) error {
	file, err := loadConfig(resolveConfigPath(a.configPath))
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		file.CLI.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		file.CLI.LogFormat = a.logFormat
	}

	log, err := newLogger(logOut, file.CLI.LogLevel, file.CLI.LogFormat)
	if err != nil {
		return err
	}
	a.file = file
	a.log = log
	return nil
}

func (a *app) newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive read-eval-print loop (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd)
		},
	}
}

func (a *app) runREPL(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	in, d, err := a.newInterpreter(out)
	if err != nil {
		return err
	}

	editor := NewLineEditor(cmd.InOrStdin(), out)
	defer editor.Close()

	if editor.IsInteractive() {
		fmt.Fprint(out, welcomeBanner())
		fmt.Fprintln(out)
	}

	r := &repl{
		in:     in,
		demo:   d,
		input:  editor,
		out:    out,
		errOut: cmd.ErrOrStderr(),
		prompt: a.file.CLI.Prompt,
	}
	return r.run()
}

func (a *app) newFeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Feed stdin to the interpreter byte by byte",
		Long: `feed reads stdin as a byte stream, the way a serial receive interrupt
would deliver it. '\n' or '\r' completes a line; a final unterminated line
is run at end of input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withSignals(cmd.Context())
			defer cancel()
			return a.runFeed(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func (a *app) newServeCmd() *cobra.Command {
	var socketPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interpreter on a Unix domain socket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if socketPath == "" {
				socketPath = a.file.CLI.Socket
			}
			in, _, err := a.newInterpreter(nil)
			if err != nil {
				return err
			}

			ln, err := listenUnix(socketPath)
			if err != nil {
				return err
			}
			defer os.Remove(socketPath)

			ctx, cancel := withSignals(cmd.Context())
			defer cancel()
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", socketPath)
			return newServer(in, a.log).serve(ctx, ln)
		},
	}
	cmd.Flags().StringVar(&socketPath, "socket", "", "socket path (default from config, else "+DefaultSocketPath+")")
	return cmd
}

func (a *app) newSendCmd() *cobra.Command {
	var socketPath string
	cmd := &cobra.Command{
		Use:   "send LINE...",
		Short: "Send command lines to a running server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if socketPath == "" {
				socketPath = a.file.CLI.Socket
			}
			return a.runSend(cmd.Context(), socketPath, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&socketPath, "socket", "", "socket path (default from config, else "+DefaultSocketPath+")")
	return cmd
}

// runSend sends each line in turn, printing output to out and failures to
// errOut. A connection failure stops early; a failed command does not.
func (a *app) runSend(ctx context.Context, socketPath string, lines []string, out, errOut io.Writer) error {
	c, err := dial(ctx, socketPath)
	if err != nil {
		return err
	}
	defer c.close()

	failed := false
	for _, line := range lines {
		output, err := c.send(ctx, line)
		for _, l := range output {
			fmt.Fprintln(out, l)
		}
		if err != nil {
			var remote *RemoteError
			if !errors.As(err, &remote) {
				return err
			}
			fmt.Fprintf(errOut, "Error: %s: %v\n", line, err)
			failed = true
		}
	}
	if failed {
		return errCommandsFailed
	}
	return nil
}

// withSignals returns a context cancelled on SIGINT or SIGTERM, so blocking
// front ends can shut down and remove their socket.
func withSignals(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	// signal.Notify needs a buffered channel so delivery never blocks.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

// printError prints an error message to stderr.
func printError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// send has already reported each failed line.
		if !errors.Is(err, errCommandsFailed) {
			printError(err.Error())
		}
		os.Exit(1)
	}
}
