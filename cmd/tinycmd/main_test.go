package main

import (
	"bytes"
	"context"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the command tree in-process with the given stdin.
func runCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv(configEnvVar, "")

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestFullTitle(t *testing.T) {
	assert.Equal(t, "TinyCmd v"+version, fullTitle())
	assert.Contains(t, welcomeBanner(), ".quit")
}

func TestVersionFlag(t *testing.T) {
	stdout, _, err := runCLI(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, fullTitle()+"\n", stdout)
}

func TestFeedCommand(t *testing.T) {
	stdin := "LED ON\r\nadd 2 40\nFAN ON\nLED Blink 2"
	stdout, stderr, err := runCLI(t, stdin, "feed")
	require.NoError(t, err)
	assert.Equal(t, "LED on\n42\nLED blinked 2 times\n", stdout)
	assert.Contains(t, stderr, "Error: no matching command")
}

func TestFeedCommandOverflow(t *testing.T) {
	stdin := strings.Repeat("x", 50) + "\nLED OFF\n"
	stdout, stderr, err := runCLI(t, stdin, "feed")
	require.NoError(t, err)
	assert.Equal(t, "LED off\n", stdout)
	assert.Equal(t, "Error: input buffer full\n", stderr, "diagnostics are below the default level")

	_, stderr, err = runCLI(t, stdin, "--log-level", "info", "feed")
	require.NoError(t, err)
	assert.Contains(t, stderr, "line dropped")
}

func TestFeedLogsHandlerFailures(t *testing.T) {
	_, stderr, err := runCLI(t, "LED Dim\n", "--log-level", "info", "--log-format", "json", "feed")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Error: usage: LED ON|OFF|Blink <n>\n")
	assert.Contains(t, stderr, `"msg":"command failed"`)
	assert.Contains(t, stderr, `"component":"tinycmd"`)
}

func TestREPLCommandPiped(t *testing.T) {
	stdout, stderr, err := runCLI(t, "echo hi\nLED Dim\n.quit\n")
	require.NoError(t, err)
	assert.Equal(t, "> hi\n> > ", stdout, "no banner without a terminal")
	assert.Equal(t, "Error: usage: LED ON|OFF|Blink <n>\n", stderr)
}

func TestREPLCommandWithConfig(t *testing.T) {
	path := writeConfig(t, `
max_tokens = 2

[cli]
prompt = "$ "
`)
	stdout, stderr, err := runCLI(t, "echo a\necho a b\n", "--config", path, "repl")
	require.NoError(t, err)
	assert.Equal(t, "$ a\n$ $ \n", stdout)
	assert.Equal(t, "Error: too many arguments\n", stderr)
}

func TestConfigFromEnvironment(t *testing.T) {
	path := writeConfig(t, "[cli]\nprompt = \"env> \"\n")

	var out bytes.Buffer
	root := newRootCmd()
	t.Setenv(configEnvVar, path)
	root.SetArgs([]string{"repl"})
	root.SetIn(strings.NewReader(""))
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	require.NoError(t, root.Execute())
	assert.Equal(t, "env> \n", out.String())
}

func TestInvalidFlagsAndConfig(t *testing.T) {
	_, _, err := runCLI(t, "", "--log-level", "loud", "feed")
	assert.ErrorContains(t, err, `unknown log level "loud"`)

	_, _, err = runCLI(t, "", "--log-format", "xml", "feed")
	assert.ErrorContains(t, err, `unknown log format "xml"`)

	path := writeConfig(t, "list_size = 0")
	_, _, err = runCLI(t, "", "--config", path, "feed")
	assert.ErrorContains(t, err, "invalid config: ListSize = 0")

	_, _, err = runCLI(t, "", "bogus")
	assert.Error(t, err)

	_, _, err = runCLI(t, "", "send")
	assert.Error(t, err, "send needs at least one line")
}

func TestServeAndSendCommands(t *testing.T) {
	socketPath := tempSocketPath(t)
	t.Setenv(configEnvVar, "")

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	var serveOut bytes.Buffer
	go func() {
		root := newRootCmd()
		root.SetArgs([]string{"serve", "--socket", socketPath})
		root.SetOut(&serveOut)
		root.SetErr(&bytes.Buffer{})
		served <- root.ExecuteContext(ctx)
	}()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("unix", socketPath)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	stdout, stderr, err := runCLI(t, "", "send", "--socket", socketPath, "LED ON", "add 1 2", "help")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, []string{"LED on", "3"}, lines[:2])

	stdout, stderr, err = runCLI(t, "", "send", "--socket", socketPath, "LED Dim", "echo still here")
	assert.ErrorIs(t, err, errCommandsFailed)
	assert.Equal(t, "still here\n", stdout)
	assert.Equal(t, "Error: LED Dim: usage: LED ON|OFF|Blink <n>\n", stderr)

	cancel()
	select {
	case err := <-served:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not stop")
	}
	assert.Contains(t, serveOut.String(), "Listening on "+socketPath)

	_, err = os.Stat(socketPath)
	assert.ErrorIs(t, err, os.ErrNotExist, "socket removed on exit")
}

func TestSendWithoutServer(t *testing.T) {
	_, _, err := runCLI(t, "", "send", "--socket", tempSocketPath(t), "LED ON")
	var connErr *ConnectionError
	assert.ErrorAs(t, err, &connErr)
}
