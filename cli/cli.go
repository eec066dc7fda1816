// Package cli provides command-line access to Voice Intelligence's stored
// settings, history, and API keys without launching the window.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/yllada/voice-intelligence/common"
	"github.com/yllada/voice-intelligence/keyring"
	"github.com/yllada/voice-intelligence/store"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Adaptive colors for light and dark terminals.
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleSubtle  = lipgloss.NewStyle().Foreground(colorGray)
)

// CLI represents the command-line interface.
type CLI struct {
	store *store.Store
	keys  *keyring.Keyring
	out   io.Writer
	in    io.Reader
	// readPassword reads a secret without echo from a terminal fd.
	readPassword func(fd int) ([]byte, error)
}

// New creates a new CLI instance. keys may be nil when no credential
// backend could be opened.
func New(st *store.Store, keys *keyring.Keyring) *CLI {
	return &CLI{
		store:        st,
		keys:         keys,
		out:          os.Stdout,
		in:           os.Stdin,
		readPassword: term.ReadPassword,
	}
}

// Settings prints the stored preferences.
func (c *CLI) Settings(ctx context.Context) error {
	s, err := c.store.Settings(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, styleTitle.Render("Settings"))
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", common.SettingThemeMode, s.ThemeMode)
	fmt.Fprintf(w, "%s\t%s\n", common.SettingAlwaysOnTop, yesNo(s.AlwaysOnTop))
	fmt.Fprintf(w, "%s\t%s\n", common.SettingShowThemeToggle, yesNo(s.ShowThemeToggle))
	fmt.Fprintf(w, "store\t%s\n", c.store.Path())
	return w.Flush()
}

// History prints the stored history, newest first.
func (c *CLI) History(ctx context.Context) error {
	entries, err := c.store.History(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No history entries.")
		return nil
	}

	fmt.Fprintln(c.out, styleTitle.Render(fmt.Sprintf("History (%d)", len(entries))))
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tMODE\tOUTPUT")
	fmt.Fprintln(w, "--\t----\t----\t------")
	for _, e := range entries {
		shortID := e.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", shortID, formatTimestamp(e.Timestamp), e.Mode, truncate(e.Output, 48))
	}
	return w.Flush()
}

// ClearHistory removes every history entry.
func (c *CLI) ClearHistory(ctx context.Context) error {
	if err := c.store.ClearHistory(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, styleSuccess.Render("✓ History cleared"))
	return nil
}

// SetKey reads an API key for provider and stores it. From a terminal the
// key is read without echo; otherwise the first line of input is used.
func (c *CLI) SetKey(provider string) error {
	if c.keys == nil {
		return common.ErrCredentialStore
	}
	p, err := keyring.ParseProvider(provider)
	if err != nil {
		return err
	}

	secret, err := c.readSecret(fmt.Sprintf("%s API key: ", p))
	if err != nil {
		return err
	}
	if secret == "" {
		return errors.New("no key entered")
	}

	if err := c.keys.Store(p, secret); err != nil {
		return err
	}
	// A key entered by the user replaces any demo keys.
	if err := c.keys.MarkDemo(false); err != nil {
		return err
	}
	fmt.Fprintln(c.out, styleSuccess.Render(fmt.Sprintf("✓ Stored %s key", p)))
	return nil
}

// ImportDemoKeys stores the shared demo keys from a YAML bundle mapping
// provider names to keys, marks them as demo keys and restarts the
// request quota. The bundle is deleted once the keys are in the keyring.
func (c *CLI) ImportDemoKeys(ctx context.Context, path string) error {
	if c.keys == nil {
		return common.ErrCredentialStore
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read demo key bundle: %w", err)
	}

	var bundle map[string]string
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return fmt.Errorf("failed to parse demo key bundle: %w", err)
	}
	secrets := make(map[keyring.Provider]string, len(bundle))
	for name, secret := range bundle {
		p, err := keyring.ParseProvider(name)
		if err != nil {
			return err
		}
		secrets[p] = strings.TrimSpace(secret)
	}
	for _, p := range keyring.Providers() {
		if secrets[p] == "" {
			return fmt.Errorf("demo key bundle has no %s key", p)
		}
	}

	for _, p := range keyring.Providers() {
		if err := c.keys.Store(p, secrets[p]); err != nil {
			return err
		}
	}
	if err := c.keys.MarkDemo(true); err != nil {
		return err
	}
	if err := c.store.ResetRequestCount(ctx); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		fmt.Fprintln(c.out, styleWarning.Render(fmt.Sprintf("Could not delete %s: %v", path, err)))
	}

	fmt.Fprintln(c.out, styleSuccess.Render(fmt.Sprintf("✓ Imported demo keys (%d requests)", common.DemoRequestLimit)))
	return nil
}

// DeleteKey removes the API key for provider.
func (c *CLI) DeleteKey(provider string) error {
	if c.keys == nil {
		return common.ErrCredentialStore
	}
	p, err := keyring.ParseProvider(provider)
	if err != nil {
		return err
	}
	if err := c.keys.Delete(p); err != nil {
		return err
	}
	fmt.Fprintln(c.out, styleSuccess.Render(fmt.Sprintf("✓ Removed %s key", p)))
	return nil
}

// KeyStatus prints which provider keys are stored and the demo quota.
func (c *CLI) KeyStatus(ctx context.Context) error {
	if c.keys == nil {
		return common.ErrCredentialStore
	}
	count, err := c.store.RequestCount(ctx)
	if err != nil {
		return err
	}
	status := c.keys.Status(count)

	fmt.Fprintln(c.out, styleTitle.Render("API keys"))
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROVIDER\tSTORED")
	fmt.Fprintln(w, "--------\t------")
	for _, p := range keyring.Providers() {
		fmt.Fprintf(w, "%s\t%s\n", p, yesNo(c.keys.Exists(p)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	switch {
	case status.IsDemo:
		fmt.Fprintln(c.out, styleWarning.Render(fmt.Sprintf("Demo keys: %d of %d requests left",
			status.RemainingRequests, common.DemoRequestLimit)))
	case !status.HasValidKeys:
		fmt.Fprintln(c.out, styleWarning.Render("Keys missing: use -set-key <provider>"))
	default:
		fmt.Fprintln(c.out, styleSuccess.Render("✓ All keys stored"))
	}
	return nil
}

func (c *CLI) readSecret(prompt string) (string, error) {
	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(c.out, prompt)
		data, err := c.readPassword(int(f.Fd()))
		fmt.Fprintln(c.out)
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read key: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// formatTimestamp renders an RFC 3339 timestamp in local time.
func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04")
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Println(styleTitle.Render(common.AppName) + `

Usage:
  voice-intelligence [OPTIONS]

Options:
  -version               Show version and exit
  -verbose               Enable verbose logging
  -settings              Print stored settings
  -history               Print transcription history
  -clear-history         Delete all history entries
  -set-key PROVIDER      Store an API key (deepgram, anthropic)
  -delete-key PROVIDER   Remove an API key
  -key-status            Show stored API keys and demo quota
  -import-demo-keys FILE Import demo keys from a YAML bundle, then delete it
  -help                  Show this help message

Examples:
  voice-intelligence -settings
  voice-intelligence -set-key deepgram
  voice-intelligence -key-status
  voice-intelligence -import-demo-keys demo-keys.yaml

` + styleSubtle.Render("Run without options to launch the window."))
}
