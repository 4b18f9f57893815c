// Package cli wires the docslot commands together.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/docslot/internal/classify"
	"github.com/dgallion1/docslot/internal/config"
	"github.com/dgallion1/docslot/internal/parser"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// app is the state shared by every command of one invocation.
type app struct {
	configPath string
	logLevel   string

	cfg config.Config
	log *slog.Logger
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "docslot",
		Short: "Extract, fill and generate content for docx templates",
		Long: `docslot reads a .docx template, exports its section tree with
stable block identifiers and annotated slots, and writes content back
into those slots in a second, independent pass.

Environment variables override the config file:
  DOCSLOT_CONFIG      config file path
  GENERATE_PROVIDER   rules, anthropic, openai, gemini or ollama
  LOG_LEVEL           debug, info, warn or error
  LOG_FORMAT          json or text`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $DOCSLOT_CONFIG)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override")

	root.AddCommand(
		newExtractCmd(a),
		newFillCmd(a),
		newGenerateCmd(a),
		newCleanCmd(a),
		newInspectCmd(a),
		newIndexCmd(a),
		newSearchCmd(a),
		newProvidersCmd(a),
		newSampleCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree and exits non-zero on error.
func Execute() {
	root := NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if path == "" {
		path = os.Getenv("DOCSLOT_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = cfg.NewLogger(cmd.ErrOrStderr())
	return nil
}

func (a *app) rules() (*classify.Rules, error) {
	if a.cfg.RulesPath == "" {
		return classify.DefaultRules(), nil
	}
	return classify.LoadRules(a.cfg.RulesPath)
}

func (a *app) parserOptions() parser.Options {
	return parser.Options{PDFFallbackPdftotext: a.cfg.PDFFallbackPdftotext}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
