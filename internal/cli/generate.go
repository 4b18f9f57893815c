package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dgallion1/docslot/internal/doctree"
	"github.com/dgallion1/docslot/internal/generate"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	var provider, model string
	cmd := &cobra.Command{
		Use:   "generate <structure.json> <topic> <content.json>",
		Short: "Produce a content map for every slot of a structure",
		Long: `Produce a value for every slot of an extracted structure and save
the result as a content map for "docslot fill". Slots the provider fails
on fall back to the rule-based generator.

Examples:
  docslot generate structure.json "一般现在时" content.json
  docslot generate structure.json "past tense" content.json --provider anthropic`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if provider != "" {
				cfg.GenerateProvider = strings.ToLower(provider)
			}
			if model != "" {
				cfg.GenerateModel = model
			}

			st, err := doctree.Load(args[0])
			if err != nil {
				return err
			}
			reg, err := generate.Setup(cmd.Context(), cfg, generate.NewLLMStats(time.Hour), a.log)
			if err != nil {
				return err
			}
			p, err := reg.Get(cfg.GenerateProvider)
			if errors.Is(err, generate.ErrUnknownProvider) {
				return fmt.Errorf("%w; set its API key or run \"docslot providers\"", err)
			}
			if err != nil {
				return err
			}

			g := generate.NewGenerator(p, a.log)
			g.Timeout = cfg.GenerateTimeout
			contents, stats, err := g.GenerateStats(cmd.Context(), st, args[1])
			if err != nil {
				return err
			}
			if err := contents.Save(args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "generated %d slots with %s into %s (%d fallbacks)\n",
				stats.Slots, p.Name(), args[2], stats.Fallbacks)
			return nil
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "", "generation provider (rules, anthropic, openai, gemini, ollama)")
	cmd.Flags().StringVar(&model, "model", "", "model name for the provider")
	return cmd
}

func newProvidersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List generation providers and their status",
		Long: `List the providers "docslot generate" can use. LLM providers need
their API key in the named environment variable; ollama needs a host.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tMODEL\tENV\tSTATUS")
			for _, p := range generate.KnownProviders(a.cfg) {
				status := "not configured"
				if p.Configured {
					status = "ready"
				}
				if p.Name == a.cfg.GenerateProvider {
					status += " (default)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Model, p.EnvKey, status)
			}
			return w.Flush()
		},
	}
}
