package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/dgallion1/docslot/internal/clean"
	"github.com/dgallion1/docslot/internal/fill"
	"github.com/dgallion1/docslot/internal/fsutil"
	"github.com/dgallion1/docslot/internal/parser"
	"github.com/dgallion1/docslot/internal/sample"
	"github.com/dgallion1/docslot/internal/structure"
	"github.com/spf13/cobra"
)

func newExtractCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "extract <docx>",
		Short: "Export the annotated section tree of a template",
		Long: `Export the section tree of a .docx template as JSON. Every block
carries its identifier, and slots carry their role and preceding context.

Examples:
  docslot extract lesson.docx
  docslot extract lesson.docx -o structure.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := a.rules()
			if err != nil {
				return err
			}
			doc, err := parser.Open(args[0])
			if err != nil {
				return err
			}
			ex := structure.NewExtractor(a.log,
				structure.WithRules(rules),
				structure.WithWindow(a.cfg.ContextWindow),
			)
			st, err := ex.Extract(doc)
			if err != nil {
				return fmt.Errorf("extract %s: %w", args[0], err)
			}

			if output == "" {
				return writeJSON(cmd.OutOrStdout(), st)
			}
			var buf bytes.Buffer
			if err := writeJSON(&buf, st); err != nil {
				return err
			}
			if err := fsutil.WriteFileAtomic(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			slots := 0
			for range st.Slots() {
				slots++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d slots)\n", output, slots)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func newFillCmd(a *app) *cobra.Command {
	var (
		column   string
		noVerify bool
	)
	cmd := &cobra.Command{
		Use:   "fill <template> <content.json> <output>",
		Short: "Write a content map into a template",
		Long: `Write the values of a content map into the blocks of a template.
Keys are block identifiers from "docslot extract". When the map carries
a $fingerprint and verification is on, a template whose block stream no
longer matches is rejected and nothing is written.

Examples:
  docslot fill lesson.docx content.json filled.docx
  docslot fill lesson.docx content.json filled.docx --column last`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := fill.New(a.log)
			if column == "" {
				column = a.cfg.FillColumn
			}
			policy, err := fill.ParseColumnPolicy(column)
			if err != nil {
				return err
			}
			f.Policy = policy
			f.VerifyFingerprint = a.cfg.VerifyFingerprint && !noVerify

			doc, err := parser.Open(args[0])
			if err != nil {
				return err
			}
			contents, err := fill.LoadContentMap(args[1])
			if err != nil {
				return err
			}
			report, err := f.Fill(doc, contents)
			if errors.Is(err, fill.ErrIdentifierDrift) {
				return fmt.Errorf("%w: re-run extract on %s and regenerate the content", err, args[0])
			}
			if err != nil {
				return err
			}
			if err := doc.Save(args[2]); err != nil {
				return fmt.Errorf("save %s: %w", args[2], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "filled %d blocks into %s", report.Filled(), args[2])
			if n := len(report.Skipped); n > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d skipped: %s)", n, strings.Join(report.Skipped, ", "))
			}
			if n := len(report.Unmatched); n > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d unmatched keys)", n)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "table column to fill: auto, first, last or an index")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "skip the fingerprint check")
	return cmd
}

func newCleanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean <src> <dst>",
		Short: "Turn a filled document back into a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parser.Open(args[0])
			if err != nil {
				return err
			}
			report := clean.New(a.log).Clean(doc)
			if err := doc.Save(args[1]); err != nil {
				return fmt.Errorf("save %s: %w", args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d cells and %d paragraphs into %s\n",
				report.Cells, report.Paragraphs, args[1])
			return nil
		},
	}
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <docx>",
		Short: "Summarise the paragraphs and tables of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parser.Open(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), parser.Inspect(doc))
		},
	}
}

func newSampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sample <out.docx>",
		Short: "Write a demo lesson-plan template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sample.Write(args[0]); err != nil {
				return fmt.Errorf("write sample: %w", err)
			}
			a.log.Debug("sample written", "path", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}
