package cli

import (
	"errors"
	"fmt"

	"github.com/dgallion1/docslot/internal/qbank"
	"github.com/spf13/cobra"
)

func newIndexCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "index [root]",
		Short: "Build the question bank index",
		Long: `Walk a resource tree and write a JSON index of every supported
file, with year, district, exam type and question type taken from its
path. The root defaults to QBANK_ROOT.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.cfg.QBankRoot
			if len(args) == 1 {
				root = args[0]
			}
			if root == "" {
				return errors.New("no question bank root: pass one or set QBANK_ROOT")
			}
			if output == "" {
				output = a.cfg.QBankIndex
			}

			ix, err := qbank.Build(cmd.Context(), root, qbank.Options{
				Parser: a.parserOptions(),
				Log:    a.log,
			})
			if err != nil {
				return err
			}
			if err := ix.Save(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d files (%.2f MB) into %s\n",
				ix.Metadata.TotalFiles, ix.Metadata.TotalSizeMB, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "index file (default: QBANK_INDEX)")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		indexPath string
		query     qbank.Query
		questions bool
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the question bank index",
		Long: `Filter the question bank index by keyword and path metadata.
With --questions, the matching documents are opened and the numbered
questions mentioning the keyword are listed.

Examples:
  docslot search --keyword 完形填空 --year 2023
  docslot search --keyword 阅读 --district 徐汇 --questions`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if indexPath == "" {
				indexPath = a.cfg.QBankIndex
			}
			ix, err := qbank.Load(indexPath)
			if err != nil {
				if errors.Is(err, qbank.ErrIndexNotFound) {
					return fmt.Errorf("%w: run \"docslot index\" first", err)
				}
				return err
			}

			if !questions {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"results": ix.Search(query)})
			}
			if query.Keyword == "" {
				return errors.New("--questions needs --keyword")
			}
			s := qbank.NewSearcher(ix, a.parserOptions(), a.log)
			results, qs, err := s.SmartSearch(cmd.Context(), query.Keyword, query, query.Limit, 0)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{"results": results, "questions": qs})
		},
	}
	f := cmd.Flags()
	f.StringVar(&indexPath, "index", "", "index file (default: QBANK_INDEX)")
	f.StringVar(&query.Keyword, "keyword", "", "text to look for in previews and file names")
	f.StringVar(&query.Year, "year", "", "year, e.g. 2023")
	f.StringVar(&query.District, "district", "", "district name")
	f.StringVar(&query.ExamType, "exam-type", "", "exam type, e.g. 期中")
	f.StringVar(&query.QuestionType, "question-type", "", "question type, e.g. 阅读")
	f.IntVar(&query.Limit, "limit", qbank.DefaultLimit, "maximum results")
	f.BoolVar(&questions, "questions", false, "extract matching questions from the documents")
	return cmd
}
