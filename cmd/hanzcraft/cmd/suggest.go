package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/f3rmion/hanzcraft/internal/catalog"
	"github.com/f3rmion/hanzcraft/internal/config"
	"github.com/f3rmion/hanzcraft/internal/game"
	"github.com/f3rmion/hanzcraft/internal/pinyin"
	"github.com/f3rmion/hanzcraft/internal/suggest"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <radical>...",
	Short: "Ask the AI model which characters use some radicals",
	Long: `Send radicals to the configured model and list characters that
contain them. Results are annotated with pinyin and, when a dictionary
is available, meanings. Characters you can craft are marked.

Requires ANTHROPIC_API_KEY (or GEMINI_API_KEY with llm.provider: gemini).

Examples:
  hanzcraft suggest 女 子
  hanzcraft suggest mu ri`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

// radicalSymbols maps ids to symbols. Unknown arguments pass through, since
// the model may know radicals the catalogue lacks.
func radicalSymbols(cat *catalog.Catalog, args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if r, ok := cat.Radical(strings.ToLower(arg)); ok {
			arg = r.Symbol
		}
		out = append(out, arg)
	}
	return out
}

func runSuggest(cmd *cobra.Command, args []string) error {
	a, err := openApp(logOutput())
	if err != nil {
		return err
	}
	defer a.Close()

	radicals := radicalSymbols(a.cat, args)

	timeout := a.cfg.LLM.Timeout
	if timeout <= 0 {
		timeout = config.Default().LLM.Timeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	annotator := suggest.NewAnnotator(pinyin.NewParser(), a.dict, a.session.Craftable)
	writeSuggestions(ctx, cmd.OutOrStdout(), a.gateway, annotator, a.logger, radicals)
	return nil
}

// writeSuggestions prints the model's suggestions as a table. A failed
// request is logged and reported like an empty one, with a notice.
func writeSuggestions(ctx context.Context, out io.Writer, s game.Suggester, annotator *suggest.Annotator, logger *log.Logger, radicals []string) {
	chars, err := s.SuggestDetailed(ctx, radicals)
	if err != nil {
		logger.Printf("suggest: %v", err)
		printNotices(out, []game.Notice{{
			Kind:        game.NoticeFailure,
			Title:       "Error",
			Description: "Could not fetch AI suggestions.",
		}})
	}
	if len(chars) == 0 {
		fmt.Fprintf(out, "No suggestions for %s\n", strings.Join(radicals, " "))
		return
	}

	var rows [][]string
	for _, item := range annotator.Annotate(chars) {
		craftable := ""
		if item.Known {
			craftable = "yes"
		}
		rows = append(rows, []string{item.Character, item.Pinyin, craftable, item.Structure, item.Definition})
	}
	printTable(out, []string{"CHAR", "PINYIN", "CRAFTABLE", "STRUCTURE", "MEANING"}, rows)
}
