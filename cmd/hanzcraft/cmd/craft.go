package cmd

import (
	"fmt"
	"strings"

	"github.com/f3rmion/hanzcraft/internal/catalog"
	"github.com/f3rmion/hanzcraft/internal/game"
	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
	"github.com/spf13/cobra"
)

var craftCmd = &cobra.Command{
	Use:   "craft <top-left> <top-right> <bottom-left> <bottom-right>",
	Short: "Craft a character from four grid slots",
	Long: `Place radicals into the 2x2 grid and craft them.

Each slot is a radical symbol or id; use _ or - for an empty slot.

Examples:
  hanzcraft craft 女 _ 子 _
  hanzcraft craft nu - zi - --save
  hanzcraft craft 木 木 _ _ --challenge forest`,
	Args: cobra.ExactArgs(hanzcraft.SlotCount),
	RunE: runCraft,
}

var (
	craftSave      bool
	craftChallenge string
)

func init() {
	rootCmd.AddCommand(craftCmd)

	craftCmd.Flags().BoolVarP(&craftSave, "save", "s", false, "save the crafted character to the collection")
	craftCmd.Flags().StringVar(&craftChallenge, "challenge", "", "craft under the rules of a challenge")
}

// parseSlots resolves each argument to a radical id. Empty slots stay "".
func parseSlots(cat *catalog.Catalog, args []string) ([hanzcraft.SlotCount]string, error) {
	var ids [hanzcraft.SlotCount]string
	if len(args) != hanzcraft.SlotCount {
		return ids, fmt.Errorf("expected %d slots, got %d", hanzcraft.SlotCount, len(args))
	}
	for i, arg := range args {
		arg = strings.TrimSpace(arg)
		switch arg {
		case "", "_", "-":
			continue
		}
		if r, ok := cat.RadicalBySymbol(arg); ok {
			ids[i] = r.ID
			continue
		}
		if r, ok := cat.Radical(strings.ToLower(arg)); ok {
			ids[i] = r.ID
			continue
		}
		return ids, fmt.Errorf("%s slot: %w: %s", hanzcraft.SlotNames[i], game.ErrUnknownRadical, arg)
	}
	return ids, nil
}

func runCraft(cmd *cobra.Command, args []string) error {
	a, err := openApp(logOutput())
	if err != nil {
		return err
	}
	defer a.Close()

	ids, err := parseSlots(a.cat, args)
	if err != nil {
		return err
	}

	s := a.session
	if craftChallenge != "" {
		if err := s.SelectChallenge(craftChallenge); err != nil {
			return err
		}
	}
	for slot, id := range ids {
		if id == "" {
			continue
		}
		if err := s.Place(slot, id); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	comp, outcome, notices := s.Craft()
	if outcome == hanzcraft.OutcomeCrafted {
		fmt.Fprintf(out, "%s  %s  %s\n", comp.Character, comp.Pinyin, comp.Meaning)
		if comp.Usage != "" {
			fmt.Fprintf(out, "  %s\n", comp.Usage)
		}
	}
	printNotices(out, notices)

	if craftSave && outcome == hanzcraft.OutcomeCrafted {
		saved, err := s.SaveCrafted()
		if err != nil {
			return err
		}
		if len(saved) == 0 {
			fmt.Fprintf(out, "%s is already in your collection\n", comp.Character)
		}
		printNotices(out, saved)
	}
	return nil
}
