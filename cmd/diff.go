package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"list-reconciler/core/reconcile"
	"list-reconciler/core/utils"
	"list-reconciler/feature/lists"
	"list-reconciler/feature/lists/models"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	diffKey     string
	diffStrict  bool
	diffNoMoves bool
	diffText    bool
	diffJSON    bool
)

// diffCmd compares two list snapshots stored as JSON files.
var diffCmd = &cobra.Command{
	Use:   "diff <old.json> <new.json>",
	Short: "Print the edit script between two list snapshots",
	Long: `Reads two JSON arrays of objects and prints the minimal edit script that
turns the first into the second. Objects are matched by the --key field;
every other field is compared as content.

Examples:
  # Edit script, one operation per line
  diff old.json new.json

  # Match on the "slug" field and reject duplicated slugs
  diff --key slug --strict old.json new.json

  # Line diff of both snapshots
  diff --text old.json new.json`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffKey, "key", "id", "Field identifying an item")
	diffCmd.Flags().BoolVar(&diffStrict, "strict", false, "Reject duplicated keys instead of pairing them in order")
	diffCmd.Flags().BoolVar(&diffNoMoves, "no-moves", false, "Report reordered items as remove and insert")
	diffCmd.Flags().BoolVar(&diffText, "text", false, "Print a line diff of the snapshots instead of the edit script")
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "Print the edit script as JSON")

	RootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	old, err := loadItems(args[0], diffKey)
	if err != nil {
		return err
	}
	new, err := loadItems(args[1], diffKey)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if diffText {
		_, err := io.WriteString(out, renderTextDiff(old, new))
		return err
	}

	svc := lists.NewService(nil, nil, zap.NewNop(), lists.Config{})
	script, err := svc.Diff(old, new, lists.DiffOptions{Strict: diffStrict, DetectMoves: !diffNoMoves})
	if err != nil {
		return err
	}

	if diffJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(script)
	}
	_, err = io.WriteString(out, renderScript(script))
	return err
}

// loadItems reads a JSON array of objects from path. The key field becomes
// the item id and the remaining fields its data.
func loadItems(path, key string) ([]models.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	items := make([]models.Item, len(raw))
	for i, obj := range raw {
		if v, ok := obj[key]; ok && v != nil {
			items[i].ID = utils.ToString(v)
		}
		delete(obj, key)
		if len(obj) > 0 {
			items[i].Data = obj
		}
	}
	return items, nil
}

// renderScript prints one edit per line followed by the summary.
func renderScript(script *reconcile.Script[models.Item]) string {
	var b strings.Builder
	for _, e := range script.Edits {
		switch e.Op {
		case reconcile.OpInsert:
			fmt.Fprintf(&b, "insert %d %s\n", e.Position, e.Item.ID)
		case reconcile.OpRemove:
			fmt.Fprintf(&b, "remove %d\n", e.Position)
		case reconcile.OpMove:
			fmt.Fprintf(&b, "move %d -> %d\n", e.Position, e.ToPosition)
		case reconcile.OpChange:
			fmt.Fprintf(&b, "change %d %s\n", e.Position, e.Item.ID)
		}
	}
	s := script.Summary
	fmt.Fprintf(&b, "%d inserts, %d removes, %d moves, %d changes (%d -> %d items)\n",
		s.Inserts, s.Removes, s.Moves, s.Changes, script.OldLen, script.NewLen)
	return b.String()
}

// renderTextDiff renders each snapshot one item per line and prints their
// line diff with "+", "-" and " " prefixes.
func renderTextDiff(old, new []models.Item) string {
	dmp := diffmatchpatch.New()
	rOld, rNew, lineArray := dmp.DiffLinesToRunes(itemLines(old), itemLines(new))
	diffs := dmp.DiffMainRunes(rOld, rNew, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	var b strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, r := range d.Text {
			idx := int(r)
			if idx < 0 || idx >= len(lineArray) {
				continue
			}
			b.WriteString(prefix)
			b.WriteString(lineArray[idx])
		}
	}
	return b.String()
}

func itemLines(items []models.Item) string {
	var b strings.Builder
	for _, item := range items {
		// Map keys are encoded in sorted order, so equal items render equally.
		line, err := json.Marshal(item)
		if err != nil {
			line = []byte(item.ID)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	return b.String()
}
