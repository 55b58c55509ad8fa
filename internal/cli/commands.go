package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/amirbrooks/marc/internal/cmdline"
	"github.com/amirbrooks/marc/internal/editor"
	"github.com/amirbrooks/marc/internal/store"
	"github.com/amirbrooks/marc/internal/ui"
)

// batch tracks per-target outcomes for add, rm and done. The command succeeds
// when at least one target succeeded.
type batch struct {
	ok      int
	lastErr error
}

func (b *batch) exitCode() int {
	if b.ok > 0 || b.lastErr == nil {
		return ExitOK
	}
	return exitCodeFor(b.lastErr)
}

func (a *App) cmdAdd(args cmdline.Args) int {
	texts := args.Values()
	if len(texts) == 0 {
		fmt.Fprintf(a.Stderr, "Usage: %s %s\n", program, cmdline.Synopsis(cmdline.Add))
		return ExitUsage
	}
	tag, _ := args.Option("tag")

	s, err := a.openStore()
	if err != nil {
		fmt.Fprintln(a.Stderr, "add:", err)
		return ExitInternal
	}
	var b batch
	for _, text := range texts {
		item, err := s.Add(text, tag)
		if err != nil {
			fmt.Fprintf(a.Stderr, "add: %q: %v\n", text, err)
			b.lastErr = err
			continue
		}
		b.ok++
		fmt.Fprintf(a.Stdout, "Added %s %s %s\n", ui.Hash(item.Hash), ui.Tag(item.Tag), item.Description)
	}
	if b.ok > 0 {
		if err := s.Save(); err != nil {
			fmt.Fprintln(a.Stderr, "add:", err)
			return ExitInternal
		}
	}
	return b.exitCode()
}

func (a *App) cmdLog(args cmdline.Args) int {
	if extra := args.Values(); len(extra) > 0 {
		fmt.Fprintf(a.Stderr, "log: unexpected argument %q\n", extra[0])
		return ExitUsage
	}
	tag, _ := args.Option("tag")
	filter := store.ListFilter{
		Tag:    tag,
		Done:   args.Flag("done"),
		Undone: args.Flag("undone"),
	}

	s, err := a.openStore()
	if err != nil {
		fmt.Fprintln(a.Stderr, "log:", err)
		return ExitInternal
	}
	items := s.List(filter)

	if args.Flag("json") {
		enc := json.NewEncoder(a.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{"todos": items})
		return ExitOK
	}

	if len(items) == 0 {
		fmt.Fprintln(a.Stdout, "No entries")
		return ExitOK
	}
	w := tabwriter.NewWriter(a.Stdout, 2, 4, 2, ' ', 0)
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			ui.Status(it.Completed), ui.Hash(it.Hash), ui.Tag(it.Tag), ui.Description(it.Description, it.Completed))
	}
	_ = w.Flush()
	return ExitOK
}

func (a *App) cmdRemove(args cmdline.Args) int {
	prefixes := args.Values()
	removeDone := args.Flag("done")
	if len(prefixes) == 0 && !removeDone {
		fmt.Fprintf(a.Stderr, "Usage: %s %s\n", program, cmdline.Synopsis(cmdline.Remove))
		return ExitUsage
	}

	s, err := a.openStore()
	if err != nil {
		fmt.Fprintln(a.Stderr, "rm:", err)
		return ExitInternal
	}
	var b batch
	changed := false
	if removeDone {
		removed := s.RemoveCompleted()
		for _, it := range removed {
			fmt.Fprintf(a.Stdout, "Removed %s %s\n", ui.Hash(it.Hash), it.Description)
		}
		if len(removed) == 0 {
			fmt.Fprintln(a.Stdout, "No completed todos")
		}
		changed = len(removed) > 0
		b.ok++
	}
	for _, prefix := range prefixes {
		item, err := s.Remove(prefix)
		if err != nil {
			a.reportTargetError("rm", prefix, err)
			b.lastErr = err
			continue
		}
		b.ok++
		changed = true
		fmt.Fprintf(a.Stdout, "Removed %s %s\n", ui.Hash(item.Hash), item.Description)
	}
	if changed {
		if err := s.Save(); err != nil {
			fmt.Fprintln(a.Stderr, "rm:", err)
			return ExitInternal
		}
	}
	return b.exitCode()
}

func (a *App) cmdDone(args cmdline.Args) int {
	prefixes := args.Values()
	if len(prefixes) == 0 {
		fmt.Fprintf(a.Stderr, "Usage: %s %s\n", program, cmdline.Synopsis(cmdline.Done))
		return ExitUsage
	}

	s, err := a.openStore()
	if err != nil {
		fmt.Fprintln(a.Stderr, "done:", err)
		return ExitInternal
	}
	var b batch
	for _, prefix := range prefixes {
		item, err := s.MarkDone(prefix)
		if err != nil {
			a.reportTargetError("done", prefix, err)
			b.lastErr = err
			continue
		}
		b.ok++
		fmt.Fprintf(a.Stdout, "%s Done %s %s\n", ui.SymbolDone, ui.Hash(item.Hash), item.Description)
	}
	if b.ok > 0 {
		if err := s.Save(); err != nil {
			fmt.Fprintln(a.Stderr, "done:", err)
			return ExitInternal
		}
	}
	return b.exitCode()
}

func (a *App) cmdEdit(args cmdline.Args) int {
	if extra := args.Values(); len(extra) > 0 {
		fmt.Fprintf(a.Stderr, "edit: unexpected argument %q\n", extra[0])
		return ExitUsage
	}
	s, err := a.openStore()
	if err != nil {
		fmt.Fprintln(a.Stderr, "edit:", err)
		return ExitInternal
	}
	bridge := &editor.Bridge{FS: a.FS, Launcher: a.Launcher}
	res, err := bridge.Edit(s)
	if err != nil {
		fmt.Fprintln(a.Stderr, "edit:", err)
		return exitCodeFor(err)
	}
	fmt.Fprintf(a.Stdout, "Edited todos: %d kept, %d dropped\n", res.After, res.Dropped)
	return ExitOK
}

func (a *App) reportTargetError(cmd, prefix string, err error) {
	var conflict *store.MatchConflictError
	switch {
	case errors.As(err, &conflict):
		fmt.Fprintf(a.Stderr, "%s %s: prefix %q matches multiple todos:\n", ui.SymbolFail, cmd, prefix)
		for _, m := range conflict.Matches {
			fmt.Fprintf(a.Stderr, "  %s  %s\n", ui.Hash(m.Hash), m.Description)
		}
	case errors.Is(err, store.ErrNotFound):
		fmt.Fprintf(a.Stderr, "%s %s: %s: not found\n", ui.SymbolFail, cmd, prefix)
	case errors.Is(err, store.ErrAlreadyCompleted):
		fmt.Fprintf(a.Stderr, "%s %s: %s: already completed\n", ui.SymbolFail, cmd, prefix)
	default:
		fmt.Fprintf(a.Stderr, "%s %s: %s: %v\n", ui.SymbolFail, cmd, prefix, err)
	}
}
