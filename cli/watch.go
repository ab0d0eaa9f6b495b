package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge/compiler/gen"
	"github.com/schemaforge/schemaforge/compiler/load"
	"github.com/schemaforge/schemaforge/logger"
)

// snapshotFile is the per-output-directory digest file watch mode uses
// to rewrite only changed artifacts across runs.
const snapshotFile = ".schemaforge.snap"

func newWatchCmd(log logger.Logger) *cobra.Command {
	f := &generateFlags{}
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch SCHEMA_FILE",
		Short: "Regenerate on schema or config changes, rewriting only changed files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), log, f, args[0], debounce)
		},
	}
	f.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 250*time.Millisecond, "delay before regenerating after a change")
	return cmd
}

func runWatch(ctx context.Context, log logger.Logger, f *generateFlags, schemaPath string, debounce time.Duration) error {
	snapPath := filepath.Join(f.out, snapshotFile)
	prev, err := gen.LoadSnapshot(snapPath)
	if err != nil {
		return err
	}
	snap, err := regenerate(ctx, log, f, schemaPath, snapPath, prev)
	if err != nil {
		return err
	}
	prev = snap

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace files by rename, which drops a direct
	// watch, so watch the parent directories and filter by path.
	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	inputs := []string{schemaPath}
	if f.config != "" {
		inputs = append(inputs, f.config)
	}
	for _, path := range inputs {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	log.Printf("watching %d file(s), debounce %s", len(watched), debounce)

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		case <-timer.C:
			snap, err := regenerate(ctx, log, f, schemaPath, snapPath, prev)
			if err != nil {
				// Keep watching; a half-saved schema usually fails once.
				log.Printf("regeneration failed: %v", err)
				continue
			}
			prev = snap
		}
	}
}

// regenerate runs one generation pass, writes only the files whose
// content changed since the previous snapshot and removes files no
// longer generated.
func regenerate(ctx context.Context, log logger.Logger, f *generateFlags, schemaPath, snapPath string, prev *gen.Snapshot) (*gen.Snapshot, error) {
	g, d, err := f.resolve()
	if err != nil {
		return nil, err
	}
	res, err := load.LoadFile(schemaPath, d)
	if err != nil {
		return nil, err
	}
	report, err := g.Generate(ctx, res.Tables)
	if err != nil {
		return nil, err
	}
	if err := report.Err(); err != nil {
		return nil, err
	}

	snap := gen.NewSnapshot(report)
	only := make(map[string]bool)
	for _, path := range snap.Changed(prev) {
		only[path] = true
	}
	n, err := report.WriteFiles(f.out, only)
	if err != nil {
		return nil, err
	}
	removed := snap.Removed(prev)
	for _, path := range removed {
		if err := os.Remove(filepath.Join(f.out, path)); err != nil && !os.IsNotExist(err) {
			log.Printf("remove %s: %v", path, err)
		}
	}

	for _, fl := range res.Failures {
		log.Printf("skipped table %s: %v", fl.Table, fl.Err)
	}
	for _, fl := range report.Failures {
		log.Printf("failed table %s template %s: %v", fl.Table, fl.Template, fl.Err)
	}
	log.Printf("%d file(s) changed, %d removed (run %s)", n, len(removed), report.RunID)

	if err := snap.Save(snapPath); err != nil {
		return nil, err
	}
	return snap, nil
}
