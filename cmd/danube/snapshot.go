package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"danube/internal/driver"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [flags] <file.dn|project-dir>",
	Short: "Save the scope graph of a module tree",
	Long: `Snapshot collects a module tree and writes its frozen scope graph, the
interned names and a fingerprint of every source file`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached scope graphs",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean [file.dn|project-dir]",
	Short: "Drop the cached graph of one module tree, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheClean,
}

func init() {
	snapshotCmd.Flags().StringP("out", "o", "", "output file")
	snapshotCmd.Flags().Bool("cache", false, "store the snapshot in the user cache")
	cacheCmd.AddCommand(cacheCleanCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) (err error) {
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	toCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	if outPath == "" && !toCache {
		return fmt.Errorf("either --out or --cache is required")
	}

	a, err := analyzePath(cmd, args[0], true)
	if err != nil {
		return err
	}
	res := a.result
	if res.Bag.HasErrors() && !quiet(cmd) {
		fmt.Fprintf(os.Stderr, "warning: %d diagnostics during collection; the graph may be partial\n", res.Bag.Len())
	}
	snap := driver.TakeSnapshot(res)

	if toCache {
		cache, err := driver.OpenSnapshotCache("danube")
		if err != nil {
			return err
		}
		if err := cache.Put(driver.CacheKey(res.Input), snap); err != nil {
			return err
		}
	}
	if outPath != "" {
		var f *os.File
		if f, err = os.Create(outPath); err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w := bufio.NewWriter(f)
		if err = driver.WriteSnapshot(w, res); err != nil {
			return err
		}
		if err = w.Flush(); err != nil {
			return err
		}
	}

	if !quiet(cmd) {
		env := res.Program.Env
		fmt.Fprintf(os.Stderr, "snapshot: %d scopes, %d definitions, %d files\n",
			env.NumScopes(), env.NumNodes(), len(snap.Files))
	}
	a.printTimings(cmd, os.Stderr)
	return nil
}

func runCacheClean(cmd *cobra.Command, args []string) error {
	cache, err := driver.OpenSnapshotCache("danube")
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cache.DropAll()
	}
	in, err := driver.ResolveInput(args[0])
	if err != nil {
		return err
	}
	return cache.Drop(driver.CacheKey(in))
}
