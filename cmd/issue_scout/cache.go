package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/issue-scout/internal/cache"
	"github.com/jonathan/issue-scout/internal/logging"
	"github.com/jonathan/issue-scout/internal/observability"
	"github.com/jonathan/issue-scout/internal/pipeline"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the search and analysis cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry counts and hit rates",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached search results and analyses",
	RunE:  runCacheClear,
}

var (
	cacheDataDir string
	cacheClearNS string
)

func init() {
	cacheCmd.PersistentFlags().StringVar(&cacheDataDir, "data-dir", "", "Directory holding the cache file (default ~/.issue-scout)")
	cacheClearCmd.Flags().StringVar(&cacheClearNS, "namespace", "", "Clear only one namespace: search or analysis")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCacheStore() (*cache.Store, error) {
	log := logging.New(false)
	path := pipeline.DefaultCachePath(resolveDataDir(cacheDataDir))
	store, err := cache.New(cache.DefaultConfig(path), log)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache at %s: %w", path, err)
	}
	return store, nil
}

func runCacheStats(_ *cobra.Command, _ []string) error {
	store, err := openCacheStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintCacheStats(store.Stats())
	return nil
}

func runCacheClear(_ *cobra.Command, _ []string) error {
	store, err := openCacheStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	switch cacheClearNS {
	case "":
		if err := store.ClearAll(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println("Cleared all cached entries.")
	case string(cache.NamespaceSearch), string(cache.NamespaceAnalysis):
		if err := store.Clear(cache.Namespace(cacheClearNS)); err != nil {
			return fmt.Errorf("failed to clear %s cache: %w", cacheClearNS, err)
		}
		fmt.Printf("Cleared the %s cache.\n", cacheClearNS)
	default:
		return fmt.Errorf("unknown namespace %q (expected search or analysis)", cacheClearNS)
	}
	return nil
}
