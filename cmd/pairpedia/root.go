
package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kcarka/pairpedia/internal/config"
	"github.com/kcarka/pairpedia/internal/discovery"
	"github.com/kcarka/pairpedia/internal/httpcache"
	"github.com/kcarka/pairpedia/internal/matcher"
	"github.com/kcarka/pairpedia/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pairpedia",
	Short: "Discover, pair and parse Wikipedia/Grokipedia article pairs",
	Long: `pairpedia builds a corpus of paired encyclopedia articles: it crawls
Wikipedia category graphs for candidate titles, checks each title for a
substantive Grokipedia counterpart, and parses both sides of every pair
into hierarchical section trees for downstream analysis.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		log, err = logger.New(logger.Options{
			Level:       cfg.Log.Level,
			Development: cfg.Log.Development,
			File:        cfg.Log.File,
		})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.yaml)")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(pairCmd)
	rootCmd.AddCommand(seedsCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(harvestCmd)
}

// newFetchClient wires the on-disk cache behind a polite HTTP client.
func newFetchClient(politeDelay time.Duration) (*httpcache.Client, error) {
	cache, err := httpcache.New(cfg.Cache.Dir, time.Duration(cfg.Cache.TTLDays)*24*time.Hour)
	if err != nil {
		return nil, err
	}
	return httpcache.NewClient(cache, cfg.HTTP.Timeout, cfg.HTTP.UserAgent, politeDelay, log), nil
}

func newCrawler() *discovery.Crawler {
	return discovery.New(cfg.HTTP.Timeout, discovery.Options{
		APIURL:        cfg.Discovery.APIURL,
		UserAgent:     cfg.HTTP.UserAgent,
		PageSize:      cfg.Discovery.PageSize,
		MemberCap:     cfg.Discovery.MemberCap,
		RetryAttempts: cfg.Discovery.RetryAttempts,
		RetryBackoff:  cfg.Discovery.RetryBackoff,
		PageSleep:     cfg.Discovery.PageSleep,
	}, log)
}

func newMatcher() (*matcher.Matcher, error) {
	client, err := newFetchClient(cfg.HTTP.PoliteDelay)
	if err != nil {
		return nil, err
	}
	return matcher.New(client, cfg.Matcher.BaseURL, cfg.Matcher.MinChars, log), nil
}
