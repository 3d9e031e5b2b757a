package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/truckershub-backend/internal/repository/cache"
)

var purgeCacheCmd = &cobra.Command{
	Use:   "purge-cache [pattern]",
	Short: "Delete cached route results and country rules",
	Long:  "Deletes cache keys matching the glob pattern, cache:* when omitted.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := "cache:*"
		if len(args) == 1 {
			pattern = args[0]
		}

		redisClient, err := openRedis()
		if err != nil {
			return err
		}
		defer redisClient.Close()

		n, err := cache.NewCacheRepository(redisClient).DeleteByPattern(cmd.Context(), pattern)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d keys\n", n)
		return nil
	},
}

func init() { rootCmd.AddCommand(purgeCacheCmd) }
