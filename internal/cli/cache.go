package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FabioUrbina/rdkit/pkg/cache"
)

// cacheCommand manages the local drawing cache.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local drawing cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached drawings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			defer fc.Close()

			n, err := clearCache(cmd, fc)
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached drawings", n)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

func clearCache(cmd *cobra.Command, c cache.Cache) (int, error) {
	cl, ok := c.(cache.Clearer)
	if !ok {
		printWarning("This cache cannot be cleared")
		return 0, nil
	}
	return cl.Clear(cmd.Context())
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(c.Out, dir)
			return nil
		},
	}
}
