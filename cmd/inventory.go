package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"inventory-manager/feature/inventory"
	"inventory-manager/feature/inventory/pipeline"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	dryRunImport  bool
	importWorkers int
)

// inventoryCmd is the parent command for inventory operations.
var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Submit inventories and manage inventory records",
}

// importCmd runs inventory documents from disk through the pipeline.
var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import inventory documents",
	Long: `Runs each inventory document through the pipeline and prints its result.

Examples:
  # Preview what an inventory would change
  inventory import pc01.json --dry-run

  # Import a directory dump with four workers
  inventory import dumps/*.json --workers 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		orchestrator, err := a.orchestrator(ctx)
		if err != nil {
			return err
		}

		results := make([]*pipeline.Result, len(args))
		var failed int
		var mu sync.Mutex

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(importWorkers)
		for i, path := range args {
			g.Go(func() error {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				res, err := orchestrator.Submit(gctx, raw, pipeline.SubmitOptions{DryRun: dryRunImport})
				if err != nil {
					a.logger.Warn("Inventory rejected", zap.String("file", path), zap.Error(err))
					mu.Lock()
					failed++
					mu.Unlock()
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Println(string(out))

		if failed > 0 {
			return fmt.Errorf("%d of %d inventories aborted", failed, len(args))
		}
		return nil
	},
}

// unmanagedCmd registers a placeholder device owning network ports.
var unmanagedCmd = &cobra.Command{
	Use:   "unmanaged <name> <mac>...",
	Short: "Register an unmanaged device for MAC addresses seen on the network",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		svc := inventory.NewService(nil, a.store, a.logger)
		device, err := svc.RegisterUnmanaged(ctx, args[0], args[1:])
		if err != nil {
			return err
		}
		a.logger.Info("Unmanaged device registered", zap.Uint("id", device.ID), zap.String("name", device.Name))
		return nil
	},
}

// agentCmd prints the agent registered for a device.
var agentCmd = &cobra.Command{
	Use:   "agent <deviceid>",
	Short: "Show the agent record of a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := bootstrap(ctx, false)
		if err != nil {
			return err
		}

		agent, err := a.store.FindAgent(ctx, args[0])
		if err != nil {
			return err
		}
		if agent == nil {
			return fmt.Errorf("no agent for device %q", args[0])
		}

		out, err := json.MarshalIndent(agent, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(inventoryCmd)
	inventoryCmd.AddCommand(importCmd, unmanagedCmd, agentCmd)

	importCmd.Flags().BoolVar(&dryRunImport, "dry-run", false, "Compute plans without writing anything")
	importCmd.Flags().IntVar(&importWorkers, "workers", 1, "Number of inventories processed concurrently")
}
