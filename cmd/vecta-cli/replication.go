package main

import (
	"context"
	"fmt"

	"github.com/cuemby/vecta-go/pkg/replication"
	"github.com/spf13/cobra"
)

var replicationCmd = &cobra.Command{
	Use:   "replication",
	Short: "Manage shard replication operations",
}

var replicationStartCmd = &cobra.Command{
	Use:   "start COLLECTION SHARD SOURCE_NODE TARGET_NODE",
	Short: "Start a shard replication operation",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		collection, shard, source, target := args[0], args[1], args[2], args[3]
		transferType, _ := cmd.Flags().GetString("type")

		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		rc, err := c.Replication()
		if err != nil {
			return err
		}
		op, err := rc.Start(context.Background(), collection, shard, source, target, replication.TransferType(transferType))
		if err != nil {
			return fmt.Errorf("start replication: %w", err)
		}
		fmt.Printf("✓ Replication operation started: %s\n", op.UUID)
		return nil
	},
}

var replicationGetCmd = &cobra.Command{
	Use:   "get UUID",
	Short: "Get a replication operation's status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uuid := args[0]
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		rc, err := c.Replication()
		if err != nil {
			return err
		}
		op, err := rc.Get(context.Background(), uuid)
		if err != nil {
			return fmt.Errorf("get replication operation: %w", err)
		}
		fmt.Printf("%s: %s (%s %s -> %s)\n", op.UUID, op.Status, op.Collection, op.SourceNode, op.TargetNode)
		return nil
	},
}

var replicationCancelCmd = &cobra.Command{
	Use:   "cancel UUID",
	Short: "Cancel a replication operation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uuid := args[0]
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		rc, err := c.Replication()
		if err != nil {
			return err
		}
		if err := rc.Cancel(context.Background(), uuid); err != nil {
			return fmt.Errorf("cancel replication operation: %w", err)
		}
		fmt.Printf("✓ Cancelled: %s\n", uuid)
		return nil
	},
}

var replicationShardingStateCmd = &cobra.Command{
	Use:   "sharding-state",
	Short: "Show the cluster's current shard placement",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		rc, err := c.Replication()
		if err != nil {
			return err
		}
		states, err := rc.ShardingState(context.Background())
		if err != nil {
			return fmt.Errorf("sharding state: %w", err)
		}
		for _, s := range states {
			fmt.Printf("%-20s %-12s %v\n", s.Collection, s.Shard, s.Replicas)
		}
		return nil
	},
}

func init() {
	replicationStartCmd.Flags().String("type", string(replication.TransferCopy), "Transfer type: copy or move")

	replicationCmd.AddCommand(replicationStartCmd)
	replicationCmd.AddCommand(replicationGetCmd)
	replicationCmd.AddCommand(replicationCancelCmd)
	replicationCmd.AddCommand(replicationShardingStateCmd)
}
