package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster readiness, liveness, node and version queries",
}

var clusterReadyCmd = &cobra.Command{
	Use:   "ready",
	Short: "Check whether the server is ready to serve traffic",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		cc, err := c.Cluster()
		if err != nil {
			return err
		}
		ready, err := cc.Ready(context.Background())
		if err != nil {
			return fmt.Errorf("check ready: %w", err)
		}
		fmt.Println(ready)
		return nil
	},
}

var clusterLiveCmd = &cobra.Command{
	Use:   "live",
	Short: "Check whether the server process is alive",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		cc, err := c.Cluster()
		if err != nil {
			return err
		}
		live, err := cc.Live(context.Background())
		if err != nil {
			return fmt.Errorf("check live: %w", err)
		}
		fmt.Println(live)
		return nil
	},
}

var clusterNodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List cluster nodes and their shard summaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		cc, err := c.Cluster()
		if err != nil {
			return err
		}
		nodes, err := cc.Nodes(context.Background())
		if err != nil {
			return fmt.Errorf("list nodes: %w", err)
		}
		if len(nodes) == 0 {
			fmt.Println("No nodes found")
			return nil
		}
		fmt.Printf("%-20s %-10s %s\n", "NAME", "STATUS", "SHARDS")
		for _, n := range nodes {
			fmt.Printf("%-20s %-10s %d\n", n.Name, n.Status, len(n.Shards))
		}
		return nil
	},
}

var clusterMetaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Show the connected server's version and identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		cc, err := c.Cluster()
		if err != nil {
			return err
		}
		meta, err := cc.Meta(context.Background())
		if err != nil {
			return fmt.Errorf("get meta: %w", err)
		}
		fmt.Printf("Version: %s\n", meta.Version)
		if meta.Hostname != "" {
			fmt.Printf("Hostname: %s\n", meta.Hostname)
		}
		return nil
	},
}

func init() {
	clusterCmd.AddCommand(clusterReadyCmd)
	clusterCmd.AddCommand(clusterLiveCmd)
	clusterCmd.AddCommand(clusterNodesCmd)
	clusterCmd.AddCommand(clusterMetaCmd)
}
