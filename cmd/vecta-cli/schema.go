package main

import (
	"context"
	"fmt"

	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage collection schema",
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		sc, err := c.Schema()
		if err != nil {
			return err
		}
		collections, err := sc.List(context.Background())
		if err != nil {
			return fmt.Errorf("list collections: %w", err)
		}
		if len(collections) == 0 {
			fmt.Println("No collections found")
			return nil
		}
		fmt.Printf("%-30s %-10s %s\n", "NAME", "TENANCY", "PROPERTIES")
		for _, col := range collections {
			fmt.Printf("%-30s %-10t %d\n", col.Name, col.MultiTenancyEnabled, len(col.Properties))
		}
		return nil
	},
}

var schemaCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		description, _ := cmd.Flags().GetString("description")
		multiTenant, _ := cmd.Flags().GetBool("multi-tenant")
		replicationFactor, _ := cmd.Flags().GetInt("replication-factor")

		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		sc, err := c.Schema()
		if err != nil {
			return err
		}
		err = sc.Create(context.Background(), models.Collection{
			Name:                name,
			Description:         description,
			MultiTenancyEnabled: multiTenant,
			ReplicationFactor:   replicationFactor,
		})
		if err != nil {
			return fmt.Errorf("create collection: %w", err)
		}
		fmt.Printf("✓ Collection created: %s\n", models.NormalizeCollectionName(name))
		return nil
	},
}

var schemaDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		sc, err := c.Schema()
		if err != nil {
			return err
		}
		if err := sc.Delete(context.Background(), name); err != nil {
			return fmt.Errorf("delete collection: %w", err)
		}
		fmt.Printf("✓ Collection deleted: %s\n", name)
		return nil
	},
}

func init() {
	schemaCreateCmd.Flags().String("description", "", "Collection description")
	schemaCreateCmd.Flags().Bool("multi-tenant", false, "Enable multi-tenancy")
	schemaCreateCmd.Flags().Int("replication-factor", 1, "Replication factor")

	schemaCmd.AddCommand(schemaListCmd)
	schemaCmd.AddCommand(schemaCreateCmd)
	schemaCmd.AddCommand(schemaDeleteCmd)
}
