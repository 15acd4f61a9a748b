package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage collection aliases",
}

var aliasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List aliases",
	RunE: func(cmd *cobra.Command, args []string) error {
		collection, _ := cmd.Flags().GetString("collection")

		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		ac, err := c.Aliases()
		if err != nil {
			return err
		}
		aliases, err := ac.ListAll(context.Background(), collection)
		if err != nil {
			return fmt.Errorf("list aliases: %w", err)
		}
		if len(aliases) == 0 {
			fmt.Println("No aliases found")
			return nil
		}
		fmt.Printf("%-25s %s\n", "ALIAS", "COLLECTION")
		for _, a := range aliases {
			fmt.Printf("%-25s %s\n", a.Name, a.TargetCollection)
		}
		return nil
	},
}

var aliasCreateCmd = &cobra.Command{
	Use:   "create NAME TARGET_COLLECTION",
	Short: "Create an alias pointing at a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, target := args[0], args[1]
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		ac, err := c.Aliases()
		if err != nil {
			return err
		}
		if err := ac.Create(context.Background(), name, target); err != nil {
			return fmt.Errorf("create alias: %w", err)
		}
		fmt.Printf("✓ Alias created: %s -> %s\n", name, target)
		return nil
	},
}

var aliasUpdateCmd = &cobra.Command{
	Use:   "update NAME NEW_TARGET_COLLECTION",
	Short: "Repoint an alias at a different collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, target := args[0], args[1]
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		ac, err := c.Aliases()
		if err != nil {
			return err
		}
		if err := ac.Update(context.Background(), name, target); err != nil {
			return fmt.Errorf("update alias: %w", err)
		}
		fmt.Printf("✓ Alias updated: %s -> %s\n", name, target)
		return nil
	},
}

var aliasDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete an alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		ac, err := c.Aliases()
		if err != nil {
			return err
		}
		if err := ac.Delete(context.Background(), name); err != nil {
			return fmt.Errorf("delete alias: %w", err)
		}
		fmt.Printf("✓ Alias deleted: %s\n", name)
		return nil
	},
}

func init() {
	aliasListCmd.Flags().String("collection", "", "Filter by target collection")

	aliasCmd.AddCommand(aliasListCmd)
	aliasCmd.AddCommand(aliasCreateCmd)
	aliasCmd.AddCommand(aliasUpdateCmd)
	aliasCmd.AddCommand(aliasDeleteCmd)
}
