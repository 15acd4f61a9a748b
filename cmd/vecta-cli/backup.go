package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage cluster backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create BACKUP_ID",
	Short: "Start a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backupID := args[0]
		backend, _ := cmd.Flags().GetString("backend")
		include, _ := cmd.Flags().GetStringSlice("include")
		exclude, _ := cmd.Flags().GetStringSlice("exclude")

		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		bc, err := c.Backup()
		if err != nil {
			return err
		}
		if err := bc.Create(context.Background(), backend, backupID, include, exclude); err != nil {
			return fmt.Errorf("start backup: %w", err)
		}
		fmt.Printf("✓ Backup started: %s\n", backupID)
		return nil
	},
}

var backupStatusCmd = &cobra.Command{
	Use:   "status BACKUP_ID",
	Short: "Check backup status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backupID := args[0]
		backend, _ := cmd.Flags().GetString("backend")

		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		bc, err := c.Backup()
		if err != nil {
			return err
		}
		job, err := bc.Status(context.Background(), backend, backupID)
		if err != nil {
			return fmt.Errorf("backup status: %w", err)
		}
		fmt.Printf("Backup %s: %s\n", backupID, job.Status)
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore BACKUP_ID",
	Short: "Restore a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backupID := args[0]
		backend, _ := cmd.Flags().GetString("backend")
		include, _ := cmd.Flags().GetStringSlice("include")
		exclude, _ := cmd.Flags().GetStringSlice("exclude")

		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		bc, err := c.Backup()
		if err != nil {
			return err
		}
		if err := bc.Restore(context.Background(), backend, backupID, include, exclude); err != nil {
			return fmt.Errorf("start restore: %w", err)
		}
		fmt.Printf("✓ Restore started: %s\n", backupID)
		return nil
	},
}

var backupDeleteCmd = &cobra.Command{
	Use:   "delete BACKUP_ID",
	Short: "Delete a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backupID := args[0]
		backend, _ := cmd.Flags().GetString("backend")

		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		bc, err := c.Backup()
		if err != nil {
			return err
		}
		if err := bc.Delete(context.Background(), backend, backupID); err != nil {
			return fmt.Errorf("delete backup: %w", err)
		}
		fmt.Printf("✓ Backup deleted: %s\n", backupID)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{backupCreateCmd, backupStatusCmd, backupRestoreCmd, backupDeleteCmd} {
		cmd.Flags().String("backend", "filesystem", "Backup backend (filesystem, s3, gcs, azure)")
	}
	backupCreateCmd.Flags().StringSlice("include", nil, "Collections to include (default: all)")
	backupCreateCmd.Flags().StringSlice("exclude", nil, "Collections to exclude")
	backupRestoreCmd.Flags().StringSlice("include", nil, "Collections to include (default: all)")
	backupRestoreCmd.Flags().StringSlice("exclude", nil, "Collections to exclude")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupStatusCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupDeleteCmd)
}
