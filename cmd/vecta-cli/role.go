package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cuemby/vecta-go/pkg/rbac"
	"github.com/spf13/cobra"
)

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Manage RBAC roles, and assign roles to users and groups",
}

var roleCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a role",
	Long: `Create a role from one or more --permission flags, each formatted
domain:action[:scope], e.g. --permission collections:create --permission data:read:Article`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		raw, _ := cmd.Flags().GetStringSlice("permission")

		perms := make([]rbac.Permission, 0, len(raw))
		for _, p := range raw {
			parts := strings.SplitN(p, ":", 3)
			if len(parts) < 2 {
				return fmt.Errorf("invalid --permission %q, want domain:action[:scope]", p)
			}
			perm := rbac.Permission{Domain: rbac.PermissionDomain(parts[0]), Action: parts[1]}
			if len(parts) == 3 {
				perm.Scope = parts[2]
			}
			perms = append(perms, perm)
		}

		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		rc, err := c.Roles()
		if err != nil {
			return err
		}
		if err := rc.CreateRole(context.Background(), rbac.Role{Name: name, Permissions: perms}); err != nil {
			return fmt.Errorf("create role: %w", err)
		}
		fmt.Printf("✓ Role created: %s\n", name)
		return nil
	},
}

var roleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		rc, err := c.Roles()
		if err != nil {
			return err
		}
		roles, err := rc.ListRoles(context.Background())
		if err != nil {
			return fmt.Errorf("list roles: %w", err)
		}
		if len(roles) == 0 {
			fmt.Println("No roles found")
			return nil
		}
		for _, role := range roles {
			fmt.Printf("%-20s %d permission(s)\n", role.Name, len(role.Permissions))
		}
		return nil
	},
}

var roleDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		rc, err := c.Roles()
		if err != nil {
			return err
		}
		if err := rc.DeleteRole(context.Background(), name); err != nil {
			return fmt.Errorf("delete role: %w", err)
		}
		fmt.Printf("✓ Role deleted: %s\n", name)
		return nil
	},
}

var roleAssignUserCmd = &cobra.Command{
	Use:   "assign-user USER ROLE...",
	Short: "Assign one or more roles to a user",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, roles := args[0], args[1:]
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		rc, err := c.Roles()
		if err != nil {
			return err
		}
		if err := rc.AssignRolesToUser(context.Background(), user, roles); err != nil {
			return fmt.Errorf("assign roles: %w", err)
		}
		fmt.Printf("✓ Assigned %d role(s) to %s\n", len(roles), user)
		return nil
	},
}

var roleAssignGroupCmd = &cobra.Command{
	Use:   "assign-group TYPE GROUP ROLE...",
	Short: "Assign one or more roles to a group (TYPE is oidc or ...)",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupType, group, roles := args[0], args[1], args[2:]
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		rc, err := c.Roles()
		if err != nil {
			return err
		}
		if err := rc.AssignRolesToGroup(context.Background(), rbac.GroupType(groupType), group, roles); err != nil {
			return fmt.Errorf("assign roles: %w", err)
		}
		fmt.Printf("✓ Assigned %d role(s) to group %s\n", len(roles), group)
		return nil
	},
}

var roleForUserCmd = &cobra.Command{
	Use:   "for-user USER",
	Short: "List roles assigned to a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user := args[0]
		c, err := connect(context.Background(), cmd)
		if err != nil {
			return err
		}
		defer c.Close(context.Background())

		rc, err := c.Roles()
		if err != nil {
			return err
		}
		roles, err := rc.RolesForUser(context.Background(), user)
		if err != nil {
			return fmt.Errorf("roles for user: %w", err)
		}
		if len(roles) == 0 {
			fmt.Println("No roles assigned")
			return nil
		}
		for _, r := range roles {
			fmt.Println(r)
		}
		return nil
	},
}

func init() {
	roleCreateCmd.Flags().StringSlice("permission", nil, "domain:action[:scope], repeatable")

	roleCmd.AddCommand(roleCreateCmd)
	roleCmd.AddCommand(roleListCmd)
	roleCmd.AddCommand(roleDeleteCmd)
	roleCmd.AddCommand(roleAssignUserCmd)
	roleCmd.AddCommand(roleAssignGroupCmd)
	roleCmd.AddCommand(roleForUserCmd)
}
