package main

import (
	"fmt"

	"github.com/cuemby/vecta-go/pkg/vconfig"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved connection profiles (~/.vecta/config.yaml)",
}

var profileSetCmd = &cobra.Command{
	Use:   "set NAME",
	Short: "Save or update a connection profile and make it active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		server, _ := cmd.Flags().GetString("server")
		apiKey, _ := cmd.Flags().GetString("api-key")
		grpcAddr, _ := cmd.Flags().GetString("grpc-addr")
		if server == "" {
			return fmt.Errorf("--server is required")
		}

		path, err := vconfig.DefaultProfilePath()
		if err != nil {
			return err
		}
		pf, err := vconfig.LoadProfileFile(path)
		if err != nil {
			return err
		}
		pf = pf.Upsert(vconfig.Profile{Name: name, BaseURL: server, APIKey: apiKey, GRPCAddr: grpcAddr})
		pf.ActiveProfile = name
		if err := vconfig.SaveProfileFile(path, pf); err != nil {
			return err
		}

		fmt.Printf("✓ Profile %q saved and set active\n", name)
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := vconfig.DefaultProfilePath()
		if err != nil {
			return err
		}
		pf, err := vconfig.LoadProfileFile(path)
		if err != nil {
			return err
		}
		if len(pf.Profiles) == 0 {
			fmt.Println("No profiles saved")
			return nil
		}
		for _, p := range pf.Profiles {
			marker := " "
			if p.Name == pf.ActiveProfile {
				marker = "*"
			}
			fmt.Printf("%s %-20s %s\n", marker, p.Name, p.BaseURL)
		}
		return nil
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use NAME",
	Short: "Set the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		path, err := vconfig.DefaultProfilePath()
		if err != nil {
			return err
		}
		pf, err := vconfig.LoadProfileFile(path)
		if err != nil {
			return err
		}
		if _, ok := pf.Find(name); !ok {
			return fmt.Errorf("no saved profile named %q", name)
		}
		pf.ActiveProfile = name
		if err := vconfig.SaveProfileFile(path, pf); err != nil {
			return err
		}
		fmt.Printf("✓ Active profile: %s\n", name)
		return nil
	},
}

func init() {
	profileSetCmd.Flags().String("server", "", "Server base URL (required)")
	profileSetCmd.Flags().String("api-key", "", "Static API key")
	profileSetCmd.Flags().String("grpc-addr", "", "RPC data-plane address")
	_ = profileSetCmd.MarkFlagRequired("server")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileUseCmd)
}
