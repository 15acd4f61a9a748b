package main

import (
	"context"
	"fmt"

	"github.com/cuemby/vecta-go/pkg/vconfig"
	"github.com/cuemby/vecta-go/pkg/vecta"
	"github.com/spf13/cobra"
)

// resolveProfile merges the named (or active) saved profile with whatever
// connection flags were set on cmd, flags taking precedence. Returns a
// zero Profile with an empty BaseURL if neither a profile nor --server was
// given; the caller surfaces that as a usage error.
func resolveProfile(cmd *cobra.Command) (vconfig.Profile, error) {
	path, err := vconfig.DefaultProfilePath()
	if err != nil {
		return vconfig.Profile{}, err
	}
	pf, err := vconfig.LoadProfileFile(path)
	if err != nil {
		return vconfig.Profile{}, err
	}

	var p vconfig.Profile
	name, _ := cmd.Flags().GetString("profile")
	if name != "" {
		found, ok := pf.Find(name)
		if !ok {
			return vconfig.Profile{}, fmt.Errorf("no saved profile named %q", name)
		}
		p = found
	} else if active, ok := pf.Active(); ok {
		p = active
	}

	if server, _ := cmd.Flags().GetString("server"); server != "" {
		p.BaseURL = server
	}
	if grpcAddr, _ := cmd.Flags().GetString("grpc-addr"); grpcAddr != "" {
		p.GRPCAddr = grpcAddr
	}
	if apiKey, _ := cmd.Flags().GetString("api-key"); apiKey != "" {
		p.APIKey = apiKey
	}

	if p.BaseURL == "" {
		return vconfig.Profile{}, fmt.Errorf("no server configured; pass --server or run 'vecta-cli profile set'")
	}
	return p, nil
}

// connect resolves the effective profile and returns a connected client.
// Callers must Close it.
func connect(ctx context.Context, cmd *cobra.Command) (*vecta.Client, error) {
	p, err := resolveProfile(cmd)
	if err != nil {
		return nil, err
	}
	cfg := vconfig.NewConnectConfig(p.BaseURL, p.ToOptions()...)
	c := vecta.New(cfg)
	if err := c.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", p.BaseURL, err)
	}
	return c, nil
}
