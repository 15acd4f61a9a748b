package vconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Profile is one saved CLI connection profile, persisted to
// ~/.vecta/config.yaml, mirroring the teacher's apply.go YAML-resource
// loading style.
type Profile struct {
	Name     string `yaml:"name"`
	BaseURL  string `yaml:"baseUrl"`
	APIKey   string `yaml:"apiKey,omitempty"`
	GRPCAddr string `yaml:"grpcAddr,omitempty"`
}

// ProfileFile is the on-disk shape of ~/.vecta/config.yaml: a set of
// named profiles plus which one is active.
type ProfileFile struct {
	ActiveProfile string    `yaml:"activeProfile"`
	Profiles      []Profile `yaml:"profiles"`
}

// DefaultProfilePath returns ~/.vecta/config.yaml, creating no directories.
func DefaultProfilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("vconfig: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".vecta", "config.yaml"), nil
}

// LoadProfileFile reads and parses the profile file at path. A missing
// file is not an error; it yields an empty ProfileFile.
func LoadProfileFile(path string) (ProfileFile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ProfileFile{}, nil
	}
	if err != nil {
		return ProfileFile{}, fmt.Errorf("vconfig: read profile file: %w", err)
	}
	var pf ProfileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return ProfileFile{}, fmt.Errorf("vconfig: parse profile file: %w", err)
	}
	return pf, nil
}

// SaveProfileFile writes pf to path, creating the parent directory
// (mode 0700) if absent.
func SaveProfileFile(path string, pf ProfileFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("vconfig: create profile directory: %w", err)
	}
	data, err := yaml.Marshal(pf)
	if err != nil {
		return fmt.Errorf("vconfig: marshal profile file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("vconfig: write profile file: %w", err)
	}
	return nil
}

// Find returns the named profile, or false if absent.
func (pf ProfileFile) Find(name string) (Profile, bool) {
	for _, p := range pf.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// Active returns the active profile, or false if none is set or it no
// longer exists in Profiles.
func (pf ProfileFile) Active() (Profile, bool) {
	if pf.ActiveProfile == "" {
		return Profile{}, false
	}
	return pf.Find(pf.ActiveProfile)
}

// Upsert adds p or replaces the existing profile of the same name.
func (pf ProfileFile) Upsert(p Profile) ProfileFile {
	for i, existing := range pf.Profiles {
		if existing.Name == p.Name {
			pf.Profiles[i] = p
			return pf
		}
	}
	pf.Profiles = append(pf.Profiles, p)
	return pf
}

// ToOptions turns a saved profile into vconfig.Option values.
func (p Profile) ToOptions() []Option {
	var opts []Option
	if p.APIKey != "" {
		opts = append(opts, WithAPIKey(p.APIKey))
	}
	if p.GRPCAddr != "" {
		opts = append(opts, WithGRPC(p.GRPCAddr, false))
	}
	return opts
}
