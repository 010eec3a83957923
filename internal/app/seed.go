package app

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/christianrafael21/hoopscout/internal/services"
)

type profileSeedFile struct {
	Profiles []services.ReferenceProfileInput `yaml:"profiles"`
}

// LoadProfileSeed reads a YAML document of the form `profiles: [{age_category: 15, ...}]`.
func LoadProfileSeed(path string) ([]services.ReferenceProfileInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var doc profileSeedFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if len(doc.Profiles) == 0 {
		return nil, fmt.Errorf("seed file %s lists no profiles", path)
	}
	return doc.Profiles, nil
}

// SeedProfiles upserts the profiles listed in path and returns how many were written.
func (a *App) SeedProfiles(ctx context.Context, path string) (int, error) {
	in, err := LoadProfileSeed(path)
	if err != nil {
		return 0, err
	}
	return a.Services.ReferenceProfiles.Seed(ctx, in)
}
