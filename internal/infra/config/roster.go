package config

import (
	"fmt"

	"github.com/spf13/viper"

	"collection_compliance_engine/internal/domain/roster"
)

// rosterFile mirrors the roster YAML. Example:
//
//	locations:
//	  - name: East Cobb/Roswell
//	    aliases: [East Cobb, Roswell]
//	  - name: Sandy Springs
//	    policy:
//	      kind: quorum
//	      role_a: { label: collections, submitter: Lisa Hiles }
//	      role_b: { label: inventory, submitter: Mark Webb, allow_proxy: true }
type rosterFile struct {
	Locations []rosterLocation `mapstructure:"locations"`
}

type rosterLocation struct {
	Name    string       `mapstructure:"name"`
	Aliases []string     `mapstructure:"aliases"`
	Policy  rosterPolicy `mapstructure:"policy"`
}

type rosterPolicy struct {
	Kind  string      `mapstructure:"kind"`
	RoleA *rosterRole `mapstructure:"role_a"`
	RoleB *rosterRole `mapstructure:"role_b"`
}

type rosterRole struct {
	Label      string `mapstructure:"label"`
	Submitter  string `mapstructure:"submitter"`
	AllowProxy bool   `mapstructure:"allow_proxy"`
}

// LoadRoster reads the tracked-location roster from the YAML file at path
// and returns the validated, immutable roster.
func LoadRoster(path string) (*roster.Roster, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading roster file %s: %w", path, err)
	}

	var file rosterFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("parsing roster file %s: %w", path, err)
	}

	locations := make([]roster.Location, 0, len(file.Locations))
	for _, fl := range file.Locations {
		loc := roster.Location{
			Name:    fl.Name,
			Aliases: fl.Aliases,
			Policy:  roster.Policy{Kind: policyKind(fl.Policy.Kind)},
		}
		if loc.Policy.Kind == roster.PolicyQuorum {
			loc.Policy.RoleA = quorumRole(fl.Policy.RoleA)
			loc.Policy.RoleB = quorumRole(fl.Policy.RoleB)
		}
		locations = append(locations, loc)
	}

	r, err := roster.NewRoster(locations, roster.FuzzyMatcher{})
	if err != nil {
		return nil, fmt.Errorf("invalid roster in %s: %w", path, err)
	}
	return r, nil
}

// policyKind maps the YAML policy kind to the domain constant. An absent
// kind means the default any-submission rule.
func policyKind(kind string) roster.PolicyKind {
	switch kind {
	case "quorum":
		return roster.PolicyQuorum
	case "", "default":
		return roster.PolicyDefault
	}
	// Unknown kinds flow through so roster validation can name them.
	return roster.PolicyKind(kind)
}

func quorumRole(fr *rosterRole) *roster.QuorumRole {
	if fr == nil {
		return nil
	}
	return &roster.QuorumRole{
		Label:      fr.Label,
		Submitter:  fr.Submitter,
		AllowProxy: fr.AllowProxy,
	}
}
