package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collection_compliance_engine/internal/domain/roster"
)

func TestLoadRoster_ParsesLocationsAndPolicies(t *testing.T) {
	r, err := LoadRoster("testdata/roster.yaml")
	require.NoError(t, err)
	require.Equal(t, 3, r.Len())

	locs := r.Locations()

	assert.Equal(t, "East Cobb", locs[0].Name)
	assert.Equal(t, roster.PolicyDefault, locs[0].Policy.Kind)
	assert.Empty(t, locs[0].Aliases)

	assert.Equal(t, "Marietta/Kennesaw", locs[1].Name)
	assert.Equal(t, []string{"Marietta", "Kennesaw"}, locs[1].Aliases)

	sandySprings := locs[2]
	require.Equal(t, roster.PolicyQuorum, sandySprings.Policy.Kind)
	require.NotNil(t, sandySprings.Policy.RoleA)
	require.NotNil(t, sandySprings.Policy.RoleB)
	assert.Equal(t, "collections", sandySprings.Policy.RoleA.Label)
	assert.Equal(t, "Lisa Hiles", sandySprings.Policy.RoleA.Submitter)
	assert.False(t, sandySprings.Policy.RoleA.AllowProxy)
	assert.Equal(t, "inventory", sandySprings.Policy.RoleB.Label)
	assert.Equal(t, "Mark Webb", sandySprings.Policy.RoleB.Submitter)
	assert.True(t, sandySprings.Policy.RoleB.AllowProxy)
}

func TestLoadRoster_LoadedRosterMatchesFreeText(t *testing.T) {
	r, err := LoadRoster("testdata/roster.yaml")
	require.NoError(t, err)

	loc, ok := r.Match("kennesaw report")
	require.True(t, ok)
	assert.Equal(t, "Marietta/Kennesaw", loc.Name)
}

func TestLoadRoster_MissingFile(t *testing.T) {
	_, err := LoadRoster("testdata/absent.yaml")
	require.Error(t, err)
}

func TestLoadRoster_RejectsInvalidRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	body := "locations:\n  - name: East Cobb\n  - name: east-cobb\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	_, err := LoadRoster(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadRoster_RejectsQuorumWithoutRoles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	body := "locations:\n  - name: Sandy Springs\n    policy:\n      kind: quorum\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	_, err := LoadRoster(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both roles")
}

func TestLoadRoster_RejectsUnknownPolicyKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	body := "locations:\n  - name: East Cobb\n    policy:\n      kind: triple\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	_, err := LoadRoster(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown policy kind")
}
