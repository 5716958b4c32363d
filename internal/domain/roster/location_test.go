package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuorum() Policy {
	return Policy{
		Kind:  PolicyQuorum,
		RoleA: &QuorumRole{Label: "collections", Submitter: "Lisa Hiles"},
		RoleB: &QuorumRole{Label: "inventory", Submitter: "Mark Webb", AllowProxy: true},
	}
}

func TestNewRoster_Validation(t *testing.T) {
	cases := []struct {
		name      string
		locations []Location
		wantErr   string
	}{
		{
			name:    "empty roster",
			wantErr: "no locations",
		},
		{
			name: "empty location name",
			locations: []Location{
				{Name: "   ", Policy: Policy{Kind: PolicyDefault}},
			},
			wantErr: "empty name",
		},
		{
			name: "duplicate after normalization",
			locations: []Location{
				{Name: "East Cobb", Policy: Policy{Kind: PolicyDefault}},
				{Name: "east-cobb", Policy: Policy{Kind: PolicyDefault}},
			},
			wantErr: "duplicate",
		},
		{
			name: "missing policy kind",
			locations: []Location{
				{Name: "East Cobb"},
			},
			wantErr: "no policy kind",
		},
		{
			name: "unknown policy kind",
			locations: []Location{
				{Name: "East Cobb", Policy: Policy{Kind: "TRIPLE"}},
			},
			wantErr: "unknown policy kind",
		},
		{
			name: "quorum without second role",
			locations: []Location{
				{Name: "Sandy Springs", Policy: Policy{
					Kind:  PolicyQuorum,
					RoleA: &QuorumRole{Label: "collections", Submitter: "Lisa Hiles"},
				}},
			},
			wantErr: "both roles",
		},
		{
			name: "quorum role without submitter",
			locations: []Location{
				{Name: "Sandy Springs", Policy: Policy{
					Kind:  PolicyQuorum,
					RoleA: &QuorumRole{Label: "collections"},
					RoleB: &QuorumRole{Label: "inventory", Submitter: "Mark Webb"},
				}},
			},
			wantErr: "without a submitter",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRoster(tc.locations, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNewRoster_AcceptsValidConfiguration(t *testing.T) {
	r, err := NewRoster([]Location{
		{Name: "East Cobb", Policy: Policy{Kind: PolicyDefault}},
		{Name: "Sandy Springs", Policy: validQuorum()},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Locations()[1].IsQuorum())
}

func TestRosterMatch_FirstEntryWinsOnOverlap(t *testing.T) {
	r, err := NewRoster([]Location{
		{Name: "East Cobb", Policy: Policy{Kind: PolicyDefault}},
		{Name: "East Cobb South", Policy: Policy{Kind: PolicyDefault}},
	}, nil)
	require.NoError(t, err)

	loc, ok := r.Match("east cobb south")
	require.True(t, ok)
	assert.Equal(t, "East Cobb", loc.Name)
}

func TestRosterResolve_PrefersExactNameOverFuzzy(t *testing.T) {
	r, err := NewRoster([]Location{
		{Name: "East Cobb", Policy: Policy{Kind: PolicyDefault}},
		{Name: "East Cobb South", Policy: Policy{Kind: PolicyDefault}},
	}, nil)
	require.NoError(t, err)

	loc, ok := r.Resolve("east cobb south")
	require.True(t, ok)
	assert.Equal(t, "East Cobb South", loc.Name)

	loc, ok = r.Resolve("EAST COBB")
	require.True(t, ok)
	assert.Equal(t, "East Cobb", loc.Name)
}

func TestRosterResolve_FallsBackToFuzzy(t *testing.T) {
	r, err := NewRoster([]Location{
		{Name: "Marietta/Kennesaw", Aliases: []string{"Marietta"}, Policy: Policy{Kind: PolicyDefault}},
	}, nil)
	require.NoError(t, err)

	loc, ok := r.Resolve("marietta")
	require.True(t, ok)
	assert.Equal(t, "Marietta/Kennesaw", loc.Name)

	_, ok = r.Resolve("Savannah")
	assert.False(t, ok)
}
