package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collection_compliance_engine/internal/domain/roster"
	"collection_compliance_engine/internal/domain/submission"
)

func plainLocation(name string, aliases ...string) roster.Location {
	return roster.Location{
		Name:    name,
		Aliases: aliases,
		Policy:  roster.Policy{Kind: roster.PolicyDefault},
	}
}

func quorumLocation(name string, allowProxy bool) roster.Location {
	return roster.Location{
		Name: name,
		Policy: roster.Policy{
			Kind:  roster.PolicyQuorum,
			RoleA: &roster.QuorumRole{Label: "collections", Submitter: "Lisa Hiles"},
			RoleB: &roster.QuorumRole{Label: "inventory", Submitter: "Mark Webb", AllowProxy: allowProxy},
		},
	}
}

func mustRoster(t *testing.T, locations ...roster.Location) *roster.Roster {
	t.Helper()
	r, err := roster.NewRoster(locations, nil)
	require.NoError(t, err)
	return r
}

func entry(id int64, locationRaw, submitter string, day time.Time) submission.Record {
	return submission.Record{
		ID:             id,
		LocationRaw:    locationRaw,
		SubmitterName:  submitter,
		CollectionDate: day,
	}
}

func TestBuildWeekStatuses_MatchesFreeTextToRoster(t *testing.T) {
	r := mustRoster(t, plainLocation("East Cobb"), plainLocation("Roswell"))
	collected := date(2024, time.March, 8).Add(14 * time.Hour)

	statuses := BuildWeekStatuses(r, []submission.Record{
		entry(1, "east cobb report", "Jane Smith", collected),
	}, nil)

	require.Len(t, statuses, 2)

	eastCobb := statuses[0]
	assert.Equal(t, "East Cobb", eastCobb.Location.Name)
	assert.True(t, eastCobb.HasSubmitted)
	assert.Equal(t, []string{"Jane Smith"}, eastCobb.Submitters)
	require.NotNil(t, eastCobb.LastSubmission)
	assert.True(t, eastCobb.LastSubmission.Equal(collected))
	assert.Nil(t, eastCobb.Quorum)

	roswell := statuses[1]
	assert.False(t, roswell.HasSubmitted)
	assert.Empty(t, roswell.Submitters)
	assert.Nil(t, roswell.LastSubmission)
}

func TestBuildWeekStatuses_UnmatchedRecordsAreDropped(t *testing.T) {
	r := mustRoster(t, plainLocation("East Cobb"))

	statuses := BuildWeekStatuses(r, []submission.Record{
		entry(1, "Atlanta HQ", "Jane Smith", date(2024, time.March, 8)),
	}, nil)

	require.Len(t, statuses, 1)
	assert.False(t, statuses[0].HasSubmitted)
}

func TestBucketRecords_FirstRosterEntryWins(t *testing.T) {
	// "east cobb south" overlaps both entries; roster order decides.
	r := mustRoster(t, plainLocation("East Cobb"), plainLocation("East Cobb South"))

	buckets := BucketRecords(r, []submission.Record{
		entry(1, "east cobb south", "Jane Smith", date(2024, time.March, 8)),
	})

	assert.Len(t, buckets["East Cobb"], 1)
	assert.Empty(t, buckets["East Cobb South"])
}

func TestEvaluateLocation_DefaultPolicyAnyRecordCounts(t *testing.T) {
	loc := plainLocation("East Cobb")

	status := EvaluateLocation(loc, nil, nil)
	assert.False(t, status.HasSubmitted)

	status = EvaluateLocation(loc, []submission.Record{
		entry(1, "East Cobb", "Anyone At All", date(2024, time.March, 7)),
	}, nil)
	assert.True(t, status.HasSubmitted)
}

func TestEvaluateLocation_QuorumNeedsBothRoles(t *testing.T) {
	loc := quorumLocation("Sandy Springs", false)

	status := EvaluateLocation(loc, []submission.Record{
		entry(1, "Sandy Springs", "Lisa Hiles", date(2024, time.March, 7)),
	}, nil)

	require.NotNil(t, status.Quorum)
	assert.True(t, status.Quorum.RoleAMet)
	assert.False(t, status.Quorum.RoleBMet)
	assert.False(t, status.HasSubmitted, "one of two roles must not complete the quorum")

	status = EvaluateLocation(loc, []submission.Record{
		entry(1, "Sandy Springs", "Lisa Hiles", date(2024, time.March, 7)),
		entry(2, "Sandy Springs", "Mark Webb", date(2024, time.March, 9)),
	}, nil)

	assert.True(t, status.HasSubmitted)
	assert.True(t, status.Quorum.RoleAMet)
	assert.True(t, status.Quorum.RoleBMet)
	require.NotNil(t, status.LastSubmission)
	assert.True(t, status.LastSubmission.Equal(date(2024, time.March, 9)))
}

func TestEvaluateLocation_SubmitterTokensMatchLoosely(t *testing.T) {
	loc := quorumLocation("Sandy Springs", false)

	// Signed surname-first; both tokens still present.
	status := EvaluateLocation(loc, []submission.Record{
		entry(1, "Sandy Springs", "Hiles, Lisa", date(2024, time.March, 7)),
	}, nil)
	assert.True(t, status.Quorum.RoleAMet)

	// First name alone is not enough.
	status = EvaluateLocation(loc, []submission.Record{
		entry(1, "Sandy Springs", "Lisa", date(2024, time.March, 7)),
	}, nil)
	assert.False(t, status.Quorum.RoleAMet)
}

func TestEvaluateLocation_ProxyCoversSecondRole(t *testing.T) {
	loc := quorumLocation("Sandy Springs", true)
	records := []submission.Record{
		entry(1, "Sandy Springs", "Lisa Hiles", date(2024, time.March, 7)),
		entry(2, "Sandy Springs", "Sarah Kim", date(2024, time.March, 8)),
	}

	status := EvaluateLocation(loc, records, []string{"Sarah Kim"})
	assert.True(t, status.HasSubmitted)
	assert.True(t, status.Quorum.RoleBMet)

	// Proxies never stand in for the first role.
	status = EvaluateLocation(loc, []submission.Record{
		entry(1, "Sandy Springs", "Sarah Kim", date(2024, time.March, 8)),
	}, []string{"Sarah Kim"})
	assert.False(t, status.Quorum.RoleAMet)
	assert.True(t, status.Quorum.RoleBMet)
	assert.False(t, status.HasSubmitted)
}

func TestEvaluateLocation_ProxyIgnoredWhenNotAllowed(t *testing.T) {
	loc := quorumLocation("Sandy Springs", false)

	status := EvaluateLocation(loc, []submission.Record{
		entry(1, "Sandy Springs", "Sarah Kim", date(2024, time.March, 8)),
	}, []string{"Sarah Kim"})

	assert.False(t, status.Quorum.RoleBMet)
}

func TestEvaluateLocation_OneRecordMaySatisfyBothRoles(t *testing.T) {
	loc := roster.Location{
		Name: "Sandy Springs",
		Policy: roster.Policy{
			Kind:  roster.PolicyQuorum,
			RoleA: &roster.QuorumRole{Label: "collections", Submitter: "Lisa"},
			RoleB: &roster.QuorumRole{Label: "inventory", Submitter: "Mark"},
		},
	}

	status := EvaluateLocation(loc, []submission.Record{
		entry(1, "Sandy Springs", "Lisa and Mark", date(2024, time.March, 7)),
	}, nil)

	assert.True(t, status.HasSubmitted)
}

func TestEvaluateLocation_DistinctSubmittersKeepFirstSeenOrder(t *testing.T) {
	loc := plainLocation("East Cobb")

	status := EvaluateLocation(loc, []submission.Record{
		entry(1, "East Cobb", "Jane Smith", date(2024, time.March, 6)),
		entry(2, "East Cobb", "jane smith", date(2024, time.March, 7)),
		entry(3, "East Cobb", "Bob Lee", date(2024, time.March, 8)),
	}, nil)

	assert.Equal(t, []string{"Jane Smith", "Bob Lee"}, status.Submitters)
}
