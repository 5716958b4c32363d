package report

import (
	"testing"

	"collection_compliance_engine/internal/domain/roster"
)

func weekOf(results map[string]bool, order []string) WeekReport {
	wk := WeekReport{}
	for _, name := range order {
		wk.Statuses = append(wk.Statuses, SubmissionStatus{
			Location:     roster.Location{Name: name, Policy: roster.Policy{Kind: roster.PolicyDefault}},
			HasSubmitted: results[name],
		})
	}
	return wk
}

func TestAggregate_CountsAndPercentages(t *testing.T) {
	order := []string{"East Cobb", "Roswell"}
	weeks := []WeekReport{
		weekOf(map[string]bool{"East Cobb": true, "Roswell": false}, order),
		weekOf(map[string]bool{"East Cobb": true, "Roswell": false}, order),
		weekOf(map[string]bool{"East Cobb": true, "Roswell": false}, order),
		weekOf(map[string]bool{"East Cobb": false, "Roswell": true}, order),
	}

	summary := Aggregate(weeks)

	if len(summary.Locations) != 2 {
		t.Fatalf("got %d locations, want 2", len(summary.Locations))
	}
	eastCobb := summary.Locations[0]
	if eastCobb.Submitted != 3 || eastCobb.Missed != 1 {
		t.Errorf("East Cobb = %d/%d, want 3 submitted 1 missed", eastCobb.Submitted, eastCobb.Missed)
	}
	if eastCobb.Percentage != 75 {
		t.Errorf("East Cobb percentage = %d, want 75", eastCobb.Percentage)
	}

	if summary.Overall.TotalExpected != 8 || summary.Overall.TotalSubmitted != 4 {
		t.Errorf("overall = %d/%d, want 4/8", summary.Overall.TotalSubmitted, summary.Overall.TotalExpected)
	}
	if summary.Overall.CompletionRate != 50 {
		t.Errorf("completion rate = %d, want 50", summary.Overall.CompletionRate)
	}
	if summary.Overall.WeeksCovered != 4 {
		t.Errorf("weeks covered = %d, want 4", summary.Overall.WeeksCovered)
	}
}

func TestAggregate_ReliabilityBarIsInclusive(t *testing.T) {
	order := []string{"East Cobb", "Roswell"}
	weeks := []WeekReport{
		weekOf(map[string]bool{"East Cobb": true, "Roswell": true}, order),
		weekOf(map[string]bool{"East Cobb": true, "Roswell": true}, order),
		weekOf(map[string]bool{"East Cobb": true, "Roswell": false}, order),
		weekOf(map[string]bool{"East Cobb": true, "Roswell": false}, order),
	}

	summary := Aggregate(weeks)

	// 75% exactly makes the cut; 50% does not.
	if len(summary.MostReliable) != 1 || summary.MostReliable[0].Location != "East Cobb" {
		t.Fatalf("most reliable = %+v, want East Cobb only", summary.MostReliable)
	}
}

func TestAggregate_MostMissingWorstFirst(t *testing.T) {
	order := []string{"East Cobb", "Roswell", "Duluth"}
	weeks := []WeekReport{
		weekOf(map[string]bool{"East Cobb": true, "Roswell": false, "Duluth": false}, order),
		weekOf(map[string]bool{"East Cobb": true, "Roswell": false, "Duluth": true}, order),
	}

	summary := Aggregate(weeks)

	if len(summary.MostMissing) != 2 {
		t.Fatalf("got %d most-missing rows, want 2", len(summary.MostMissing))
	}
	if summary.MostMissing[0].Location != "Roswell" || summary.MostMissing[0].Missed != 2 {
		t.Errorf("worst = %+v, want Roswell with 2 missed", summary.MostMissing[0])
	}
	if summary.MostMissing[1].Location != "Duluth" {
		t.Errorf("second = %+v, want Duluth", summary.MostMissing[1])
	}
}

func TestAggregate_RankingsCapAtThree(t *testing.T) {
	order := []string{"Alpharetta", "Decatur", "Duluth", "East Cobb", "Roswell"}
	results := map[string]bool{}
	for _, name := range order {
		results[name] = true
	}
	weeks := []WeekReport{weekOf(results, order)}

	summary := Aggregate(weeks)

	if len(summary.MostReliable) != 3 {
		t.Fatalf("got %d most-reliable rows, want 3", len(summary.MostReliable))
	}
	// All tie at 100%; names break the tie.
	want := []string{"Alpharetta", "Decatur", "Duluth"}
	for i, name := range want {
		if summary.MostReliable[i].Location != name {
			t.Errorf("rank %d = %s, want %s", i, summary.MostReliable[i].Location, name)
		}
	}
	if len(summary.MostMissing) != 0 {
		t.Errorf("most missing = %+v, want empty", summary.MostMissing)
	}
}

func TestAggregate_WeekWithNoSubmissions(t *testing.T) {
	order := []string{"East Cobb", "Roswell"}
	weeks := []WeekReport{weekOf(map[string]bool{}, order)}

	summary := Aggregate(weeks)

	for _, row := range summary.Locations {
		if row.Percentage != 0 {
			t.Errorf("%s percentage = %d, want 0", row.Location, row.Percentage)
		}
	}
	if len(summary.MostReliable) != 0 {
		t.Errorf("most reliable = %+v, want empty", summary.MostReliable)
	}
	if len(summary.MostMissing) != 2 {
		t.Errorf("got %d most-missing rows, want 2", len(summary.MostMissing))
	}
	if summary.Overall.CompletionRate != 0 {
		t.Errorf("completion rate = %d, want 0", summary.Overall.CompletionRate)
	}
}

func TestAggregate_RoundsToNearestPercent(t *testing.T) {
	order := []string{"East Cobb"}
	weeks := []WeekReport{
		weekOf(map[string]bool{"East Cobb": true}, order),
		weekOf(map[string]bool{"East Cobb": true}, order),
		weekOf(map[string]bool{"East Cobb": false}, order),
	}

	summary := Aggregate(weeks)

	if got := summary.Locations[0].Percentage; got != 67 {
		t.Errorf("percentage = %d, want 67", got)
	}
}

func TestAggregate_NoWeeks(t *testing.T) {
	summary := Aggregate(nil)

	if len(summary.Locations) != 0 {
		t.Errorf("locations = %+v, want empty", summary.Locations)
	}
	if summary.Overall.CompletionRate != 0 {
		t.Errorf("completion rate = %d, want 0", summary.Overall.CompletionRate)
	}
}
