package tally

import (
	"math"
	"reflect"
	"testing"

	"ballotbox/internal/core/ballot"
)

func rec(ts, nama, unit string, suara ...string) ballot.VoterRecord {
	return ballot.VoterRecord{Timestamp: ts, Nama: nama, Unit: unit, Suara: suara}
}

func sample() []ballot.VoterRecord {
	return []ballot.VoterRecord{
		rec("15/03/2023 00:00:00", "John Doe", "IT", "Kandidat 1", "Kandidat 2"),
		rec("15/03/2023 00:05:00", "Jane Smith", "HR", "Kandidat 2", "Kandidat 3"),
		rec("15/03/2023 00:10:00", "Budi", "IT", "Kandidat 1"),
		rec("15/03/2023 00:15:00", "John Doe", "Finance", "Kandidat 3"),
	}
}

func TestAggregate_SingleRecord(t *testing.T) {
	s := Aggregate([]ballot.VoterRecord{
		rec("15/03/2023 00:00:00", "John Doe", "IT", "Kandidat 1", "Kandidat 2"),
	})

	if s.TotalNames != 1 || s.TotalUnits != 1 {
		t.Fatalf("totals = %d/%d, want 1/1", s.TotalNames, s.TotalUnits)
	}
	want := map[string]int{"Kandidat 1": 1, "Kandidat 2": 1}
	if !reflect.DeepEqual(s.VoteCount, want) {
		t.Fatalf("VoteCount = %v, want %v", s.VoteCount, want)
	}
	if s.VotePercentages["Kandidat 1"] != 50 || s.VotePercentages["Kandidat 2"] != 50 {
		t.Fatalf("VotePercentages = %v", s.VotePercentages)
	}
}

func TestAggregate_SharedCandidateKeepsRowOrder(t *testing.T) {
	s := Aggregate([]ballot.VoterRecord{
		rec("t1", "A", "U1", "Kandidat 1", "Kandidat 2"),
		rec("t2", "B", "U2", "Kandidat 1"),
	})
	if s.VoteCount["Kandidat 1"] != 2 || s.VoteCount["Kandidat 2"] != 1 {
		t.Fatalf("VoteCount = %v", s.VoteCount)
	}
	roster := s.VoterDetails["Kandidat 1"]
	want := []ballot.Voter{
		{Timestamp: "t1", Nama: "A", Unit: "U1"},
		{Timestamp: "t2", Nama: "B", Unit: "U2"},
	}
	if !reflect.DeepEqual(roster, want) {
		t.Fatalf("roster = %+v, want %+v", roster, want)
	}
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	s := Aggregate(sample())

	if want := []string{"John Doe", "Jane Smith", "Budi"}; !reflect.DeepEqual(s.UniqueNames, want) {
		t.Fatalf("UniqueNames = %v, want %v", s.UniqueNames, want)
	}
	if want := []string{"IT", "HR", "Finance"}; !reflect.DeepEqual(s.UniqueUnits, want) {
		t.Fatalf("UniqueUnits = %v, want %v", s.UniqueUnits, want)
	}
	if want := []string{"Kandidat 1", "Kandidat 2", "Kandidat 3"}; !reflect.DeepEqual(s.Candidates, want) {
		t.Fatalf("Candidates = %v, want %v", s.Candidates, want)
	}
	if s.Ballots != 4 || s.TotalVotes != 6 {
		t.Fatalf("Ballots/TotalVotes = %d/%d", s.Ballots, s.TotalVotes)
	}
}

func TestAggregate_Invariants(t *testing.T) {
	inputs := [][]ballot.VoterRecord{
		sample(),
		{rec("t", "A", "U", "X")},
		{rec("t", "A", "U", "X", "Y", "Z"), rec("t", "B", "U", "Z")},
	}
	for i, in := range inputs {
		s := Aggregate(in)

		sumCount, sumRoster := 0, 0
		for c, n := range s.VoteCount {
			sumCount += n
			if _, ok := s.VoterDetails[c]; !ok {
				t.Fatalf("#%d: %q in VoteCount but not VoterDetails", i, c)
			}
		}
		for c, r := range s.VoterDetails {
			sumRoster += len(r)
			if _, ok := s.VoteCount[c]; !ok {
				t.Fatalf("#%d: %q in VoterDetails but not VoteCount", i, c)
			}
		}
		if sumCount != sumRoster || sumCount != s.TotalVotes {
			t.Fatalf("#%d: count %d roster %d total %d", i, sumCount, sumRoster, s.TotalVotes)
		}

		pct := 0.0
		for _, p := range s.VotePercentages {
			pct += p
		}
		if math.Abs(pct-100) > 1e-9 {
			t.Fatalf("#%d: percentages sum to %v", i, pct)
		}
		if len(s.Tallies) != len(s.Candidates) {
			t.Fatalf("#%d: %d tallies for %d candidates", i, len(s.Tallies), len(s.Candidates))
		}
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	a := Aggregate(sample())
	b := Aggregate(sample())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Aggregate is not deterministic")
	}
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	if s.TotalVotes != 0 || len(s.VotePercentages) != 0 || len(s.VoteCount) != 0 {
		t.Fatalf("empty aggregate = %+v", s)
	}
	if s.UniqueNames == nil || s.Tallies == nil {
		t.Fatalf("empty aggregate should use empty slices for JSON, got %+v", s)
	}
}

func TestAggregate_DuplicateCandidateInOneRecord(t *testing.T) {
	s := Aggregate([]ballot.VoterRecord{rec("t", "A", "U", "X", "X", "Y")})
	if s.VoteCount["X"] != 2 || len(s.VoterDetails["X"]) != 2 {
		t.Fatalf("each listed occurrence should count: counts=%v roster=%d", s.VoteCount, len(s.VoterDetails["X"]))
	}
	if s.TotalVotes != 3 || s.VoteCount["Y"] != 1 {
		t.Fatalf("TotalVotes = %d counts=%v, want 3", s.TotalVotes, s.VoteCount)
	}
	if len(s.Candidates) != 2 {
		t.Fatalf("candidates = %v, want X and Y once each", s.Candidates)
	}
	var sum float64
	for _, p := range s.VotePercentages {
		sum += p
	}
	if sum < 99.999 || sum > 100.001 {
		t.Fatalf("percentages sum to %v", sum)
	}
}

func TestAggregate_PercentLabels(t *testing.T) {
	s := Aggregate([]ballot.VoterRecord{
		rec("t", "A", "U", "X"),
		rec("t", "B", "U", "Y"),
		rec("t", "C", "U", "Z"),
	})
	for _, tl := range s.Tallies {
		if tl.PercentLabel != "33.3" {
			t.Fatalf("label for %s = %q, want 33.3", tl.Candidate, tl.PercentLabel)
		}
	}

	s = Aggregate([]ballot.VoterRecord{rec("t", "A", "U", "X", "Y"), rec("t", "B", "U", "X")})
	got := map[string]string{}
	for _, tl := range s.Tallies {
		got[tl.Candidate] = tl.PercentLabel
	}
	if want := map[string]string{"X": "66.7", "Y": "33.3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
}
