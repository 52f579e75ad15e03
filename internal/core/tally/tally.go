// Package tally folds voter records into aggregate ballot statistics
//
// Aggregate is pure: the same records always give the same Stats, in the same
// order. Names, units and candidates keep first seen order and every roster
// keeps source row order, because the dashboards page through them and must
// show stable pages.
package tally

import (
	"ballotbox/internal/core/ballot"

	"github.com/shopspring/decimal"
)

// Stats is the aggregate over one committed record set
// VoteCount and VoterDetails always share the same key set
type Stats struct {
	// Ballots is the number of accepted records
	Ballots int `json:"ballots" example:"2"`

	TotalNames  int      `json:"totalNames" example:"2"`
	TotalUnits  int      `json:"totalUnits" example:"2"`
	UniqueNames []string `json:"uniqueNames"`
	UniqueUnits []string `json:"uniqueUnits"`

	// TotalVotes is the sum of VoteCount
	TotalVotes      int                       `json:"totalVotes" example:"4"`
	VoteCount       map[string]int            `json:"voteCount"`
	VotePercentages map[string]float64        `json:"votePercentages"`
	VoterDetails    map[string][]ballot.Voter `json:"voterDetails"`

	// Candidates lists VoteCount keys in first seen order
	Candidates []string `json:"candidates"`
	// Tallies is VoteCount and VotePercentages zipped in Candidates order
	Tallies []Tally `json:"tallies"`
}

// Tally is one candidate line for charts
type Tally struct {
	Candidate    string  `json:"candidate" example:"Kandidat 1"`
	Votes        int     `json:"votes" example:"2"`
	Percent      float64 `json:"percent" example:"50"`
	PercentLabel string  `json:"percentLabel" example:"50.0"`
}

// Aggregate computes Stats for records
// every listed choice counts, so a record naming a candidate twice votes for it twice
// with no votes at all VotePercentages is empty rather than NaN
func Aggregate(records []ballot.VoterRecord) Stats {
	s := Stats{
		Ballots:         len(records),
		UniqueNames:     []string{},
		UniqueUnits:     []string{},
		VoteCount:       map[string]int{},
		VotePercentages: map[string]float64{},
		VoterDetails:    map[string][]ballot.Voter{},
		Candidates:      []string{},
		Tallies:         []Tally{},
	}

	names := newOrderedSet()
	units := newOrderedSet()

	for _, rec := range records {
		names.add(rec.Nama)
		units.add(rec.Unit)

		voter := rec.Voter()
		for _, cand := range rec.Suara {
			if _, known := s.VoteCount[cand]; !known {
				s.Candidates = append(s.Candidates, cand)
			}
			s.VoteCount[cand]++
			s.VoterDetails[cand] = append(s.VoterDetails[cand], voter)
			s.TotalVotes++
		}
	}

	s.UniqueNames = names.items
	s.UniqueUnits = units.items
	s.TotalNames = len(names.items)
	s.TotalUnits = len(units.items)

	if s.TotalVotes == 0 {
		return s
	}

	// second pass once the total is known
	total := decimal.NewFromInt(int64(s.TotalVotes))
	hundred := decimal.NewFromInt(100)
	s.Tallies = make([]Tally, 0, len(s.Candidates))
	for _, cand := range s.Candidates {
		n := s.VoteCount[cand]
		pct := float64(n) / float64(s.TotalVotes) * 100
		s.VotePercentages[cand] = pct
		s.Tallies = append(s.Tallies, Tally{
			Candidate:    cand,
			Votes:        n,
			Percent:      pct,
			PercentLabel: decimal.NewFromInt(int64(n)).Mul(hundred).DivRound(total, 4).StringFixed(1),
		})
	}
	return s
}

// orderedSet keeps insertion order for string membership
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]struct{}{}, items: []string{}}
}

func (o *orderedSet) add(v string) {
	if _, ok := o.seen[v]; ok {
		return
	}
	o.seen[v] = struct{}{}
	o.items = append(o.items, v)
}
