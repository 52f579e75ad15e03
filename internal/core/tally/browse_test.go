package tally

import (
	"reflect"
	"testing"

	"ballotbox/internal/core/ballot"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	cases := []struct {
		name      string
		req       PageRequest
		wantLen   int
		wantFirst int
		wantPage  int
		wantSize  int
		wantPages int
	}{
		{"defaults", PageRequest{}, 10, 0, 1, 10, 3},
		{"second page", PageRequest{Page: 2}, 10, 10, 2, 10, 3},
		{"last partial page", PageRequest{Page: 3}, 3, 20, 3, 10, 3},
		{"past the end", PageRequest{Page: 9}, 0, -1, 9, 10, 3},
		{"custom size", PageRequest{Page: 1, Size: 5}, 5, 0, 1, 5, 5},
		{"size clamped", PageRequest{Page: 1, Size: 1000}, 23, 0, 1, MaxPageSize, 1},
		{"negative page", PageRequest{Page: -4}, 10, 0, 1, 10, 3},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			p := Paginate(items, c.req)
			if len(p.Items) != c.wantLen {
				t.Fatalf("len = %d, want %d", len(p.Items), c.wantLen)
			}
			if c.wantLen > 0 && p.Items[0] != c.wantFirst {
				t.Fatalf("first = %d, want %d", p.Items[0], c.wantFirst)
			}
			if p.Page != c.wantPage || p.PageSize != c.wantSize || p.TotalPages != c.wantPages || p.Total != 23 {
				t.Fatalf("meta = %+v", p)
			}
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate[string](nil, PageRequest{})
	if p.Items == nil || p.Total != 0 || p.TotalPages != 0 {
		t.Fatalf("empty page = %+v", p)
	}
}

func TestStats_NamesAndUnits(t *testing.T) {
	s := Aggregate(sample())

	if got := s.Names("JOHN", PageRequest{}).Items; !reflect.DeepEqual(got, []string{"John Doe"}) {
		t.Fatalf("Names(JOHN) = %v", got)
	}
	if got := s.Names("", PageRequest{}).Items; len(got) != 3 {
		t.Fatalf("Names('') = %v", got)
	}
	if got := s.Units("i", PageRequest{}).Items; !reflect.DeepEqual(got, []string{"IT"}) {
		t.Fatalf("Units(i) = %v", got)
	}
}

func TestStats_Voters(t *testing.T) {
	s := Aggregate(sample())

	p, ok := s.Voters("Kandidat 1", "it", PageRequest{})
	if !ok {
		t.Fatalf("Kandidat 1 should exist")
	}
	want := []ballot.Voter{
		{Timestamp: "15/03/2023 00:00:00", Nama: "John Doe", Unit: "IT"},
		{Timestamp: "15/03/2023 00:10:00", Nama: "Budi", Unit: "IT"},
	}
	if !reflect.DeepEqual(p.Items, want) {
		t.Fatalf("Voters = %+v", p.Items)
	}

	if _, ok := s.Voters("Nobody", "", PageRequest{}); ok {
		t.Fatalf("unknown candidate should report !ok")
	}
}

func TestStats_Votes(t *testing.T) {
	s := Aggregate(sample())

	all := s.Votes("", PageRequest{Size: MaxPageSize})
	if all.Total != s.TotalVotes {
		t.Fatalf("flattened %d votes, want %d", all.Total, s.TotalVotes)
	}
	// candidate order first, then row order inside each roster
	if all.Items[0].Vote != "Kandidat 1" || all.Items[0].Nama != "John Doe" || all.Items[1].Nama != "Budi" {
		t.Fatalf("order = %+v", all.Items[:2])
	}

	byVote := s.Votes("kandidat 3", PageRequest{})
	if byVote.Total != 2 {
		t.Fatalf("Votes(kandidat 3) total = %d", byVote.Total)
	}
	byName := s.Votes("jane", PageRequest{})
	if byName.Total != 2 {
		t.Fatalf("Votes(jane) total = %d", byName.Total)
	}
}
