package tally

import (
	"ballotbox/internal/core/ballot"
	"ballotbox/internal/core/normalize"
)

// Paging defaults used by the list views
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest asks for one 1-based page
// zero values pick page 1 and DefaultPageSize
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) norm() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.Size < 1:
		p.Size = DefaultPageSize
	case p.Size > MaxPageSize:
		p.Size = MaxPageSize
	}
	return p
}

// Page is one slice of a filtered list
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// Paginate cuts items to the requested page
// a page past the end is empty but still reports totals
func Paginate[T any](items []T, req PageRequest) Page[T] {
	req = req.norm()
	total := len(items)
	out := Page[T]{
		Items:      []T{},
		Total:      total,
		Page:       req.Page,
		PageSize:   req.Size,
		TotalPages: (total + req.Size - 1) / req.Size,
	}
	start := (req.Page - 1) * req.Size
	if start >= total {
		return out
	}
	end := start + req.Size
	if end > total {
		end = total
	}
	out.Items = items[start:end]
	return out
}

// Vote is one roster entry flattened with the candidate it was cast for
type Vote struct {
	Vote      string `json:"vote" example:"Kandidat 1"`
	Timestamp string `json:"timestamp" example:"15/03/2024 08:30:00"`
	Nama      string `json:"nama" example:"John Doe"`
	Unit      string `json:"unit" example:"IT"`
}

// Names filters UniqueNames by q, case and width insensitive
func (s Stats) Names(q string, req PageRequest) Page[string] {
	return Paginate(filterStrings(s.UniqueNames, q), req)
}

// Units filters UniqueUnits by q
func (s Stats) Units(q string, req PageRequest) Page[string] {
	return Paginate(filterStrings(s.UniqueUnits, q), req)
}

// Voters pages the roster of one candidate, matching q against nama and unit
// ok is false when the candidate received no votes
func (s Stats) Voters(candidate, q string, req PageRequest) (Page[ballot.Voter], bool) {
	roster, ok := s.VoterDetails[candidate]
	if !ok {
		return Page[ballot.Voter]{}, false
	}
	fq := normalize.Fold(q)
	out := make([]ballot.Voter, 0, len(roster))
	for _, v := range roster {
		if normalize.ContainsFolded(v.Nama, fq) || normalize.ContainsFolded(v.Unit, fq) {
			out = append(out, v)
		}
	}
	return Paginate(out, req), true
}

// Votes flattens every roster in candidate order and matches q against nama, unit and vote
func (s Stats) Votes(q string, req PageRequest) Page[Vote] {
	fq := normalize.Fold(q)
	var out []Vote
	for _, cand := range s.Candidates {
		candHit := normalize.ContainsFolded(cand, fq)
		for _, v := range s.VoterDetails[cand] {
			if candHit || normalize.ContainsFolded(v.Nama, fq) || normalize.ContainsFolded(v.Unit, fq) {
				out = append(out, Vote{Vote: cand, Timestamp: v.Timestamp, Nama: v.Nama, Unit: v.Unit})
			}
		}
	}
	return Paginate(out, req)
}

func filterStrings(in []string, q string) []string {
	fq := normalize.Fold(q)
	if fq == "" {
		return in
	}
	out := make([]string, 0, len(in))
	for _, v := range in {
		if normalize.ContainsFolded(v, fq) {
			out = append(out, v)
		}
	}
	return out
}
