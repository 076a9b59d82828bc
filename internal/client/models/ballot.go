// Package models defines the client-side ballot and session models.
package models

import "github.com/dmitrijs2005/gophvote/internal/api"

// Candidate is a person running for a position.
type Candidate struct {
	ID         string
	Name       string
	Department string
	Image      string
	TotalVotes *int
}

// Category is an electable position with its ordered candidate list.
type Category struct {
	Position   string
	Candidates []Candidate
}

// Candidate returns the candidate with the given id, or nil.
func (c Category) Candidate(id string) *Candidate {
	for i := range c.Candidates {
		if c.Candidates[i].ID == id {
			return &c.Candidates[i]
		}
	}
	return nil
}

// GroupByPosition turns the flat candidate list served by the API into
// categories. Categories appear in the order their position is first seen,
// and candidates keep their relative order.
func GroupByPosition(in []api.Candidate) []Category {
	index := make(map[string]int)
	out := make([]Category, 0)

	for _, c := range in {
		i, ok := index[c.Position]
		if !ok {
			i = len(out)
			index[c.Position] = i
			out = append(out, Category{Position: c.Position})
		}
		out[i].Candidates = append(out[i].Candidates, Candidate{
			ID:         c.ID,
			Name:       c.Name,
			Department: c.Department,
			Image:      c.Image,
			TotalVotes: c.TotalVotes,
		})
	}
	return out
}
