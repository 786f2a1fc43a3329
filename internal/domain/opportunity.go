package domain

import (
	"fmt"
	"strings"
)

// Stage is the pipeline position of an opportunity.
type Stage string

const (
	StageLead        Stage = "Lead"
	StageProposal    Stage = "Proposal"
	StageNegotiation Stage = "Negotiation"
	StageWon         Stage = "Won"
	StageLost        Stage = "Lost"
)

// Stages lists every stage in board column order.
var Stages = []Stage{StageLead, StageProposal, StageNegotiation, StageWon, StageLost}

// ParseStage matches a stage name case-insensitively.
func ParseStage(s string) (Stage, error) {
	for _, st := range Stages {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown stage %q", ErrValidation, s)
}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	return s.Index() >= 0
}

// Index returns the column position of the stage, or -1 if unknown.
func (s Stage) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the stage one column to the right, clamped at the last column.
func (s Stage) Next() Stage {
	i := s.Index()
	if i < 0 || i == len(Stages)-1 {
		return s
	}
	return Stages[i+1]
}

// Prev returns the stage one column to the left, clamped at the first column.
func (s Stage) Prev() Stage {
	i := s.Index()
	if i <= 0 {
		return s
	}
	return Stages[i-1]
}

// Closed reports whether the opportunity has left the active pipeline.
func (s Stage) Closed() bool {
	return s == StageWon || s == StageLost
}

// Opportunity is a sales pipeline entry owned by a client.
type Opportunity struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Value    Amount `json:"value"`
	ClientID string `json:"clientId"`
	Stage    Stage  `json:"stage"`
}
