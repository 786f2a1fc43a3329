package report

import (
	"sort"

	"github.com/alexanderramin/bizbook/internal/domain"
)

// StageStats counts the opportunities in one stage.
type StageStats struct {
	Stage domain.Stage
	Count int
	Value domain.Amount
}

// PipelineStats describes the sales pipeline.
type PipelineStats struct {
	Stages    []StageStats
	OpenValue domain.Amount
	WonValue  domain.Amount
	// WinRate is Won / (Won + Lost) as a fraction, or 0 when nothing is closed.
	WinRate float64
}

// Pipeline groups opportunities by stage in board column order. Opportunities
// with an unrecognized stage are not counted.
func Pipeline(state domain.AppState) PipelineStats {
	stats := PipelineStats{Stages: make([]StageStats, len(domain.Stages))}
	for i, s := range domain.Stages {
		stats.Stages[i].Stage = s
	}
	for _, o := range state.Opportunities {
		i := o.Stage.Index()
		if i < 0 {
			continue
		}
		stats.Stages[i].Count++
		stats.Stages[i].Value = stats.Stages[i].Value.Add(o.Value)
		switch {
		case o.Stage == domain.StageWon:
			stats.WonValue = stats.WonValue.Add(o.Value)
		case !o.Stage.Closed():
			stats.OpenValue = stats.OpenValue.Add(o.Value)
		}
	}

	won := stats.Stages[domain.StageWon.Index()].Count
	lost := stats.Stages[domain.StageLost.Index()].Count
	if won+lost > 0 {
		stats.WinRate = float64(won) / float64(won+lost)
	}
	return stats
}

// ClientStats summarizes one client's opportunities.
type ClientStats struct {
	Client        domain.Client
	Opportunities int
	OpenValue     domain.Amount
	WonValue      domain.Amount
}

// ClientSummary returns one row per client, ordered by name.
func ClientSummary(state domain.AppState) []ClientStats {
	byID := make(map[string]int, len(state.Clients))
	out := make([]ClientStats, len(state.Clients))
	for i, c := range state.Clients {
		out[i].Client = c
		byID[c.ID] = i
	}
	for _, o := range state.Opportunities {
		i, ok := byID[o.ClientID]
		if !ok {
			continue
		}
		out[i].Opportunities++
		switch {
		case o.Stage == domain.StageWon:
			out[i].WonValue = out[i].WonValue.Add(o.Value)
		case o.Stage.Valid() && !o.Stage.Closed():
			out[i].OpenValue = out[i].OpenValue.Add(o.Value)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Client.Name < out[j].Client.Name
	})
	return out
}
