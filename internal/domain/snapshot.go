package domain

import "time"

// Snapshot is a named, immutable, point-in-time copy of AppState.
type Snapshot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Data      AppState  `json:"data"`
}

// Clone returns a copy whose Data shares nothing with s.Data.
func (s Snapshot) Clone() Snapshot {
	s.Data = s.Data.Clone()
	return s
}
