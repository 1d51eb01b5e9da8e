package directory

import (
	"encoding/json"

	"github.com/VxVxN/trendingcompanies/internal/models"
)

type Status int

const (
	StatusLoading Status = iota
	StatusFailed
	StatusLoaded
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusFailed:
		return "failed"
	case StatusLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// State is the result of one mount: loading, failed with a message, or
// loaded with a (possibly empty) list of companies. Exactly one of Err and
// Companies is meaningful once Status is terminal.
type State struct {
	Status    Status
	Companies []models.Company
	Err       string
}

func loadingState() State {
	return State{Status: StatusLoading, Companies: []models.Company{}}
}

func (s State) Loading() bool { return s.Status == StatusLoading }

func (s State) Failed() bool { return s.Status == StatusFailed }

func (s State) Loaded() bool { return s.Status == StatusLoaded }

// Terminal reports whether the state can no longer change for this mount.
func (s State) Terminal() bool { return s.Status != StatusLoading }

type stateJSON struct {
	Loading   bool             `json:"loading"`
	Companies []models.Company `json:"companies"`
	Error     *string          `json:"error"`
}

func (s State) MarshalJSON() ([]byte, error) {
	out := stateJSON{
		Loading:   s.Loading(),
		Companies: s.Companies,
	}
	if out.Companies == nil {
		out.Companies = []models.Company{}
	}
	if s.Failed() {
		msg := s.Err
		out.Error = &msg
	}
	return json.Marshal(out)
}
