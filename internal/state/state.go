package state

import (
	"slices"

	"github.com/thecompernolles/citylist/internal/cities"
)

type Status int

const (
	Loading Status = iota
	Loaded
	Failed
)

var statusName = map[Status]string{
	Loading: "loading",
	Loaded:  "loaded",
	Failed:  "failed",
}

func (s Status) String() string {
	return statusName[s]
}

// LoadState is the outcome of the city fetch. Cities is only set when Loaded,
// Message only when Failed.
type LoadState struct {
	Status  Status
	Cities  []cities.City
	Message string
}

// AppState holds everything the view renders. Transitions return a new value.
type AppState struct {
	Load LoadState
	Term string
}

func New() AppState {
	return AppState{
		Load: LoadState{Status: Loading},
	}
}

// Loaded records a successful fetch. Only valid while loading; otherwise the
// state is returned unchanged.
func (s AppState) Loaded(list []cities.City) AppState {
	if s.Load.Status != Loading {
		return s
	}

	s.Load = LoadState{
		Status: Loaded,
		Cities: slices.Clone(list),
	}
	return s
}

// Failed records a failed fetch. Only valid while loading.
func (s AppState) Failed(message string) AppState {
	if s.Load.Status != Loading {
		return s
	}

	s.Load = LoadState{
		Status:  Failed,
		Message: message,
	}
	return s
}

func (s AppState) WithTerm(term string) AppState {
	s.Term = term
	return s
}

// Visible returns the cities to display: the filtered list once loaded,
// nothing before that or after a failure.
func (s AppState) Visible() []cities.City {
	if s.Load.Status != Loaded {
		return nil
	}

	return cities.Filter(s.Load.Cities, s.Term)
}
