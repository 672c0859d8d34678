package tui

import "github.com/thecompernolles/citylist/internal/cities"

type MsgType int

const (
	MsgLoaded MsgType = iota
	MsgFailed
)

var stateName = map[MsgType]string{
	MsgLoaded: "loaded",
	MsgFailed: "failed",
}

func (ss MsgType) String() string {
	return stateName[ss]
}

// Msg reports the outcome of the city fetch. Cities is set for MsgLoaded,
// Text for MsgFailed.
type Msg struct {
	Text   string
	Type   MsgType
	Cities []cities.City
}
