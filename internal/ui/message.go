package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mia-z/spotty-api/pkg/models"
	"github.com/mia-z/spotty-api/pkg/request"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgStateFetched MsgKind = iota
	MsgDevicesFetched
	MsgCommandDone
	MsgTick
)

type stateFetched struct {
	state *models.Player
	err   error
}

type devicesFetched struct {
	devices []models.Device
	err     error
}

type commandDone struct {
	action string
	err    error
}

// stateFetchedMsg is the constructor for [MsgStateFetched]. A nil state means nothing is playing.
func stateFetchedMsg(r request.Result[models.Player]) Msg {
	data := stateFetched{}
	switch {
	case !r.OK():
		data.err = r.Err
	case r.Value.Item != nil || r.Value.Device != nil:
		state := r.Value
		data.state = &state
	}
	return Msg{kind: MsgStateFetched, data: data}
}

// devicesFetchedMsg is the constructor for [MsgDevicesFetched]
func devicesFetchedMsg(r request.Result[models.Devices]) Msg {
	if !r.OK() {
		return Msg{kind: MsgDevicesFetched, data: devicesFetched{err: r.Err}}
	}
	return Msg{kind: MsgDevicesFetched, data: devicesFetched{devices: r.Value.Devices}}
}

// commandDoneMsg is the constructor for [MsgCommandDone]
func commandDoneMsg(action string, r request.Result[any]) Msg {
	data := commandDone{action: action}
	if !r.OK() {
		data.err = r.Err
	}
	return Msg{kind: MsgCommandDone, data: data}
}

// tickMsg is the constructor for [MsgTick]
func tickMsg(t time.Time) Msg {
	return Msg{kind: MsgTick, data: t}
}
