package ipc

import "github.com/nstehr/starfall/starfall-core/model"

// Message types. Shells send hello and the three commands; the core sends
// everything else.
const (
	TypeHello              = "hello"
	TypeAck                = "ack"
	TypeLaunchFleet        = "launch_fleet"
	TypeStartConstruction  = "start_construction"
	TypeCancelConstruction = "cancel_construction"
	TypeCommandResult      = "command_result"
	TypeEvent              = "event"
	TypeSnapshot           = "snapshot"
)

type HelloMessage struct {
	Player  string `json:"player"`
	Faction string `json:"faction"`
}

type AckMessage struct {
	Status  string `json:"status"`
	Faction string `json:"faction,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type LaunchFleetCommand struct {
	Origin      model.PlanetID `json:"origin"`
	Destination model.PlanetID `json:"destination"`
	Ships       int            `json:"ships"`
}

// ConstructionCommand starts or cancels a building on a planet.
type ConstructionCommand struct {
	Planet   model.PlanetID `json:"planet"`
	Building string         `json:"building"`
}

// CommandResult answers every command. Code is empty on success.
type CommandResult struct {
	Command string `json:"command"`
	OK      bool   `json:"ok"`
	Code    string `json:"code,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// EventMessage carries one domain event plus a line of text a shell can
// show as-is.
type EventMessage struct {
	model.Event
	Text string `json:"text"`
}

// SnapshotMessage carries an lz4-compressed frame. Digest is set on the
// final frame so shells can compare game outcomes.
type SnapshotMessage struct {
	Seq      uint64 `json:"seq"`
	Frame    []byte `json:"frame"`
	Digest   string `json:"digest,omitempty"`
	Finished bool   `json:"finished,omitempty"`
}
