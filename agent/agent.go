// Package agent connects shells to a running game: one Session per
// connection, all sharing the Runner that owns the world.
package agent

import (
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/nstehr/starfall/starfall-core/building"
	"github.com/nstehr/starfall/starfall-core/ipc"
	"github.com/nstehr/starfall/starfall-core/model"
	"github.com/nstehr/starfall/starfall-core/world"
)

// Session is one shell connection issuing commands for the player.
type Session struct {
	Conn    *ipc.Connection
	Player  string
	Faction model.Faction

	game    *Runner
	hub     *ipc.Hub
	client  *ipc.Client
	limiter *rate.Limiter
}

// NewSession binds conn to the game. Broadcasts start once the shell says
// hello; hub may be nil. Commands beyond the limiter's rate are rejected.
func NewSession(conn *ipc.Connection, game *Runner, hub *ipc.Hub, limiter *rate.Limiter) *Session {
	s := &Session{Conn: conn, game: game, hub: hub, limiter: limiter}
	conn.RegisterHandler(ipc.TypeHello, s.HandleHello)
	conn.RegisterHandler(ipc.TypeLaunchFleet, s.HandleLaunchFleet)
	conn.RegisterHandler(ipc.TypeStartConstruction, s.HandleStartConstruction)
	conn.RegisterHandler(ipc.TypeCancelConstruction, s.HandleCancelConstruction)
	return s
}

// Serve reads commands until the connection closes.
func (s *Session) Serve() {
	defer func() {
		if s.hub != nil {
			s.hub.Unregister(s.client)
		}
	}()
	s.Conn.ReadLoop()
}

// HandleHello identifies the shell. Only the player faction is driven from
// outside; the AI belongs to the core.
func (s *Session) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := env.Decode(&hello); err != nil {
		return nil, err
	}

	faction, err := model.ParseFaction(hello.Faction)
	if err != nil || faction != model.Player {
		reason := fmt.Sprintf("faction %q cannot be commanded", hello.Faction)
		slog.Warn("hello rejected", "player", hello.Player, "faction", hello.Faction)
		ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "rejected", Reason: reason})
		return &ack, err
	}

	first := s.Faction == model.Neutral
	s.Player = hello.Player
	s.Faction = model.Player
	if first {
		s.Conn.Player = hello.Player
		if s.hub != nil {
			s.client = s.hub.Register(s.Conn)
		}
	}
	slog.Info("player identified", "player", s.Player, "faction", s.Faction)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{
		Status:  "ok",
		Faction: s.Faction.String(),
		Mode:    s.game.Mode(),
	})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

func (s *Session) HandleLaunchFleet(env ipc.Envelope) (*ipc.Envelope, error) {
	var cmd ipc.LaunchFleetCommand
	if err := env.Decode(&cmd); err != nil {
		return s.result(env.Type, model.Reject(model.CodeMalformed, "%v", err))
	}
	return s.command(env.Type, func(w *world.World) error {
		return w.LaunchFleet(s.Faction, cmd.Origin, cmd.Destination, cmd.Ships)
	})
}

func (s *Session) HandleStartConstruction(env ipc.Envelope) (*ipc.Envelope, error) {
	var cmd ipc.ConstructionCommand
	if err := env.Decode(&cmd); err != nil {
		return s.result(env.Type, model.Reject(model.CodeMalformed, "%v", err))
	}
	return s.command(env.Type, func(w *world.World) error {
		return w.StartConstruction(s.Faction, cmd.Planet, building.ID(cmd.Building))
	})
}

func (s *Session) HandleCancelConstruction(env ipc.Envelope) (*ipc.Envelope, error) {
	var cmd ipc.ConstructionCommand
	if err := env.Decode(&cmd); err != nil {
		return s.result(env.Type, model.Reject(model.CodeMalformed, "%v", err))
	}
	return s.command(env.Type, func(w *world.World) error {
		return w.CancelConstruction(s.Faction, cmd.Planet, building.ID(cmd.Building))
	})
}

func (s *Session) command(name string, run func(*world.World) error) (*ipc.Envelope, error) {
	if !s.Faction.Playing() {
		return s.result(name, model.Reject(model.CodeInvalidFaction, "say hello before sending commands"))
	}
	if s.limiter != nil && !s.limiter.Allow() {
		return s.result(name, model.Reject(model.CodeRateLimited, "too many commands"))
	}
	return s.result(name, s.game.Do(run))
}

// result answers a command. Rejections are expected traffic; anything else
// is logged as a core fault but still answered.
func (s *Session) result(name string, err error) (*ipc.Envelope, error) {
	res := ipc.CommandResult{Command: name, OK: err == nil}
	if err != nil {
		res.Detail = err.Error()
		if rej, ok := model.AsRejection(err); ok {
			res.Code = string(rej.Code)
			res.Detail = rej.Detail
			slog.Debug("command rejected", "player", s.Player, "command", name, "code", rej.Code, "detail", rej.Detail)
		} else {
			res.Code = string(model.CodeUnknown)
			slog.Error("command failed", "player", s.Player, "command", name, "error", err)
		}
	}
	env, err := ipc.NewEnvelope(ipc.TypeCommandResult, res)
	if err != nil {
		return nil, err
	}
	return &env, nil
}
