package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nstehr/starfall/starfall-core/ipc"
	"github.com/nstehr/starfall/starfall-core/model"
	"github.com/nstehr/starfall/starfall-core/snapshot"
	"github.com/nstehr/starfall/starfall-core/world"
)

// Broadcaster fans envelopes out to connected shells.
type Broadcaster interface {
	Broadcast(ipc.Envelope)
}

// statusEvery is how often the runner logs a game summary.
const statusEvery = 10 * time.Second

// Runner drives a World in real time. It is the only owner of the world:
// the frame loop and every shell command take the same lock, so the
// world itself never sees concurrent access. Events and frames produced
// under the lock are published after it is released.
type Runner struct {
	mu       sync.Mutex
	world    *world.World
	out      Broadcaster
	interval time.Duration
	names    planetNames

	events     []model.Event
	frame      *model.GameState
	seq        uint64
	announced  bool
	lastStatus time.Duration
}

// NewRunner builds the world with the runner as its event sink and
// renderer. out may be nil when nothing listens.
func NewRunner(opts world.Options, out Broadcaster, frameInterval time.Duration) (*Runner, error) {
	if frameInterval <= 0 {
		return nil, fmt.Errorf("frame interval must be positive, got %s", frameInterval)
	}
	r := &Runner{out: out, interval: frameInterval}
	opts.Sink = r
	opts.Renderer = r
	w, err := world.New(opts)
	if err != nil {
		return nil, err
	}
	r.world = w
	for _, p := range w.State().Planets {
		r.names = append(r.names, p.Name)
	}
	return r, nil
}

// Emit implements model.EventSink. The world calls it under r.mu.
func (r *Runner) Emit(e model.Event) { r.events = append(r.events, e) }

// Frame implements world.Renderer. Only the latest frame is kept.
func (r *Runner) Frame(gs model.GameState) { r.frame = &gs }

// Run ticks the world every frame interval until ctx is cancelled or the
// game ends.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("game loop started", "mode", r.Mode(), "frame_interval", r.interval)
	r.Step(0)
	for {
		select {
		case <-ctx.Done():
			slog.Info("game loop stopped")
			return nil
		case <-ticker.C:
			if r.Step(time.Since(start)) {
				return nil
			}
		}
	}
}

// Step advances the game clock to elapsed and publishes what happened. It
// reports whether the game is over.
func (r *Runner) Step(elapsed time.Duration) bool {
	r.mu.Lock()
	r.world.Tick(elapsed)
	out := r.drain()
	done := r.world.Finished()
	if elapsed-r.lastStatus >= statusEvery || done {
		r.lastStatus = elapsed
		slog.Info("game status", "summary", summarize(r.world.State()))
	}
	r.mu.Unlock()

	r.publish(out)
	return done
}

// Do runs fn against the world under the runner's lock, then publishes
// any events the call raised.
func (r *Runner) Do(fn func(*world.World) error) error {
	r.mu.Lock()
	err := fn(r.world)
	out := r.drain()
	r.mu.Unlock()

	r.publish(out)
	return err
}

// Mode is the name of the game mode being played.
func (r *Runner) Mode() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.world.Mode()
}

// drain turns pending events and the latest frame into envelopes. The
// first frame after victory carries the final digest. Callers hold r.mu.
func (r *Runner) drain() []ipc.Envelope {
	var out []ipc.Envelope
	for _, e := range r.events {
		env, err := eventEnvelope(e, r.names)
		if err != nil {
			slog.Error("event dropped", "kind", e.Kind, "error", err)
			continue
		}
		out = append(out, env)
	}
	r.events = r.events[:0]

	if r.frame == nil {
		return out
	}
	gs := *r.frame
	r.frame = nil
	r.seq++

	res := r.world.Result()
	msg := ipc.SnapshotMessage{Seq: r.seq}
	if res != nil && !r.announced {
		r.announced = true
		msg.Finished = true
		digest, err := snapshot.Digest(gs)
		if err != nil {
			slog.Error("digest failed", "error", err)
		}
		msg.Digest = digest
	}
	frame, err := snapshot.Encode(snapshot.Frame{Seq: r.seq, State: gs, Result: res})
	if err != nil {
		slog.Error("frame dropped", "seq", r.seq, "error", err)
		return out
	}
	msg.Frame = frame

	env, err := ipc.NewEnvelope(ipc.TypeSnapshot, msg)
	if err != nil {
		slog.Error("frame dropped", "seq", r.seq, "error", err)
		return out
	}
	return append(out, env)
}

func (r *Runner) publish(out []ipc.Envelope) {
	if r.out == nil {
		return
	}
	for _, env := range out {
		r.out.Broadcast(env)
	}
}
