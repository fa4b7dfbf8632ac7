package activity

import "context"

// DefaultChannel is applied to events that do not name one.
const DefaultChannel = "admin"

// Config controls emission.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter delivers events to its hooks when enabled. A nil or hook-less
// emitter is permanently disabled, so callers need no nil checks.
type Emitter struct {
	hooks Hooks
	cfg   Config
}

// NewEmitter builds an emitter. The channel defaults to DefaultChannel.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	return &Emitter{hooks: hooks, cfg: cfg}
}

// Enabled reports whether Emit will deliver anything.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Emit delivers the event to every hook, stamping the default channel.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.cfg.Channel
	}
	return e.hooks.Notify(ctx, evt)
}
