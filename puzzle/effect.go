package puzzle

import "fmt"

type EffectKind uint8

const (
	EffectSpawn EffectKind = iota + 1
	EffectDespawn
	EffectSetVelocity
	EffectShowText
	EffectClearText
)

func (k EffectKind) String() string {
	switch k {
	case EffectSpawn:
		return "spawn"
	case EffectDespawn:
		return "despawn"
	case EffectSetVelocity:
		return "set_velocity"
	case EffectShowText:
		return "show_text"
	case EffectClearText:
		return "clear_text"
	default:
		return "unknown"
	}
}

// Channel is an on-screen text slot.
type Channel uint8

const (
	ChannelSign Channel = iota + 1
	ChannelWin
)

func (c Channel) String() string {
	switch c {
	case ChannelSign:
		return "sign"
	case ChannelWin:
		return "win"
	default:
		return "unknown"
	}
}

// Effect is a world change requested by a handler.
type Effect struct {
	Kind EffectKind

	// Entity is the target of despawn and set-velocity requests.
	Entity EntityID

	// Spawn requests.
	Spawn      Kind
	Pos        Vec
	Collidable bool

	Vel Vec

	Channel Channel
	Text    string
}

func Spawn(k Kind, pos Vec) Effect {
	return Effect{Kind: EffectSpawn, Spawn: k, Pos: pos, Collidable: true}
}

// SpawnDecor spawns an entity without a physics body.
func SpawnDecor(k Kind, pos Vec) Effect {
	return Effect{Kind: EffectSpawn, Spawn: k, Pos: pos}
}

func Despawn(id EntityID) Effect {
	return Effect{Kind: EffectDespawn, Entity: id}
}

func SetVelocity(id EntityID, vel Vec) Effect {
	return Effect{Kind: EffectSetVelocity, Entity: id, Vel: vel}
}

func ShowText(ch Channel, text string) Effect {
	return Effect{Kind: EffectShowText, Channel: ch, Text: text}
}

func ClearText(ch Channel) Effect {
	return Effect{Kind: EffectClearText, Channel: ch}
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectSpawn:
		return fmt.Sprintf("spawn %s at (%.1f, %.1f)", e.Spawn, e.Pos.X, e.Pos.Y)
	case EffectDespawn:
		return fmt.Sprintf("despawn %d", e.Entity)
	case EffectSetVelocity:
		return fmt.Sprintf("velocity %d (%.1f, %.1f)", e.Entity, e.Vel.X, e.Vel.Y)
	case EffectShowText:
		return fmt.Sprintf("show text %s %q", e.Channel, e.Text)
	case EffectClearText:
		return fmt.Sprintf("clear text %s", e.Channel)
	default:
		return "unknown effect"
	}
}
