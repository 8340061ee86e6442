package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/jamfest/puzzle"
)

// PropsSpec is the typed view of a level entity's free-form props.
type PropsSpec struct {
	Text    string   `yaml:"text"`
	Tracked bool     `yaml:"tracked"`
	TargetX *float64 `yaml:"target_x"`
	TargetY *float64 `yaml:"target_y"`
}

// HasTarget reports whether both landing coordinates are set.
func (p PropsSpec) HasTarget() bool {
	return p.TargetX != nil && p.TargetY != nil
}

// DecodeProps converts loosely typed props (decoded from JSON or YAML) into T
// by round-tripping them through YAML.
func DecodeProps[T any](raw any) (T, error) {
	var out T
	if err := decodePropsInto(raw, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func decodePropsInto(raw any, out any) error {
	if raw == nil {
		return nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("prefabs: encode props: %w", err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("prefabs: decode props: %w", err)
	}
	return nil
}

// OverlayTuning applies per-level tuning overrides on top of base.
func OverlayTuning(base puzzle.Tuning, raw map[string]any) (puzzle.Tuning, error) {
	if len(raw) == 0 {
		return base, nil
	}
	spec := TuningSpecFrom(base)
	if err := decodePropsInto(raw, &spec); err != nil {
		return puzzle.Tuning{}, err
	}
	t := spec.Tuning()
	if err := t.Validate(); err != nil {
		return puzzle.Tuning{}, fmt.Errorf("prefabs: level tuning: %w", err)
	}
	return t, nil
}
