package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/jamfest/puzzle"
)

const (
	TuningFile   = "tuning.yaml"
	EntitiesFile = "entities.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := decodeInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

func decodeInto(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

// TuningSpec is the YAML shape of puzzle.Tuning. Keys left out of the file
// keep their default values.
type TuningSpec struct {
	SugarRadius     float64 `yaml:"sugar_radius"`
	MentosRadius    float64 `yaml:"mentos_radius"`
	BridgeRadius    float64 `yaml:"bridge_radius"`
	ChestRadius     float64 `yaml:"chest_radius"`
	SignRadius      float64 `yaml:"sign_radius"`
	BearGuardRadius float64 `yaml:"bear_guard_radius"`
	MentosSpeed     float64 `yaml:"mentos_speed"`
	MentosHit       float64 `yaml:"mentos_hit"`
	SugarBagSpeed   float64 `yaml:"sugar_bag_speed"`
	JamOverlap      float64 `yaml:"jam_overlap"`
	JamDelay        float64 `yaml:"jam_delay"`
	RopeDropSpeed   float64 `yaml:"rope_drop_speed"`
	RopeLanded      float64 `yaml:"rope_landed"`
	BearSpeed       float64 `yaml:"bear_speed"`
	BearStop        float64 `yaml:"bear_stop"`
	JamMode         string  `yaml:"jam_mode"`
	MentosOutcome   string  `yaml:"mentos_outcome"`
	WinText         string  `yaml:"win_text"`
}

func TuningSpecFrom(t puzzle.Tuning) TuningSpec {
	return TuningSpec{
		SugarRadius:     t.SugarRadius,
		MentosRadius:    t.MentosRadius,
		BridgeRadius:    t.BridgeRadius,
		ChestRadius:     t.ChestRadius,
		SignRadius:      t.SignRadius,
		BearGuardRadius: t.BearGuardRadius,
		MentosSpeed:     t.MentosSpeed,
		MentosHit:       t.MentosHit,
		SugarBagSpeed:   t.SugarBagSpeed,
		JamOverlap:      t.JamOverlap,
		JamDelay:        t.JamDelay,
		RopeDropSpeed:   t.RopeDropSpeed,
		RopeLanded:      t.RopeLanded,
		BearSpeed:       t.BearSpeed,
		BearStop:        t.BearStop,
		JamMode:         string(t.JamMode),
		MentosOutcome:   string(t.MentosOutcome),
		WinText:         t.WinText,
	}
}

func (s TuningSpec) Tuning() puzzle.Tuning {
	return puzzle.Tuning{
		SugarRadius:     s.SugarRadius,
		MentosRadius:    s.MentosRadius,
		BridgeRadius:    s.BridgeRadius,
		ChestRadius:     s.ChestRadius,
		SignRadius:      s.SignRadius,
		BearGuardRadius: s.BearGuardRadius,
		MentosSpeed:     s.MentosSpeed,
		MentosHit:       s.MentosHit,
		SugarBagSpeed:   s.SugarBagSpeed,
		JamOverlap:      s.JamOverlap,
		JamDelay:        s.JamDelay,
		RopeDropSpeed:   s.RopeDropSpeed,
		RopeLanded:      s.RopeLanded,
		BearSpeed:       s.BearSpeed,
		BearStop:        s.BearStop,
		JamMode:         puzzle.JamMode(s.JamMode),
		MentosOutcome:   puzzle.MentosOutcome(s.MentosOutcome),
		WinText:         s.WinText,
	}
}

// LoadTuning reads a tuning file layered over base and validates the result.
func LoadTuning(filename string, base puzzle.Tuning) (puzzle.Tuning, error) {
	spec := TuningSpecFrom(base)
	if err := decodeInto(filename, &spec); err != nil {
		return puzzle.Tuning{}, err
	}
	t := spec.Tuning()
	if err := t.Validate(); err != nil {
		return puzzle.Tuning{}, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return t, nil
}

type BodyType string

const (
	BodyNone      BodyType = ""
	BodyStatic    BodyType = "static"
	BodyKinematic BodyType = "kinematic"
	BodyDynamic   BodyType = "dynamic"
)

// LookSpec describes how one entity kind is drawn and how it collides.
type LookSpec struct {
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
	Layer  int        `yaml:"layer"`
	Body   BodyType   `yaml:"body"`
	Sensor bool       `yaml:"sensor"`
}

type PlayerSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
}

type CameraSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type CaptionSpec struct {
	Color *YAMLColor `yaml:"color"`
	Scale float64    `yaml:"scale"`
}

type EntitiesSpec struct {
	Player  PlayerSpec          `yaml:"player"`
	Camera  CameraSpec          `yaml:"camera"`
	Caption CaptionSpec         `yaml:"caption"`
	Looks   map[string]LookSpec `yaml:"looks"`
}

// LoadEntitiesSpec reads the look table and checks every key names a known
// entity kind.
func LoadEntitiesSpec(filename string) (*EntitiesSpec, error) {
	spec, err := LoadSpec[EntitiesSpec](filename)
	if err != nil {
		return nil, err
	}
	for name, look := range spec.Looks {
		if _, ok := puzzle.ParseKind(name); !ok {
			return nil, fmt.Errorf("prefabs: %s: unknown entity kind %q", filename, name)
		}
		switch look.Body {
		case BodyNone, BodyStatic, BodyKinematic, BodyDynamic:
		default:
			return nil, fmt.Errorf("prefabs: %s: look %s: unknown body type %q", filename, name, look.Body)
		}
	}
	return &spec, nil
}

// Look returns the look for k, or a small grey placeholder.
func (s *EntitiesSpec) Look(k puzzle.Kind) LookSpec {
	if s != nil {
		if look, ok := s.Looks[k.String()]; ok {
			return look
		}
	}
	return LookSpec{Width: 8, Height: 8, Color: &YAMLColor{Color: color.NRGBA{R: 128, G: 128, B: 128, A: 255}}}
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
