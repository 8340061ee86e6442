package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/jamfest/puzzle"
)

// useDir points disk overrides at dir for the duration of the test.
func useDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}

func TestEmbeddedTuningMatchesDefaults(t *testing.T) {
	useDir(t, t.TempDir())

	got, err := LoadTuning(TuningFile, puzzle.Tuning{})
	require.NoError(t, err)
	assert.Equal(t, puzzle.DefaultTuning(), got)
}

func TestTuningDiskOverrideKeepsMissingKeys(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, TuningFile), []byte("jam_mode: timer\nchest_radius: 12\n"), 0o644))

	got, err := LoadTuning(TuningFile, puzzle.DefaultTuning())
	require.NoError(t, err)

	want := puzzle.DefaultTuning()
	want.JamMode = puzzle.JamTimer
	want.ChestRadius = 12
	assert.Equal(t, want, got)
}

func TestTuningRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown mode", body: "jam_mode: oven\n"},
		{name: "unknown outcome", body: "mentos_outcome: fizz\n"},
		{name: "zero radius", body: "sugar_radius: 0\n"},
		{name: "malformed yaml", body: "sugar_radius: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			useDir(t, dir)
			require.NoError(t, os.WriteFile(filepath.Join(dir, TuningFile), []byte(tt.body), 0o644))

			_, err := LoadTuning(TuningFile, puzzle.DefaultTuning())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "prefabs:")
		})
	}
}

func TestEntitiesSpecCoversEveryKind(t *testing.T) {
	useDir(t, t.TempDir())

	spec, err := LoadEntitiesSpec(EntitiesFile)
	require.NoError(t, err)
	assert.Equal(t, 100.0, spec.Player.MoveSpeed)

	for k := puzzle.KindPlayer; k <= puzzle.KindLavaDecor; k++ {
		_, ok := spec.Looks[k.String()]
		assert.True(t, ok, "missing look for %s", k)
	}
	assert.Equal(t, BodyDynamic, spec.Look(puzzle.KindPlayer).Body)
	assert.Equal(t, BodyNone, spec.Look(puzzle.KindLavaDecor).Body)
	assert.False(t, spec.Look(puzzle.KindWall).Sensor)
	assert.True(t, spec.Look(puzzle.KindRopeCoil).Sensor)
}

func TestEntitiesSpecRejectsUnknownKind(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, EntitiesFile), []byte("looks:\n  dragon: {width: 1}\n"), 0o644))

	_, err := LoadEntitiesSpec(EntitiesFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dragon")
}

func TestLookFallback(t *testing.T) {
	var spec *EntitiesSpec
	look := spec.Look(puzzle.KindBear)
	assert.Equal(t, 8.0, look.Width)
	assert.NotNil(t, look.Color)
}

func TestDecodeProps(t *testing.T) {
	raw := map[string]any{"text": "Say sugar", "tracked": true, "target_x": 40.0, "target_y": 10}
	props, err := DecodeProps[PropsSpec](raw)
	require.NoError(t, err)
	assert.Equal(t, "Say sugar", props.Text)
	assert.True(t, props.Tracked)
	require.True(t, props.HasTarget())
	assert.Equal(t, 40.0, *props.TargetX)
	assert.Equal(t, 10.0, *props.TargetY)

	empty, err := DecodeProps[PropsSpec](nil)
	require.NoError(t, err)
	assert.False(t, empty.HasTarget())
}

func TestYAMLColor(t *testing.T) {
	spec := struct {
		C YAMLColor `yaml:"c"`
	}{}
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "color.yaml"), []byte("c: \"#10203080\"\n"), 0o644))

	require.NoError(t, decodeInto("color.yaml", &spec))
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}, spec.C.Color)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "color.yaml"), []byte("c: \"#123\"\n"), 0o644))
	assert.Error(t, decodeInto("color.yaml", &spec))
}

func TestWatcherReportsPrefabWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))
	path := filepath.Join(dir, TuningFile)
	require.NoError(t, os.WriteFile(path, []byte("jam_delay: 3\n"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, TuningFile, got.File)
		assert.Equal(t, path, got.Path)
		assert.False(t, got.ModTime.IsZero())
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event")
	}
}

func TestWatcherCloseEndsEvents(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestModTimeReportsDiskOverrides(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)

	_, ok := ModTime(TuningFile)
	assert.False(t, ok, "embedded copies have no mod time")

	require.NoError(t, os.WriteFile(filepath.Join(dir, TuningFile), []byte("jam_delay: 3\n"), 0o644))
	_, ok = ModTime("prefabs/" + TuningFile)
	assert.True(t, ok)
}

func TestOverlayTuning(t *testing.T) {
	base := puzzle.DefaultTuning()

	same, err := OverlayTuning(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, same)

	got, err := OverlayTuning(base, map[string]any{"mentos_outcome": "rope", "sugar_radius": 90})
	require.NoError(t, err)
	assert.Equal(t, puzzle.OutcomeRope, got.MentosOutcome)
	assert.Equal(t, 90.0, got.SugarRadius)
	assert.Equal(t, base.BridgeRadius, got.BridgeRadius)

	_, err = OverlayTuning(base, map[string]any{"jam_mode": "oven"})
	assert.Error(t, err)
}
