package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wesen/boardedit/pkg/geom"
	"github.com/wesen/boardedit/pkg/undo"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "boardedit.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BOARDEDIT_CONFIG_PATH", dir)
	return dir
}

// ── Load ──

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("BOARDEDIT_CONFIG_PATH", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	s, err := Load(New())
	if err != nil {
		t.Fatal(err)
	}
	if s.RotationStep != geom.Angle90 || s.UndoDepth != undo.DefaultDepth || s.EditChildren {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.Import.Layer != "Dwgs.User" {
		t.Errorf("expected default import layer, got %q", s.Import.Layer)
	}
}

func TestLoadFile(t *testing.T) {
	writeConfig(t, "rotation_step: 450\nedit_children: true\nundo_depth: 7\nimport:\n  layer: F.SilkS\n")
	s, err := Load(New())
	if err != nil {
		t.Fatal(err)
	}
	if s.RotationStep != 450 || !s.EditChildren || s.UndoDepth != 7 {
		t.Errorf("file values not applied: %+v", s)
	}
	if s.Import.Layer != "F.SilkS" || s.Import.Origin != "page" {
		t.Errorf("import choices: %+v", s.Import)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	writeConfig(t, "rotation_step: 450\n")
	t.Setenv("BOARDEDIT_ROTATION_STEP", "1800")
	s, err := Load(New())
	if err != nil {
		t.Fatal(err)
	}
	if s.RotationStep != geom.Angle180 {
		t.Errorf("expected env value 1800, got %d", s.RotationStep)
	}
}

func TestFullTurnRejected(t *testing.T) {
	writeConfig(t, "rotation_step: 3600\n")
	if _, err := Load(New()); err == nil {
		t.Error("a full-turn rotation step should be rejected")
	}
}

func TestMalformedFile(t *testing.T) {
	writeConfig(t, "rotation_step: [\n")
	if _, err := Load(New()); err == nil {
		t.Error("expected a parse error")
	}
}

// ── Remember ──

func TestRememberImportChoices(t *testing.T) {
	dir := writeConfig(t, "undo_depth: 9\n")
	v := New()
	s, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}
	s.Import.LastFile = "/tmp/outline.dxf"
	s.Import.Layer = "Edge.Cuts"
	if err := Remember(v, s); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BOARDEDIT_CONFIG_PATH", dir)
	again, err := Load(New())
	if err != nil {
		t.Fatal(err)
	}
	if again.Import.LastFile != "/tmp/outline.dxf" || again.Import.Layer != "Edge.Cuts" {
		t.Errorf("choices not persisted: %+v", again.Import)
	}
	if again.UndoDepth != 9 {
		t.Errorf("other settings should survive, got depth %d", again.UndoDepth)
	}
}
