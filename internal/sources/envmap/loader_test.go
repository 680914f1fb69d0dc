package envmap

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "environments.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp yaml: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTempYAML(t, `
environments:
  - name: myapp
    origins:
      - host: app.example.com
        label: prod
      - host: localhost:3000
        label: local
`)

	config, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(config.Environments) != 1 {
		t.Fatalf("got %d environments, want 1", len(config.Environments))
	}
	g := config.Environments[0]
	if g.Name != "myapp" || len(g.Origins) != 2 {
		t.Errorf("unexpected group: %+v", g)
	}
	if g.Origins[1].Host != "localhost:3000" || g.Origins[1].Label != "local" {
		t.Errorf("unexpected origin: %+v", g.Origins[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := NewLoader("/nonexistent/environments.yaml").Load(); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeTempYAML(t, "environments: [unclosed")
	if _, err := NewLoader(path).Load(); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}
