package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/modelscout/internal/domain"
)

func TestBuildContainerWiresServices(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	raw := "storage:\n  driver: file\n  path: " + filepath.Join(dir, "session.json") + "\n"
	if err := os.WriteFile(cfgPath, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(domain.BaseURLEnvVar, "http://127.0.0.1:1")

	var logs bytes.Buffer
	c, err := BuildContainer(context.Background(), Options{ConfigPath: cfgPath, LogWriter: &logs})
	if err != nil {
		t.Fatalf("BuildContainer: %v", err)
	}
	defer c.Close(context.Background())

	if c.Backend.BaseURL() != "http://127.0.0.1:1" {
		t.Fatalf("base url = %s", c.Backend.BaseURL())
	}
	if c.Sessions == nil || c.History == nil || c.Workflow == nil || c.Optimizer == nil || c.Dashboard == nil || c.Doctor == nil {
		t.Fatal("service missing from container")
	}
	if _, ok, err := c.Sessions.Current(); err != nil || ok {
		t.Fatalf("fresh store has a session: ok=%v err=%v", ok, err)
	}
}
