package config

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestLoadConfig_Defaults(t *testing.T) {
	c := qt.New(t)
	t.Chdir(t.TempDir())

	c.Assert(LoadConfig(), qt.IsNil)
	c.Assert(Cfg.Server.Port, qt.Equals, 8080)
	c.Assert(Cfg.RateLimit.Backend, qt.Equals, "memory")
	c.Assert(Cfg.RateLimit.Policies["create_post"], qt.Equals, RateLimitPolicy{Limit: 10, Window: 3600})
	c.Assert(Cfg.Audit.Store, qt.Equals, "mysql")
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	c.Assert(os.MkdirAll(filepath.Join(dir, "configs"), 0o755), qt.IsNil)
	c.Assert(os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte(`
server:
  port: 9000
rate_limit:
  backend: redis
audit:
  store: mongo
`), 0o644), qt.IsNil)
	t.Chdir(dir)
	t.Setenv("INKWELL_SERVER_PORT", "9100")

	c.Assert(LoadConfig(), qt.IsNil)
	c.Assert(Cfg.Server.Port, qt.Equals, 9100)
	c.Assert(Cfg.RateLimit.Backend, qt.Equals, "redis")
	c.Assert(Cfg.Audit.Store, qt.Equals, "mongo")
}
