package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestRemoteFilterHandler(t *testing.T) {
	c := qt.New(t)

	var local, remote bytes.Buffer
	h := &ContextHandler{NewTeeHandler(
		log.NewJSONHandler(&local, nil),
		NewRemoteFilterHandler(log.NewJSONHandler(&remote, nil)),
	)}
	l := log.New(h)

	l.InfoContext(context.Background(), "background info")
	l.WarnContext(context.Background(), "background warn")
	l.InfoContext(context.WithValue(context.Background(), TraceIDKey, "abc"), "request info")

	c.Assert(strings.Count(local.String(), "\n"), qt.Equals, 3)
	c.Assert(remote.String(), qt.Not(qt.Contains), "background info")
	c.Assert(remote.String(), qt.Contains, "background warn")
	c.Assert(remote.String(), qt.Contains, `"trace_id":"abc"`)
}

func TestTraceID(t *testing.T) {
	c := qt.New(t)
	c.Assert(TraceID(nil), qt.Equals, "")
	c.Assert(TraceID(context.Background()), qt.Equals, "")
	c.Assert(TraceID(context.WithValue(context.Background(), TraceIDKey, "t-1")), qt.Equals, "t-1")
}

func TestSQLOperation(t *testing.T) {
	c := qt.New(t)
	c.Assert(sqlOperation("SELECT * FROM posts"), qt.Equals, "SELECT")
	c.Assert(sqlOperation("  update posts SET version=2"), qt.Equals, "UPDATE")
	c.Assert(sqlOperation(""), qt.Equals, "Query")
}
