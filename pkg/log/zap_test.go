package log_test

import (
	"context"
	"testing"

	"line-knowledge-assistant/pkg/log"
)

func TestInit(t *testing.T) {
	cases := []log.ZapConfig{
		{Level: "debug", Mode: "development", Encoding: "console", ColorEnabled: true},
		{Level: "info", Mode: "production", Encoding: "json"},
		{Level: "not-a-level", Encoding: "console"},
	}

	for _, cfg := range cases {
		l := log.Init(cfg)
		if l == nil {
			t.Fatalf("expected logger for %+v", cfg)
		}
		ctx := context.WithValue(context.Background(), log.RequestIDKey, "req-1")
		l.Infof(ctx, "hello %s", "world")
		l.Debug(context.Background(), "debug line")
	}
}

func TestNewNop(t *testing.T) {
	l := log.NewNop()
	l.Error(context.Background(), "discarded")
	l.Warnf(context.TODO(), "todo ctx %d", 1)
}
