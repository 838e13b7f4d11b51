package di

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/warungpos/internal/app"
	"github.com/polkiloo/warungpos/internal/config"
	"github.com/polkiloo/warungpos/internal/storage/postgres"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestTerminalModuleComposesGraph(t *testing.T) {
	cfg := &config.Config{
		ReconcileInterval: time.Minute,
		ShutdownTimeout:   time.Millisecond,
	}

	var facade *app.TerminalFacade
	fxApp := fx.New(
		fx.NopLogger,
		TerminalModule(
			fx.Replace(cfg),
			fx.Replace(testLogger()),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected terminal facade instance")
	}
}

func TestServerModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		ShutdownTimeout: time.Millisecond,
	}

	var server *http.Server
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		ServerModule(
			fx.Replace(cfg),
			fx.Replace(testLogger()),
			fx.Replace(&postgres.Storage{}),
		),
		fx.Populate(&server),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if server == nil || server.Addr != ":0" {
		t.Fatalf("expected configured http server, got %+v", server)
	}
}
