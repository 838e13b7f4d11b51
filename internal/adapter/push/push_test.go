package push

import (
	"io"
	"log/slog"
	"testing"

	"github.com/polkiloo/warungpos/internal/config"
	"github.com/polkiloo/warungpos/internal/wire"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestChannelNilWhenBrokerUnconfigured(t *testing.T) {
	ch := newChannel(pushParams{Config: &config.Config{}, Logger: testLogger()})
	if ch != nil {
		t.Fatal("expected nil channel without broker address")
	}

	ch = newChannel(pushParams{Config: &config.Config{AMQPAddress: "amqp://localhost"}, Logger: testLogger()})
	if ch == nil {
		t.Fatal("expected subscriber when broker address is set")
	}
}

func TestPublisherNilWhenBrokerUnconfigured(t *testing.T) {
	pub, err := newPublisher(pushParams{Config: &config.Config{}, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pub != nil {
		t.Fatal("expected nil publisher without broker address")
	}
}

func TestBindingsCoverAllCollections(t *testing.T) {
	want := map[string]bool{
		wire.CollectionOrders + ".*":    false,
		wire.CollectionMenuItems + ".*": false,
		wire.CollectionUsers + ".*":     false,
	}
	for _, key := range bindings {
		if _, ok := want[key]; !ok {
			t.Fatalf("unexpected binding %q", key)
		}
		want[key] = true
	}
	for key, seen := range want {
		if !seen {
			t.Fatalf("missing binding %q", key)
		}
	}
}
