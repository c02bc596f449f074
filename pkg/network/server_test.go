package network

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/game"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gorilla/websocket"
)

func startServer(t *testing.T) (*Server, string) {
	t.Helper()
	catalog, err := config.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	sim := game.NewSimulation(catalog, game.Options{Authority: true, Seed: 1, Logger: logger.Discard()})
	loop := game.NewLoop(sim, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(ctx, loop, logger.Discard())
	go loop.Run(ctx)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// call sends req and returns the next text frame, skipping snapshots.
func call(t *testing.T, conn *websocket.Conn, req Request) Response {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	for {
		if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			t.Fatalf("SetReadDeadline: %v", err)
		}
		var resp Response
		kind, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage: %v", err)
		}
		if kind != websocket.TextMessage {
			continue
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return resp
	}
}

func TestJoinPlaceAndReplay(t *testing.T) {
	_, url := startServer(t)
	conn := dial(t, url)

	if resp := call(t, conn, Request{ID: "0", Op: OpStartWave}); resp.OK {
		t.Fatal("requests before join must fail")
	}

	joined := call(t, conn, Request{ID: "1", Op: OpJoin, Name: "alice"})
	if !joined.OK || joined.Data == nil || joined.Data.PlayerID == 0 || joined.Data.Token == "" {
		t.Fatalf("join = %+v", joined)
	}

	place := Request{ID: "2", Op: OpPlaceStructure, TemplateID: 1, CellX: 3, CellY: 3}
	first := call(t, conn, place)
	if !first.OK || first.Data.StructureID == 0 {
		t.Fatalf("place = %+v", first)
	}

	// same id: replayed, not built twice on an occupied cell
	again := call(t, conn, place)
	if !again.OK || again.Data.StructureID != first.Data.StructureID {
		t.Errorf("replay = %+v, want %+v", again, first)
	}

	place.ID = "3"
	if dup := call(t, conn, place); dup.OK {
		t.Error("a new id on an occupied cell should fail")
	}
}

func TestSnapshotsAreBroadcast(t *testing.T) {
	srv, url := startServer(t)
	conn := dial(t, url)
	call(t, conn, Request{ID: "join", Op: OpJoin, Name: "watcher"})

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if err := conn.SetReadDeadline(deadline); err != nil {
			t.Fatalf("SetReadDeadline: %v", err)
		}
		kind, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage: %v", err)
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		snap, err := game.DecodeSnapshot(data)
		if err != nil {
			t.Fatalf("DecodeSnapshot: %v", err)
		}
		if len(snap.Players) != 1 || snap.Players[0].Name != "watcher" {
			t.Errorf("players = %+v", snap.Players)
		}
		if srv.Hub().Len() != 1 {
			t.Errorf("hub has %d clients, want 1", srv.Hub().Len())
		}
		return
	}
	t.Fatal("no snapshot received")
}

func TestHealth(t *testing.T) {
	srv, _ := startServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
}
