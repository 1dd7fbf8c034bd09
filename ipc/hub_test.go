package ipc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcastOverWebSocket(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrade(w, r)
		if err != nil {
			t.Errorf("Upgrade: %v", err)
			return
		}
		client := hub.Register(conn)
		conn.ReadLoop()
		hub.Unregister(client)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	var peers []*websocket.Conn
	for i := 0; i < 2; i++ {
		ws, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("Dial: %v", err)
		}
		defer ws.Close()
		peers = append(peers, ws)
	}
	waitFor(t, func() bool { return hub.Clients() == 2 })

	env, _ := NewEnvelope(TypeEvent, EventMessage{Text: "Terra has fallen"})
	hub.Broadcast(env)

	for i, ws := range peers {
		ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got Envelope
		if err := ws.ReadJSON(&got); err != nil {
			t.Fatalf("peer %d ReadJSON: %v", i, err)
		}
		var msg EventMessage
		if err := got.Decode(&msg); err != nil {
			t.Fatal(err)
		}
		if got.Type != TypeEvent || msg.Text != "Terra has fallen" {
			t.Errorf("peer %d got %s %q", i, got.Type, msg.Text)
		}
	}

	peers[0].Close()
	waitFor(t, func() bool { return hub.Clients() == 1 })
}

func TestHubStopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	if c := hub.Register(NewConnection(nil, nil)); c != nil {
		t.Error("Register after stop returned a client")
	}
	hub.Broadcast(Envelope{Type: TypeEvent})
	hub.Unregister(nil)
}
