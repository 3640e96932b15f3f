package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubBroadcastReachesClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		go NewClient(hub, conn).Run()
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// give the hub a moment to register the client
	deadline := time.Now().Add(2 * time.Second)
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast(Event{Event: EventLogCreated, Date: "2024-01-01", ID: 7})

	_ = conn.SetReadDeadline(deadline)
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var ev Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Event != EventLogCreated || ev.Date != "2024-01-01" || ev.ID != 7 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}
