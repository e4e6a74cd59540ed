package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"tripbid/pkg/logger"
)

func newTestClient(h *Hub, userID string) *Client {
	return &Client{
		hub:    h,
		send:   make(chan []byte, 1),
		UserID: userID,
		rooms:  make(map[string]bool),
	}
}

func TestSendToRoomReachesPersonalRoom(t *testing.T) {
	h := NewHub(logger.Discard())
	alice := newTestClient(h, "alice")
	bob := newTestClient(h, "bob")
	h.registerClient(alice)
	h.registerClient(bob)

	n, err := h.SendToRoom(UserRoom("alice"), "trip_status", map[string]bool{"success": true})
	if err != nil || n != 1 {
		t.Fatalf("delivered=%d err=%v, want 1 delivery", n, err)
	}

	var msg Message
	if err := json.Unmarshal(<-alice.send, &msg); err != nil {
		t.Fatalf("bad frame: %v", err)
	}
	if msg.Type != "trip_status" || msg.RoomID != "user_alice" {
		t.Fatalf("unexpected frame: %+v", msg)
	}
	if len(bob.send) != 0 {
		t.Fatal("bob should not receive alice's event")
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	h := NewHub(logger.Discard())
	c := newTestClient(h, "slow")
	h.registerClient(c)

	_, _ = h.SendToRoom(UserRoom("slow"), "e", nil)
	n, _ := h.SendToRoom(UserRoom("slow"), "e", nil)
	if n != 0 {
		t.Fatalf("second send should not be delivered, got %d", n)
	}
	if _, ok := h.clients[c]; ok {
		t.Fatal("client with a full buffer should be removed")
	}
	if _, ok := h.rooms[UserRoom("slow")]; ok {
		t.Fatal("empty room should be removed")
	}
}

func TestLeaveRoom(t *testing.T) {
	h := NewHub(logger.Discard())
	c := newTestClient(h, "u")
	h.registerClient(c)
	h.JoinRoom(c, "request_1")
	h.LeaveRoom(c, "request_1")

	if n, _ := h.SendToRoom("request_1", "e", nil); n != 0 {
		t.Fatalf("left room still receives events: %d", n)
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example.com"})

	r := httptest.NewRequest("GET", "/ws", nil)
	if !check(r) {
		t.Fatal("requests without origin are allowed")
	}
	r.Header.Set("Origin", "https://evil.example.com")
	if check(r) {
		t.Fatal("unknown origin should be rejected")
	}
	r.Header.Set("Origin", "https://app.example.com")
	if !check(r) {
		t.Fatal("listed origin should be allowed")
	}
}
