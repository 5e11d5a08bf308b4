package ws

import (
	"log"
	"net/http"
	"strconv"
	"sync"

	"comandero/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// DispatchHub fans dispatch-board events out to the kitchen stations of a
// restaurant. Stations connect once and receive a snapshot followed by
// refresh events; no polling.
type DispatchHub struct {
	clients    map[uint]map[*websocket.Conn]bool // restaurantID -> connections
	broadcast  chan broadcastEvent
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
	dispatch   *services.DispatchService
}

type subscription struct {
	Conn         *websocket.Conn
	RestaurantID uint
}

type broadcastEvent struct {
	RestaurantID uint
	Event        services.DispatchEvent
}

func NewDispatchHub(dispatch *services.DispatchService) *DispatchHub {
	return &DispatchHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan broadcastEvent, 16),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		dispatch:   dispatch,
	}
}

// Notify implements services.DispatchNotifier.
func (h *DispatchHub) Notify(restaurantID uint, event services.DispatchEvent) {
	h.broadcast <- broadcastEvent{RestaurantID: restaurantID, Event: event}
}

func (h *DispatchHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.RestaurantID] == nil {
				h.clients[sub.RestaurantID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.RestaurantID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.RestaurantID][sub.Conn]; ok {
				delete(h.clients[sub.RestaurantID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.RestaurantID] {
				if err := conn.WriteJSON(ev.Event); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[ev.RestaurantID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/dispatch?restaurantId=
func (h *DispatchHub) HandleWebSocket(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Query("restaurantId"), 10, 32)
	if err != nil || restaurantID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurantId is required"})
		return
	}

	board, err := h.dispatch.Columns(uint(restaurantID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot build board"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	if err := conn.WriteJSON(board); err != nil {
		log.Printf("ws snapshot error: %v", err)
		conn.Close()
		return
	}

	sub := subscription{Conn: conn, RestaurantID: uint(restaurantID)}
	h.register <- sub

	go h.drain(sub)
}

// drain keeps reading so pings and closes are noticed; stations never send
// board mutations over the socket.
func (h *DispatchHub) drain(sub subscription) {
	defer func() { h.unregister <- sub }()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
