package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Envelope es el sobre JSON que reciben los clientes conectados.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Los clientes no se identifican individualmente: el hub solo conoce
// conexiones vivas.
type Client struct {
	Conn *websocket.Conn

	writeMu sync.Mutex
}

// Send serializa las escrituras al socket: el eco de mensajes entrantes y
// las difusiones del hub comparten la misma conexión.
func (c *Client) Send(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// Hub mantiene el conjunto de clientes conectados y reparte eventos a todos.
// Solo expone Register, Unregister y Broadcast.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("Cliente conectado: %s", client.Conn.RemoteAddr())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Conn.Close()
			}
			h.mu.Unlock()
			log.Printf("Cliente desconectado: %s", client.Conn.RemoteAddr())
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister es idempotente: retirar un cliente ya retirado no tiene efecto.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast serializa el evento y lo envía a cada conexión activa. Un fallo
// de entrega a un cliente lo retira del conjunto pero nunca interrumpe la
// entrega al resto ni se propaga a quien originó la difusión.
func (h *Hub) Broadcast(event any) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error serializando el evento de difusión: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered, failed := 0, 0
	for client := range h.clients {
		if err := client.Send(websocket.TextMessage, message); err != nil {
			log.Printf("Error de escritura websocket (%s): %v", client.Conn.RemoteAddr(), err)
			client.Conn.Close()
			delete(h.clients, client)
			failed++
			continue
		}
		delivered++
	}
	log.Printf("Difusión %q: %d entregas, %d fallos", eventType(event), delivered, failed)
}

// ClientCount informa cuántas conexiones siguen activas.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func eventType(event any) string {
	if env, ok := event.(Envelope); ok {
		return env.Type
	}
	return "?"
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Permite todos los orígenes por ahora. En producción, restringir.
		return true
	},
}

// ServeWs acepta la conexión persistente, la registra en el hub y hace eco
// de cada mensaje de texto entrante como acuse de recibo.
func ServeWs(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println(err)
			return
		}

		client := &Client{Conn: conn}
		hub.Register(client)

		go func() {
			defer hub.Unregister(client)
			for {
				_, data, err := client.Conn.ReadMessage()
				if err != nil {
					break
				}
				if err := client.Send(websocket.TextMessage, []byte("Message received: "+string(data))); err != nil {
					break
				}
			}
		}()
	}
}
