// Package websocket pushes thread activity to connected admin clients.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// MessageType identifies a frame on the admin websocket.
type MessageType string

const (
	MessageTypeSubscribe   MessageType = "subscribe"
	MessageTypeUnsubscribe MessageType = "unsubscribe"
	MessageTypeNewReply    MessageType = "new_reply"
	MessageTypeError       MessageType = "error"
)

// WSMessage is the wire envelope for every frame in both directions.
type WSMessage struct {
	Type     MessageType `json:"type"`
	ThreadID string      `json:"thread_id,omitempty"`
	Payload  interface{} `json:"payload,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// NewReplyPayload notifies subscribers that a customer reply landed in a
// thread
type NewReplyPayload struct {
	EmailID         string `json:"email_id"`
	ThreadID        string `json:"thread_id"`
	FromEmail       string `json:"from_email"`
	Subject         string `json:"subject,omitempty"`
	Snippet         string `json:"snippet,omitempty"`
	SentAt          string `json:"sent_at"`
	AttachmentCount int    `json:"attachment_count"`
}

type subscriptionRequest struct {
	client   *Client
	threadID string
}

type broadcastMessage struct {
	threadID string
	message  []byte
}

// Hub tracks connected clients and their per-thread subscriptions, and
// fans reply notifications out to whoever watches the affected thread.
// All state changes flow through Run's channel loop; the mutex only
// guards reads from other goroutines (and tests).
type Hub struct {
	clients       map[*Client]bool
	subscriptions map[string]map[*Client]bool

	register          chan *Client
	unregister        chan *Client
	subscribe         chan *subscriptionRequest
	unsubscribeThread chan *subscriptionRequest
	broadcast         chan *broadcastMessage

	mu     sync.RWMutex
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:           make(map[*Client]bool),
		subscriptions:     make(map[string]map[*Client]bool),
		register:          make(chan *Client),
		unregister:        make(chan *Client),
		subscribe:         make(chan *subscriptionRequest),
		unsubscribeThread: make(chan *subscriptionRequest),
		broadcast:         make(chan *broadcastMessage, 256),
		logger:            logger,
	}
}

// Run processes hub events until the process exits. Start it once, in
// its own goroutine, before accepting connections.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.dropClient(client)
		case req := <-h.subscribe:
			h.addSubscription(req)
		case req := <-h.unsubscribeThread:
			h.dropSubscription(req)
		case msg := <-h.broadcast:
			h.fanOut(msg)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
	h.debug("client registered")
}

// dropClient closes the client's send channel and scrubs it from every
// thread subscription so WritePump terminates.
func (h *Hub) dropClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		for threadID, subscribers := range h.subscriptions {
			delete(subscribers, client)
			if len(subscribers) == 0 {
				delete(h.subscriptions, threadID)
			}
		}
	}
	h.mu.Unlock()
	h.debug("client unregistered")
}

func (h *Hub) addSubscription(req *subscriptionRequest) {
	h.mu.Lock()
	if h.subscriptions[req.threadID] == nil {
		h.subscriptions[req.threadID] = make(map[*Client]bool)
	}
	h.subscriptions[req.threadID][req.client] = true
	h.mu.Unlock()
	h.debug("client subscribed to thread", slog.String("thread_id", req.threadID))
}

func (h *Hub) dropSubscription(req *subscriptionRequest) {
	h.mu.Lock()
	if subscribers, ok := h.subscriptions[req.threadID]; ok {
		delete(subscribers, req.client)
		if len(subscribers) == 0 {
			delete(h.subscriptions, req.threadID)
		}
	}
	h.mu.Unlock()
	h.debug("client unsubscribed from thread", slog.String("thread_id", req.threadID))
}

// fanOut delivers a frame to every subscriber of the thread. Slow
// clients with a full buffer are skipped rather than blocking the loop.
func (h *Hub) fanOut(msg *broadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.subscriptions[msg.threadID] {
		select {
		case client.send <- msg.message:
		default:
		}
	}
}

func (h *Hub) debug(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Debug(msg, args...)
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Subscribe starts delivering a thread's activity to the client
func (h *Hub) Subscribe(client *Client, threadID string) {
	h.subscribe <- &subscriptionRequest{client: client, threadID: threadID}
}

// Unsubscribe stops delivering a thread's activity to the client
func (h *Hub) Unsubscribe(client *Client, threadID string) {
	h.unsubscribeThread <- &subscriptionRequest{client: client, threadID: threadID}
}

// BroadcastNewReply notifies a thread's subscribers that a customer
// reply arrived.
func (h *Hub) BroadcastNewReply(threadID string, payload *NewReplyPayload) {
	data, err := json.Marshal(WSMessage{
		Type:     MessageTypeNewReply,
		ThreadID: threadID,
		Payload:  payload,
	})
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to marshal broadcast message", slog.Any("error", err))
		}
		return
	}

	h.broadcast <- &broadcastMessage{threadID: threadID, message: data}
}
