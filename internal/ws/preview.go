package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ringlight/internal/led"
	"github.com/coreman2200/funtimes-ringlight/model"
)

// Preview is a driver that broadcasts every flushed frame to websocket
// clients. It is read only: messages from clients are discarded.
type Preview struct {
	*led.Output

	log     zerolog.Logger
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	frameID uint64
	start   time.Time

	// Status, if set, is merged into /health.
	Status func() map[string]any
}

func NewPreview(log zerolog.Logger) *Preview {
	return &Preview{
		Output:  led.NewOutput(),
		log:     log,
		clients: map[*websocket.Conn]bool{},
		start:   time.Now(),
	}
}

type ring struct {
	Name     string  `json:"name"`
	Start    int     `json:"start"`
	Len      int     `json:"len"`
	Indexing string  `json:"indexing"`
	Origin   float64 `json:"origin"`
}

type frame struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	RGB     []byte `json:"rgb"`
}

func (p *Preview) Flush(buf *model.Buffer) error {
	rgb := p.RGB(buf)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.frameID++
	b, err := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: p.frameID, RGB: rgb})
	if err != nil {
		return err
	}
	for c := range p.clients {
		_ = c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			p.log.Debug().Err(err).Msg("write frame")
		}
	}
	return nil
}

// HandleFrames upgrades to a websocket, sends the ring topology once and then
// every frame.
func (p *Preview) HandleFrames(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	top := map[string]any{"count": model.BufferLength, "rings": rings()}
	b, _ := json.Marshal(top)

	p.mu.Lock()
	p.clients[conn] = true
	_ = conn.WriteMessage(websocket.TextMessage, b)
	p.mu.Unlock()

	go func() {
		defer p.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (p *Preview) HandleHealth(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	resp := map[string]any{
		"frame_id":   p.frameID,
		"uptime_s":   time.Since(p.start).Seconds(),
		"count":      model.BufferLength,
		"clients":    len(p.clients),
		"brightness": p.Brightness(),
	}
	p.mu.Unlock()
	if p.Status != nil {
		for k, v := range p.Status() {
			resp[k] = v
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Clients is the number of connected preview clients.
func (p *Preview) Clients() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clients)
}

func (p *Preview) drop(conn *websocket.Conn) {
	p.mu.Lock()
	delete(p.clients, conn)
	p.mu.Unlock()
	_ = conn.Close()
}

func (p *Preview) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for c := range p.clients {
		_ = c.Close()
		delete(p.clients, c)
	}
	return nil
}

func rings() []ring {
	out := make([]ring, 0, len(model.Rings))
	for _, r := range model.Rings {
		out = append(out, ring{Name: r.Name, Start: r.Start, Len: r.Len, Indexing: r.Indexing.String(), Origin: r.Origin})
	}
	return out
}
