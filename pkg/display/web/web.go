// Package web implements a websocket display driver: the framebuffer
// is streamed to every connected browser client, with unchanged
// frames deduplicated by hash so an idle screen costs no bandwidth.
package web

import (
	"net/http"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/gorilla/websocket"

	"github.com/Miliox/goteborg/pkg/display"
)

// Addr is the listen address of the streaming server.
var Addr = "localhost:8090"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func init() {
	display.Install("web", &Driver{})
}

// Driver is the websocket display driver.
type Driver struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	lastHash uint64
	quit     chan struct{}
}

// Start serves the websocket endpoint and broadcasts incoming frames
// until Stop is called.
func (d *Driver) Start(fb <-chan []byte) error {
	d.quit = make(chan struct{})
	d.clients = make(map[*websocket.Conn]struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/", d.handleClient)

	server := &http.Server{Addr: Addr, Handler: mux}
	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	for {
		select {
		case err := <-errs:
			return err
		case <-d.quit:
			return server.Close()
		case frame := <-fb:
			d.broadcast(frame)
		}
	}
}

// Stop shuts the server down and drops every client.
func (d *Driver) Stop() error {
	if d.quit != nil {
		close(d.quit)
	}
	return nil
}

func (d *Driver) handleClient(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	d.mu.Lock()
	d.clients[conn] = struct{}{}
	d.mu.Unlock()

	// drain control frames; deregister on any read error
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				d.mu.Lock()
				delete(d.clients, conn)
				d.mu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

// broadcast sends the frame to every client, skipping frames whose
// hash matches the previous one.
func (d *Driver) broadcast(frame []byte) {
	hash := xxhash.Sum64(frame)
	if hash == d.lastHash {
		return
	}
	d.lastHash = hash

	d.mu.Lock()
	defer d.mu.Unlock()
	for conn := range d.clients {
		if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			delete(d.clients, conn)
			conn.Close()
		}
	}
}
