// Package devserver wires package hub's transport-agnostic pub/sub onto
// a websocket endpoint so a running typegen watch session can notify any
// connected browser or editor plugin which source was re-rendered and
// where its output file is.
package devserver

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"sourcelike.dev/typegen/hub"
	"sourcelike.dev/typegen/hub/wshub"
	"sourcelike.dev/typegen/log"
)

// Broadcaster is a hub.Router that remembers every signed-on connection
// and can push a message to all of them at once. The hub itself only
// ever sees point-to-point messages, since hub.Router.Route takes one
// *hub.Msg at a time; fan-out to "every live client" is a policy this
// package adds on top, not something package hub provides itself.
//
// Services handles any subject a connected client sends that isn't
// signon/signoff bookkeeping, so a client can ask for something besides
// passively listening for broadcasts (see the "status" service wired up
// by cmd/typegen's watch command).
type Broadcaster struct {
	mu       sync.Mutex
	conns    map[int64]hub.Conn
	Services hub.Services
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{conns: make(map[int64]hub.Conn, 16)}
}

// Route implements hub.Router. Signon/signoff update the fan-out set;
// anything else is handed to Services, if set, to answer directly.
func (b *Broadcaster) Route(m *hub.Msg) {
	switch m.Subj {
	case hub.Signon:
		b.mu.Lock()
		b.conns[m.From.ID()] = m.From
		b.mu.Unlock()
	case hub.Signoff:
		b.mu.Lock()
		delete(b.conns, m.From.ID())
		b.mu.Unlock()
	default:
		if b.Services != nil {
			b.Services.Handle(m)
		}
	}
}

// Broadcast sends a message with subj and data to every connected client.
// Each broadcast gets its own session token so a client that sees several
// rapid "rendered" notifications can tell them apart without having to
// inspect the payload.
func (b *Broadcaster) Broadcast(subj string, data interface{}) {
	tok := uuid.NewString()
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.conns {
		select {
		case c.Chan() <- &hub.Msg{Subj: subj, Tok: tok, Data: data}:
		default:
			// slow or gone client, drop rather than block the broadcaster
		}
	}
}

// Server serves the websocket upgrade endpoint and exposes Broadcast so
// a watch loop can push "rendered"/"render_error" notifications as it reacts to
// schema file changes.
type Server struct {
	*Broadcaster
	ws  *wshub.Server
	hub *hub.Hub
	log log.Logger

	mu     sync.Mutex
	latest map[string]SourceStatus
}

// NewServer starts the hub's routing goroutine and returns a Server
// ready to be mounted as an http.Handler. It also registers a "status"
// service on the hub, so a connected client can ask for the current
// render snapshot instead of only ever receiving broadcasts.
func NewServer(lg log.Logger) *Server {
	h := hub.NewHub()
	h.Log = lg
	b := NewBroadcaster()
	go h.Run(b)
	ws := wshub.NewServer(h)
	ws.Log = lg
	s := &Server{Broadcaster: b, ws: ws, hub: h, log: lg, latest: map[string]SourceStatus{}}
	b.Services = hub.Services{"status": statusService{s}}
	return s
}

// SourceStatus is one source's last known render outcome.
type SourceStatus struct {
	Source string `json:"source"`
	Out    string `json:"out,omitempty"`
	Err    string `json:"err,omitempty"`
}

// statusService answers a "status" request with every source's
// SourceStatus as of the last NotifyRendered/NotifyError call.
type statusService struct{ s *Server }

func (h statusService) Serve(m *hub.Msg) (*hub.Msg, error) {
	h.s.mu.Lock()
	snap := make([]SourceStatus, 0, len(h.s.latest))
	for _, st := range h.s.latest {
		snap = append(snap, st)
	}
	h.s.mu.Unlock()
	return m.ReplyRes(snap), nil
}

// ServeHTTP tags the request's context with a logger carrying the
// connecting client's remote address, so every log line wshub.Server
// emits for this connection is traceable back to it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lg := s.log.With("remote", r.RemoteAddr)
	r = r.WithContext(context.WithValue(r.Context(), log.ContextKey, lg))
	s.ws.ServeHTTP(w, r)
}

// RenderedMsg is the payload broadcast after a successful watch-triggered
// render; clients use it to know which generated file to re-fetch.
type RenderedMsg struct {
	Source string `json:"source"`
	Out    string `json:"out"`
}

// ErrorMsg is the payload broadcast when a watch-triggered render fails;
// clients surface Err without tearing down the connection.
type ErrorMsg struct {
	Source string `json:"source"`
	Err    string `json:"err"`
}

const (
	SubjRendered = "rendered"
	SubjError    = "render_error"
)

func (s *Server) NotifyRendered(source, out string) {
	s.mu.Lock()
	s.latest[source] = SourceStatus{Source: source, Out: out}
	s.mu.Unlock()
	s.Broadcast(SubjRendered, &RenderedMsg{Source: source, Out: out})
}

func (s *Server) NotifyError(source string, err error) {
	s.mu.Lock()
	s.latest[source] = SourceStatus{Source: source, Err: err.Error()}
	s.mu.Unlock()
	s.Broadcast(SubjError, &ErrorMsg{Source: source, Err: err.Error()})
}
