// Package hub provides a transport agnostic connection hub. It underlies
// the watch dev server's websocket broadcast: browsers and the tail
// command both sign on as Conn values the hub tracks by id, and a
// render result becomes one *Msg fanned out to whichever of them are
// still connected.
package hub

import (
	"regexp"
	"strings"

	"sourcelike.dev/typegen/log"
)

const (
	Signon  = "_signon"
	Signoff = "_signoff"
)

// Hub is the central message server that manages connections. Hub itself
// represents conn id 0. Connection creators are also responsible for
// sending the signon message and validating messages. One-off connections
// used for a simple request-response round trip can be used without
// signon and must use id -1; these can only be responded to directly and
// must not be stored.
type Hub struct {
	conns map[int64]Conn
	msgs  chan *Msg
	// Log receives a debug line for every signon and signoff, so a running
	// watch session shows who is following it without the caller wiring
	// that visibility itself.
	Log log.Logger
}

// NewHub creates and returns a new hub ready to accept connections.
func NewHub() *Hub {
	return &Hub{conns: make(map[int64]Conn, 64), msgs: make(chan *Msg, 128), Log: log.Root}
}

func (h *Hub) ID() int64         { return 0 }
func (h *Hub) Chan() chan<- *Msg { return h.msgs }
func (h *Hub) User() string      { return "hub" }

// Run routes received messages with r until its channel is closed or fed
// a nil message. It is meant to be started as its own goroutine; the
// devserver package runs one per watch session.
func (h *Hub) Run(r Router) {
	for m := range h.msgs {
		if m == nil {
			break
		}
		if m.Subj == Signon {
			h.conns[m.From.ID()] = m.From
			h.logf("signon", m)
		}
		r.Route(m)
		if m.Subj == Signoff {
			delete(h.conns, m.From.ID())
			h.logf("signoff", m)
			m.From.Chan() <- nil
		}
	}
}

func (h *Hub) logf(event string, m *Msg) {
	if h.Log == nil {
		return
	}
	h.Log.Debug(event, "conn", m.From.ID(), "user", m.From.User(), "conns", len(h.conns))
}

// Router routes a received message to connection.
type Router interface{ Route(*Msg) }

// Routers is a slice of routers, all of them are called with incoming messages.
type Routers []Router

func (rs Routers) Route(m *Msg) {
	for _, r := range rs {
		r.Route(m)
	}
}

// RouterFunc implements Router for simple route functions.
type RouterFunc func(*Msg)

func (r RouterFunc) Route(m *Msg) { r(m) }

// MatchFilter only routes messages, that match one of a list of subjects.
type MatchFilter struct {
	Router
	Match []string
}

func (f MatchFilter) Route(m *Msg) {
	for _, s := range f.Match {
		if m.Subj == s {
			f.Router.Route(m)
			return
		}
	}
}

// NewMatchFilter returns a new router that matches message subject and calls r.
func NewMatchFilter(r Router, match ...string) RouterFunc {
	return func(m *Msg) {
		for _, s := range match {
			if m.Subj == s {
				r.Route(m)
				return
			}
		}
	}
}

// NewPrefixFilter returns a new router that matches message subject prefixes and calls r.
func NewPrefixFilter(r Router, match ...string) RouterFunc {
	return func(m *Msg) {
		for _, s := range match {
			if strings.HasPrefix(m.Subj, s) {
				r.Route(m)
				return
			}
		}
	}
}

// NewRegexpFilter returns a new router that matches message subjects with regexp and calls r.
func NewRegexpFilter(r Router, pat *regexp.Regexp) RouterFunc {
	return func(m *Msg) {
		if pat.MatchString(m.Subj) {
			r.Route(m)
		}
	}
}
