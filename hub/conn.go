package hub

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"sourcelike.dev/typegen/log"
)

// lastID holds the last id handed out by NextID. Only touch it through
// the atomic package.
var lastID = new(int64)

// NextID returns a new unused connection id, used by transports (wshub's
// websocket upgrade handler, in particular) that accept many normal
// connections and need each to be distinguishable.
func NextID() int64 { return int64(atomic.AddInt64(lastID, 1)) }

// Conn abstracts a connected participant: an id, a user label, a context
// that cancels when the connection goes away, and a channel the hub can
// push messages onto. It represents one-off request/response calls,
// long-lived websocket clients, and the hub itself (id 0) uniformly.
type Conn interface {
	// Ctx returns the connection's context.
	Ctx() context.Context
	// ID is an internal identifier; the hub has id 0, transient
	// connections have a negative id, and normal connections positive ids.
	ID() int64
	// User is an external user or client label, used only for logging.
	User() string
	// Chan returns an unchanging receiver channel. The hub sends a nil
	// message to this channel once a signoff from this conn is processed.
	Chan() chan<- *Msg
}

// ChanConn is a channel-backed Conn for in-process hub participants that
// don't need a real transport, such as the status service's test doubles
// and one-off Req calls.
type ChanConn struct {
	ctx  context.Context
	id   int64
	user string
	ch   chan *Msg
}

// NewChanConn returns a channel connection with the given id and channel.
func NewChanConn(ctx context.Context, id int64, user string, c chan *Msg) *ChanConn {
	return &ChanConn{ctx, id, user, c}
}

func (c *ChanConn) Ctx() context.Context { return c.ctx }
func (c *ChanConn) ID() int64            { return c.id }
func (c *ChanConn) User() string         { return c.user }
func (c *ChanConn) Chan() chan<- *Msg    { return c.ch }

// Req sends req to hub from a fresh transient connection and returns the
// first response, or an error once timeout elapses without one.
func Req(hub chan<- *Msg, user string, req *Msg, timeout time.Duration) (*Msg, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ch := make(chan *Msg, 1)
	req.From = NewChanConn(ctx, -1, user, ch)
	hub <- req
	select {
	case res := <-ch:
		if res == nil {
			return nil, fmt.Errorf("conn closed")
		}
		return res, nil
	case <-ctx.Done():
	}
	log.Debug("request timeout", "subj", req.Subj, "tok", req.Tok, "user", user)
	return nil, fmt.Errorf("timeout request %s#%s: %v", req.Subj, req.Tok, ctx.Err())
}

// Send sends a message to a connection that might have signed off and returns the success.
func Send(c Conn, m *Msg) bool {
	if c != nil {
		select {
		case c.Chan() <- m:
			return true
		default:
		}
	}
	return false
}
