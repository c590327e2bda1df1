package devserver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sourcelike.dev/typegen/hub"
)

func TestBroadcasterTracksSignonAndSignoff(t *testing.T) {
	b := NewBroadcaster()
	ch := make(chan *hub.Msg, 4)
	c := hub.NewChanConn(context.Background(), 1, "dev", ch)

	b.Route(&hub.Msg{From: c, Subj: hub.Signon})
	b.Broadcast(SubjRendered, &RenderedMsg{Source: "pokemon", Out: "pokemon.rb"})

	select {
	case m := <-ch:
		require.Equal(t, SubjRendered, m.Subj)
		rendered, ok := m.Data.(*RenderedMsg)
		require.True(t, ok)
		require.Equal(t, "pokemon", rendered.Source)
	default:
		t.Fatal("expected a broadcast message after signon")
	}

	b.Route(&hub.Msg{From: c, Subj: hub.Signoff})
	b.Broadcast(SubjRendered, &RenderedMsg{Source: "pokemon", Out: "pokemon.rb"})
	select {
	case <-ch:
		t.Fatal("signed-off connection should not receive broadcasts")
	default:
	}
}

func TestStatusServiceReportsLatestRenders(t *testing.T) {
	s := NewServer(nil)
	s.NotifyRendered("pokemon", "pokemon.rb")
	s.NotifyError("trainer", errors.New("missing required property id"))

	ch := make(chan *hub.Msg, 4)
	c := hub.NewChanConn(context.Background(), 3, "dev", ch)
	s.Route(&hub.Msg{From: c, Subj: hub.Signon})
	s.Route(&hub.Msg{From: c, Subj: "status", Tok: "1"})

	var reply *hub.Msg
	select {
	case reply = <-ch:
	default:
		t.Fatal("expected a reply to the status request")
	}
	require.Equal(t, "1", reply.Tok)
	var body struct {
		Res []SourceStatus `json:"res"`
	}
	require.NoError(t, reply.Unmarshal(&body))
	require.Len(t, body.Res, 2)
}

func TestBroadcastDropsOnFullChannel(t *testing.T) {
	b := NewBroadcaster()
	ch := make(chan *hub.Msg) // unbuffered, nothing ever reads
	c := hub.NewChanConn(context.Background(), 2, "dev", ch)
	b.Route(&hub.Msg{From: c, Subj: hub.Signon})

	done := make(chan struct{})
	go func() {
		b.Broadcast(SubjRendered, &RenderedMsg{Source: "x"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a full client channel instead of dropping")
	}
}
