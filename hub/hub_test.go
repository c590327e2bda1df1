package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sourcelike.dev/typegen/log"
)

func TestHubRunTracksSignonAndSignoffAndLogs(t *testing.T) {
	lg := &log.Test{TB: t}
	h := NewHub()
	h.Log = lg

	var seen []*Msg
	go h.Run(RouterFunc(func(m *Msg) { seen = append(seen, m) }))

	ch := make(chan *Msg, 1)
	c := NewChanConn(context.Background(), NextID(), "alice", ch)

	h.Chan() <- &Msg{From: c, Subj: Signon}
	h.Chan() <- &Msg{From: c, Subj: Signoff}

	select {
	case m := <-ch:
		require.Nil(t, m, "signoff closes the conn's channel with a nil message")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for signoff close")
	}

	h.Chan() <- nil
	require.Eventually(t, func() bool { return len(seen) == 2 }, time.Second, time.Millisecond)
}

func TestMsgIsControl(t *testing.T) {
	require.True(t, (&Msg{Subj: Signon}).IsControl())
	require.True(t, (&Msg{Subj: Signoff}).IsControl())
	require.False(t, (&Msg{Subj: "rendered"}).IsControl())
}

type echoService struct{}

func (echoService) Serve(m *Msg) (*Msg, error) { return m.ReplyRes("ok"), nil }

func TestServicesHandleSkipsControlAndUnregisteredSubjects(t *testing.T) {
	svcs := Services{"ping": echoService{}}

	ch := make(chan *Msg, 1)
	c := NewChanConn(context.Background(), -1, "bob", ch)

	require.False(t, svcs.Handle(&Msg{From: c, Subj: Signon}))
	require.False(t, svcs.Handle(&Msg{From: c, Subj: "nope"}))
	require.True(t, svcs.Handle(&Msg{From: c, Subj: "ping", Tok: "1"}))

	select {
	case res := <-ch:
		require.Equal(t, "ping", res.Subj)
	default:
		t.Fatal("expected a reply on the conn's channel")
	}
}
