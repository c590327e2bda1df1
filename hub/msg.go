package hub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Msg is the unit passed between connections: a signon/signoff control
// message, a render notification broadcast to every live client, or a
// request/response pair exchanged with a service. The body is either raw
// bytes or typed data; typed data is encoded to JSON lazily, only once
// something actually needs the wire form.
type Msg struct {
	// From is the origin connection of this message, nil for internal ones.
	From Conn
	// Subj is the required header used for routing and payload typing.
	// The watch dev server uses "rendered" and "render_error"; signon and
	// signoff bookkeeping use the Signon/Signoff constants.
	Subj string
	// Tok is a client token echoed back in replies, so a requester can
	// match a response to the request that caused it.
	Tok string
	// Raw is the message body as bytes, usually JSON.
	Raw []byte
	// Data is the typed body, set to skip serializing purely in-process
	// messages that never cross a transport boundary.
	Data interface{}
}

// IsControl reports whether m is hub-internal signon/signoff bookkeeping
// rather than application traffic a Service or Router.Route should act on.
func (m *Msg) IsControl() bool { return m.Subj == Signon || m.Subj == Signoff }

// Parse parses str and returns a message or an error.
func Parse(str string) (*Msg, error) { return Read([]byte(str)) }

// Read parses input bytes and returns a message or an error.
// The byte slice is then owned by the message and cannot be reused.
func Read(input []byte) (*Msg, error) {
	var subj, tok, raw []byte
	subj = input
	idx := bytes.IndexByte(subj, '\n')
	if idx >= 0 {
		subj, raw = subj[:idx], append(raw, subj[idx+1:]...)
	}
	idx = bytes.IndexByte(subj, '#')
	if idx >= 0 {
		subj, tok = subj[:idx], subj[idx+1:]
	}
	if len(subj) == 0 {
		return nil, fmt.Errorf("message without subject")
	}
	return &Msg{Subj: string(subj), Tok: string(tok), Raw: raw}, nil
}

// String returns the default string format of this message.
func (m *Msg) String() string {
	r := m.Raw
	if len(r) == 0 && m.Data != nil {
		r, _ = json.Marshal(m.Data)
	}
	return fmt.Sprintf("%s#%s\n%s", m.Subj, m.Tok, r)
}

func (m *Msg) Unmarshal(v interface{}) error {
	if m.Raw == nil {
		return fmt.Errorf("no data for msg %s", m.Subj)
	}
	err := json.Unmarshal(m.Raw, v)
	if err != nil {
		return err
	}
	m.Data = v
	return nil
}

func (m *Msg) Reply(data interface{}) *Msg {
	raw, err := json.Marshal(data)
	if err != nil {
		return m.ReplyErr(err)
	}
	return &Msg{Subj: m.Subj, Tok: m.Tok, Raw: raw}
}

func (m *Msg) ReplyRes(res interface{}) *Msg { return m.Reply(resData{Res: res}) }
func (m *Msg) ReplyErr(err error) *Msg       { return m.Reply(resData{Err: err}) }

type resData struct {
	Res interface{} `json:"res,omitempty"`
	Err error       `json:"err,omitempty"`
}

type TokMap struct {
	last int64
	m    map[int64]req
}

func (r *TokMap) Add(m *Msg) string {
	if r.m == nil {
		r.m = make(map[int64]req)
	}
	r.last++
	r.m[r.last] = req{m.From, m.Tok}
	return strconv.FormatInt(r.last, 16)
}

func (r *TokMap) Respond(m *Msg) error {
	if len(m.Tok) == 0 {
		return fmt.Errorf("empty response token %s", m.Subj)
	}
	id, err := strconv.ParseInt(m.Tok, 16, 64)
	if err != nil {
		return fmt.Errorf("invalid response token %s: %v", m.Tok, err)
	}
	req, ok := r.m[id]
	if !ok {
		return fmt.Errorf("no request with token %s", m.Tok)
	}
	n := *m
	n.Tok = req.tok
	req.Chan() <- &n
	delete(r.m, id)
	return nil
}

type req struct {
	Conn
	tok string
}
