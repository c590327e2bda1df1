package hub

import "sourcelike.dev/typegen/log"

// Service is the last message processor in a route, typically reached
// after a Router has already filtered out signon/signoff and anything
// else it handles itself. The devserver's "status" snapshot service is one.
type Service interface {
	// Serve handles the message and returns a response, nil, or an error.
	Serve(*Msg) (*Msg, error)
}

// Services maps a message subject to the service that answers it.
type Services map[string]Service

// Handle looks up m's subject and serves it, reporting whether a service
// existed for that subject at all. A service error becomes a reply
// carrying that error rather than a dropped message, and a subject with
// no registered service is logged rather than silently swallowed, so a
// client that sent a typo'd request can be diagnosed from server logs.
func (s Services) Handle(m *Msg) bool {
	if m.IsControl() {
		return false
	}
	f := s[m.Subj]
	if f == nil {
		log.Debug("unhandled service subject", "subj", m.Subj)
		return false
	}
	res, err := f.Serve(m)
	if err != nil {
		res = m.ReplyErr(err)
	}
	if res != nil {
		m.From.Chan() <- res
	}
	return true
}
