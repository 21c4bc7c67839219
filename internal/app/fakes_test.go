package app

import (
	"context"
	"errors"
	"sync"

	"mentorpath/internal/model"
	"mentorpath/internal/payments"
)

type memorySessionStore struct {
	mu         sync.Mutex
	sessions   map[string]model.BookedSession
	failList   bool
	failUpsert bool
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]model.BookedSession)}
}

func (m *memorySessionStore) Upsert(_ context.Context, session *model.BookedSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpsert {
		return errors.New("store unavailable")
	}
	m.sessions[session.ID] = *session
	return nil
}

func (m *memorySessionStore) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[id]
	return ok, nil
}

func (m *memorySessionStore) Get(_ context.Context, userID uint, id string) (*model.BookedSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok || session.UserID != userID {
		return nil, nil
	}
	return &session, nil
}

func (m *memorySessionStore) Delete(_ context.Context, userID uint, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok || session.UserID != userID {
		return false, nil
	}
	delete(m.sessions, id)
	return true, nil
}

func (m *memorySessionStore) ListByUser(_ context.Context, userID uint) ([]model.BookedSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList {
		return nil, errors.New("store unavailable")
	}
	var out []model.BookedSession
	for _, session := range m.sessions {
		if session.UserID == userID {
			out = append(out, session)
		}
	}
	return out, nil
}

func (m *memorySessionStore) ListMissingMeetingLink(_ context.Context, _ int) ([]model.BookedSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.BookedSession
	for _, session := range m.sessions {
		if session.MeetingLink == "" {
			out = append(out, session)
		}
	}
	return out, nil
}

type askCall struct {
	instruction string
	metadata    payments.Metadata
}

// scriptedGateway answers each request type from a queue of replies.
type scriptedGateway struct {
	mu      sync.Mutex
	replies map[payments.RequestType][]string
	errs    map[payments.RequestType]error
	calls   []askCall
}

func newScriptedGateway() *scriptedGateway {
	return &scriptedGateway{
		replies: make(map[payments.RequestType][]string),
		errs:    make(map[payments.RequestType]error),
	}
}

func (g *scriptedGateway) on(requestType payments.RequestType, replies ...string) *scriptedGateway {
	g.replies[requestType] = append(g.replies[requestType], replies...)
	return g
}

func (g *scriptedGateway) Ask(_ context.Context, instruction string, metadata payments.Metadata, onUpdate func(*payments.Response)) (*payments.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, askCall{instruction: instruction, metadata: metadata})

	requestType := payments.RequestType(metadata["requestType"].(string))
	if err := g.errs[requestType]; err != nil {
		return nil, err
	}
	queue := g.replies[requestType]
	if len(queue) == 0 {
		return &payments.Response{}, nil
	}
	reply := queue[0]
	if len(queue) > 1 {
		g.replies[requestType] = queue[1:]
	}
	if onUpdate != nil {
		onUpdate(&payments.Response{Plain: "working on it"})
	}
	return &payments.Response{Plain: reply}, nil
}

func (g *scriptedGateway) callsOf(requestType payments.RequestType) []askCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []askCall
	for _, call := range g.calls {
		if call.metadata["requestType"] == string(requestType) {
			out = append(out, call)
		}
	}
	return out
}

type fixedGateways struct {
	gateway      payments.Gateway
	disconnected []uint
}

func (f *fixedGateways) Connect(context.Context, uint, payments.Credentials) error { return nil }

func (f *fixedGateways) Disconnect(userID uint) {
	f.disconnected = append(f.disconnected, userID)
}

func (f *fixedGateways) Get(uint) (payments.Gateway, error) {
	if f.gateway == nil {
		return nil, payments.ErrNotConnected
	}
	return f.gateway, nil
}
