package chatlog

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Стаб-драйвер только для чтения: запоминает запросы и отдает заготовленные строки

var (
	stubRegisterOnce sync.Once
	stubStates       sync.Map // dsn -> *queryStub
)

var messageColumns = []string{"id", "session_id", "user_id", "role", "content", "created_at"}

type queryStub struct {
	mu      sync.Mutex
	queries []string
	args    [][]driver.NamedValue
	rows    [][]driver.Value
}

func (s *queryStub) lastQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queries) == 0 {
		return ""
	}
	return s.queries[len(s.queries)-1]
}

func (s *queryStub) lastArgs() []driver.NamedValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.args) == 0 {
		return nil
	}
	return s.args[len(s.args)-1]
}

type queryDriver struct{}

func (queryDriver) Open(dsn string) (driver.Conn, error) {
	stub, ok := stubStates.Load(dsn)
	if !ok {
		return nil, fmt.Errorf("unknown stub dsn %q", dsn)
	}
	return &queryConn{stub: stub.(*queryStub)}, nil
}

type queryConn struct {
	stub *queryStub
}

func (c *queryConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("stub: prepare not supported")
}

func (c *queryConn) Close() error { return nil }

func (c *queryConn) Begin() (driver.Tx, error) {
	return nil, errors.New("stub: transactions not supported")
}

func (c *queryConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.stub.mu.Lock()
	c.stub.queries = append(c.stub.queries, query)
	c.stub.args = append(c.stub.args, args)
	rows := c.stub.rows
	c.stub.mu.Unlock()
	return &stubRows{data: rows}, nil
}

type stubRows struct {
	data [][]driver.Value
	idx  int
}

func (r *stubRows) Columns() []string { return messageColumns }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.idx])
	r.idx++
	return nil
}

func newStubRepository(t *testing.T, stub *queryStub) *Repository {
	t.Helper()
	stubRegisterOnce.Do(func() {
		sql.Register("chatlog-stub", queryDriver{})
	})
	dsn := t.Name()
	stubStates.Store(dsn, stub)
	db, err := sql.Open("chatlog-stub", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db)
}

func messageRow(id, sessionID, userID uuid.UUID, role, content string, createdAt time.Time) []driver.Value {
	return []driver.Value{id.String(), sessionID.String(), userID.String(), role, content, createdAt}
}

func TestGetRecentBySession_OrdersSameTimestampPairBySeq(t *testing.T) {
	sessionID := uuid.New()
	userID := uuid.New()
	// Пара user/assistant записана в одну микросекунду; БД отдает DESC по (created_at, seq)
	ts := time.Date(2024, 3, 18, 12, 0, 0, 0, time.UTC)
	stub := &queryStub{rows: [][]driver.Value{
		messageRow(uuid.New(), sessionID, userID, RoleAssistant, "Hi! How can I help?", ts),
		messageRow(uuid.New(), sessionID, userID, RoleUser, "hello", ts),
	}}
	repo := newStubRepository(t, stub)

	messages, err := repo.GetRecentBySession(context.Background(), sessionID, 10)

	require.NoError(t, err)
	assert.Contains(t, stub.lastQuery(), "ORDER BY created_at DESC, seq DESC")
	require.Len(t, messages, 2)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, RoleAssistant, messages[1].Role)
}

func TestGetBySessionAndUser_FiltersByOwner(t *testing.T) {
	sessionID := uuid.New()
	userID := uuid.New()
	stub := &queryStub{}
	repo := newStubRepository(t, stub)

	messages, err := repo.GetBySessionAndUser(context.Background(), sessionID, userID, 10)

	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.Contains(t, stub.lastQuery(), "user_id")
	assert.Contains(t, stub.lastQuery(), "ORDER BY created_at DESC, seq DESC")

	values := make([]driver.Value, 0, len(stub.lastArgs()))
	for _, arg := range stub.lastArgs() {
		values = append(values, arg.Value)
	}
	assert.Contains(t, values, driver.Value(userID.String()))
	assert.Contains(t, values, driver.Value(sessionID.String()))
}
