package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/adforge-dev/adforge-admin/internal/taxonomy"
)

// RemoteStore talks to the external storage daemon over its line protocol:
// one command per line, responses framed as "OK [json]" or "ERR message".
//
//	LIST <kind>
//	INSERT <kind> <json>
//	UPDATE <kind> <id> <json>
//	DELETE <kind> <id>
type RemoteStore struct {
	addr   string
	conn   net.Conn
	reader *bufio.Reader
	mu     sync.Mutex // one in-flight command per connection
}

// ConnectRemote dials the storage daemon.
func ConnectRemote(addr string) (*RemoteStore, error) {
	s := &RemoteStore{addr: addr}
	if err := s.reconnect(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *RemoteStore) reconnect() error {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	dialer := &net.Dialer{Timeout: 10 * time.Second, KeepAlive: 60 * time.Second}
	conn, err := dialer.Dial("tcp", s.addr)
	if err != nil {
		return err
	}
	s.conn = conn
	s.reader = bufio.NewReader(conn)
	return nil
}

func (s *RemoteStore) sendAndReceive(ctx context.Context, cmd string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := time.Now().Add(30 * time.Second)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}

	var err error
	for attempt := 0; attempt < 3; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if s.conn == nil {
			if reconnectErr := s.reconnect(); reconnectErr != nil {
				err = fmt.Errorf("reconnect failed: %w", reconnectErr)
				time.Sleep(time.Duration(attempt*100) * time.Millisecond)
				continue
			}
		}
		s.conn.SetDeadline(deadline)

		if _, err = fmt.Fprint(s.conn, cmd+"\n"); err == nil {
			var resp string
			if resp, err = s.reader.ReadString('\n'); err == nil {
				resp = strings.TrimSpace(resp)
				if strings.HasPrefix(resp, "ERR") {
					msg := strings.TrimPrefix(resp, "ERR ")
					if msg == ErrNotFound.Error() {
						return "", ErrNotFound
					}
					return "", fmt.Errorf("%s", msg)
				}
				return resp, nil
			}
		}

		// Transport error: force a fresh connection before retrying.
		if reconnectErr := s.reconnect(); reconnectErr != nil {
			err = fmt.Errorf("reconnect failed: %w", reconnectErr)
		}
		time.Sleep(time.Duration((attempt+1)*200) * time.Millisecond)
	}
	return "", fmt.Errorf("storage daemon unreachable after 3 attempts: %w", err)
}

func (s *RemoteStore) List(ctx context.Context, kind taxonomy.Kind) ([]json.RawMessage, error) {
	resp, err := s.sendAndReceive(ctx, fmt.Sprintf("LIST %s", kind))
	if err != nil {
		return nil, err
	}
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimPrefix(resp, "OK ")), &records); err != nil {
		return nil, fmt.Errorf("malformed LIST response: %w", err)
	}
	return records, nil
}

func (s *RemoteStore) Insert(ctx context.Context, kind taxonomy.Kind, doc json.RawMessage) (json.RawMessage, error) {
	compact, err := compactDoc(doc)
	if err != nil {
		return nil, err
	}
	resp, err := s.sendAndReceive(ctx, fmt.Sprintf("INSERT %s %s", kind, compact))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(strings.TrimPrefix(resp, "OK ")), nil
}

func (s *RemoteStore) Update(ctx context.Context, kind taxonomy.Kind, id string, doc json.RawMessage) (json.RawMessage, error) {
	compact, err := compactDoc(doc)
	if err != nil {
		return nil, err
	}
	resp, err := s.sendAndReceive(ctx, fmt.Sprintf("UPDATE %s %s %s", kind, id, compact))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(strings.TrimPrefix(resp, "OK ")), nil
}

func (s *RemoteStore) Delete(ctx context.Context, kind taxonomy.Kind, id string) error {
	_, err := s.sendAndReceive(ctx, fmt.Sprintf("DELETE %s %s", kind, id))
	return err
}

func (s *RemoteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	fmt.Fprintln(s.conn, "QUIT")
	return s.conn.Close()
}

// compactDoc re-encodes doc without insignificant whitespace so the document
// always fits on one protocol line.
func compactDoc(doc json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return "", err
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
