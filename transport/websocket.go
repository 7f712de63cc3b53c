package transport

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// DialWebSocket connects to a remote analysis service over a WebSocket
// and returns a client speaking the same framed JSON-RPC as the stdio
// connection.
func DialWebSocket(ctx context.Context, url string, logger *zap.SugaredLogger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	if logger != nil {
		logger.Infow("analysis service connected", "url", url)
	}

	s := &wsStream{conn: conn}
	return NewClient(s, s, s, logger), nil
}

// wsStream presents a websocket connection as a byte stream. Reads drain
// successive messages; each Write becomes one binary message.
type wsStream struct {
	conn   *websocket.Conn
	reader io.Reader

	writeMu sync.Mutex
}

func (s *wsStream) Read(p []byte) (int, error) {
	for {
		if s.reader == nil {
			_, r, err := s.conn.NextReader()
			if err != nil {
				return 0, err
			}
			s.reader = r
		}
		n, err := s.reader.Read(p)
		if err == io.EOF {
			s.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (s *wsStream) Write(p []byte) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *wsStream) Close() error {
	return s.conn.Close()
}
