// Package view is the external boundary of the board: a websocket adapter
// that pushes the derived streams to clients and injects client commands as
// actions. It owns no state; everything it sends is read from the board.
package view

import (
	"log/slog"
	"net/http"

	"fx_orders/internal/board"
	"fx_orders/internal/infra"

	"github.com/gorilla/websocket"
)

// Server serves the live board over websocket
type Server struct {
	board    *board.Board
	logger   *slog.Logger
	metrics  *infra.Metrics
	upgrader websocket.Upgrader
}

// NewServer creates a view server for the given board. metrics may be nil.
func NewServer(b *board.Board, logger *slog.Logger, metrics *infra.Metrics) *Server {
	return &Server{
		board:   b,
		logger:  logger,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler returns the HTTP handler: an index page and the /ws endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexPage))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	if s.metrics != nil {
		s.metrics.ClientConnected()
	}
	s.logger.Info("view client connected", slog.String("remote", conn.RemoteAddr().String()))

	c := newClient(conn, s.board, s.logger)
	c.attach()
	c.readCommands()
	c.detach()

	if s.metrics != nil {
		s.metrics.ClientDisconnected()
	}
	s.logger.Info("view client disconnected", slog.String("remote", conn.RemoteAddr().String()))
}

const indexPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>fx orders</title></head>
<body>
<h1>fx orders</h1>
<button onclick="send({op:'add_order'})">Add order</button>
<pre id="log"></pre>
<script>
const ws = new WebSocket('ws://' + location.host + '/ws');
const log = document.getElementById('log');
ws.onmessage = function (ev) { log.textContent = ev.data + '\n' + log.textContent; };
function send(cmd) { ws.send(JSON.stringify(cmd)); }
</script>
</body>
</html>
`
