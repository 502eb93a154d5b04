package view

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fx_orders/internal/board"
	"fx_orders/internal/domain"
	"fx_orders/internal/stream"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

// frame is one outbound message. Type is one of "currencies", "order_ids",
// "order", "total", "error"; the matching payload field is set.
type frame struct {
	Type  string            `json:"type"`
	Codes []domain.Currency `json:"codes,omitempty"`
	IDs   []domain.OrderID  `json:"ids,omitempty"`
	Order *domain.OrderView `json:"order,omitempty"`
	Total *decimal.Decimal  `json:"total,omitempty"`
	Error string            `json:"error,omitempty"`
}

// command is one inbound message
type command struct {
	Op       string  `json:"op"` // add_order, update_price, update_currency, rate_change
	ID       string  `json:"id,omitempty"`
	Currency string  `json:"currency,omitempty"`
	Value    float64 `json:"value,omitempty"`
}

// client fans the board's streams out to one websocket connection. Stream
// callbacks run on the dispatch path, the read loop runs on its own
// goroutine; writeMu keeps their frames from interleaving on the wire.
type client struct {
	conn    *websocket.Conn
	board   *board.Board
	logger  *slog.Logger
	writeMu sync.Mutex

	views   map[domain.OrderID]*stream.Derived[domain.OrderView]
	cancels []func()
}

func newClient(conn *websocket.Conn, b *board.Board, logger *slog.Logger) *client {
	return &client{
		conn:   conn,
		board:  b,
		logger: logger,
		views:  make(map[domain.OrderID]*stream.Derived[domain.OrderView]),
	}
}

// attach subscribes to every stream the client renders. Done under Sync so
// no dispatch lands between the individual replays; the client starts from
// one consistent snapshot.
func (c *client) attach() {
	c.board.Sync(func() {
		c.cancels = append(c.cancels,
			c.board.CurrencyCodes().Subscribe(func(codes []domain.Currency) {
				c.send(frame{Type: "currencies", Codes: codes})
			}),
			c.board.OrderIDs().Subscribe(func(ids []domain.OrderID) {
				c.ensureViews(ids)
				c.send(frame{Type: "order_ids", IDs: ids})
			}),
			c.board.Total().Subscribe(func(total decimal.Decimal) {
				c.send(frame{Type: "total", Total: &total})
			}),
		)
	})
}

// ensureViews opens a per-order view derivation for every id not yet
// tracked. Ids are never removed from the book, so views only accumulate
// for the lifetime of the connection.
func (c *client) ensureViews(ids []domain.OrderID) {
	for _, id := range ids {
		if _, ok := c.views[id]; ok {
			continue
		}
		v := c.board.OrderView(id)
		c.views[id] = v
		c.cancels = append(c.cancels, v.Subscribe(func(view domain.OrderView) {
			if view.Missing() {
				return
			}
			c.send(frame{Type: "order", Order: &view})
		}))
	}
}

// detach releases every stream subscription and per-order join. Done under
// Sync because ensureViews mutates views and cancels on the dispatch path;
// without it a dispatch racing the disconnect could write into a map this
// teardown has already nilled.
func (c *client) detach() {
	c.board.Sync(func() {
		for _, cancel := range c.cancels {
			cancel()
		}
		c.cancels = nil
		for _, v := range c.views {
			v.Close()
		}
		c.views = nil
	})
	c.conn.Close()
}

// readCommands pumps inbound commands into the board until the connection
// drops
func (c *client) readCommands() {
	for {
		var cmd command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("view client read failed", slog.Any("error", err))
			}
			return
		}
		if err := c.apply(cmd); err != nil {
			c.send(frame{Type: "error", Error: err.Error()})
		}
	}
}

// apply translates one command into a board input
func (c *client) apply(cmd command) error {
	switch cmd.Op {
	case "add_order":
		c.board.AddOrder()
	case "update_price":
		c.board.UpdatePrice(domain.OrderID(cmd.ID), decimal.NewFromFloat(cmd.Value))
	case "update_currency":
		currency := domain.Currency(cmd.Currency)
		if _, ok := c.board.Rates().Get()[currency]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, currency)
		}
		c.board.UpdateCurrency(domain.OrderID(cmd.ID), currency)
	case "rate_change":
		c.board.RateChange(domain.Currency(cmd.Currency), decimal.NewFromFloat(cmd.Value))
	default:
		return fmt.Errorf("unknown op: %q", cmd.Op)
	}
	return nil
}

// writeTimeout bounds each frame write so one stalled connection cannot
// hold up the dispatch path for every other client.
const writeTimeout = 5 * time.Second

// send writes one frame; write errors only log, the read loop notices the
// dead connection and tears the client down.
func (c *client) send(f frame) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteJSON(f); err != nil {
		c.logger.Debug("view frame dropped", slog.String("type", f.Type), slog.Any("error", err))
	}
}
