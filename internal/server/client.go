package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/engine"
	"github.com/Zanice/2D-Game-Framework/pkg/api"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между WebSocket и прогоном.
// Вниз уходят снимки в msgpack (бинарные фреймы), вверх приходят команды в JSON.
type Client struct {
	Instance *engine.Instance
	Conn     *websocket.Conn
	Session  uuid.UUID

	frames <-chan api.Snapshot
	log    *logrus.Entry
}

func NewClient(inst *engine.Instance, conn *websocket.Conn) *Client {
	session, frames := inst.Hub.Subscribe()
	return &Client{
		Instance: inst,
		Conn:     conn,
		Session:  session,
		frames:   frames,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "ws_client",
			"session":   session,
		}),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Instance.Hub.Unsubscribe(c.Session)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	c.log.Info("Client connected")

	for {
		var cc api.ClientCommand
		if err := c.Conn.ReadJSON(&cc); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS read error")
			}
			break
		}

		cmd, err := ToCommand(cc)
		if err != nil {
			c.log.WithError(err).WithField("action", cc.Action).Warn("Bad client command")
			continue
		}
		if err := c.Instance.Submit(cmd); err != nil {
			c.log.WithError(err).Warn("Command dropped")
		}
	}
}

// writePump отправляет снимки клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case snap, ok := <-c.frames:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				// Прогон завершен или сессия снята
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			data, err := msgpack.Marshal(snap)
			if err != nil {
				c.log.WithError(err).Error("encode snapshot failed")
				continue
			}
			if err := c.Conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				c.log.WithError(err).Debug("write snapshot failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}

// ToCommand переводит JSON-команду клиента во внутреннюю.
// Payload перекодируется из JSON в msgpack: теги DTO совпадают.
// Tick = 0 значит "на ближайшем тике".
func ToCommand(cc api.ClientCommand) (domain.Command, error) {
	action := domain.ParseAction(cc.Action)
	if action == domain.ActionUnknown {
		return domain.Command{}, domain.Rejectedf("unknown action %q", cc.Action)
	}

	cmd := domain.Command{Actor: domain.EntityID(cc.Actor), Action: action}
	raw := bytes.TrimSpace(cc.Payload)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return cmd, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Command{}, &domain.Error{Code: domain.CodeRejected, Message: "payload must be a JSON object", Cause: err}
	}
	packed, err := msgpack.Marshal(payload)
	if err != nil {
		return domain.Command{}, &domain.Error{Code: domain.CodeRejected, Message: "encode payload", Cause: err}
	}
	cmd.Payload = packed
	return cmd, nil
}
