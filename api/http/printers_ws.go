// Copyright 2026 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package http

import (
	"context"
	"encoding/binary"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/mendersoftware/go-lib-micro/rest.utils"
	"github.com/pkg/errors"

	"github.com/mendersoftware/printerconnect/model"
)

const (
	WebsocketReadBufferSize  = 1024
	WebsocketWriteBufferSize = 4096

	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
)

// PrintersSnapshot is the message pushed on the live stream every time a
// printer changes
type PrintersSnapshot struct {
	Printers  []model.LivePrinter `json:"printers"`
	Timestamp time.Time           `json:"ts"`
}

// Connect upgrades GET /printers/connect to a websocket streaming the
// printer snapshots
func (h PrintersController) Connect(c *gin.Context) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	l := log.FromContext(ctx)

	updates, err := h.app.Subscribe(ctx)
	if err != nil {
		renderAppError(c, err)
		return
	}

	// upgrade get request to websocket protocol
	upgrader := websocket.Upgrader{
		ReadBufferSize:  WebsocketReadBufferSize,
		WriteBufferSize: WebsocketWriteBufferSize,
		CheckOrigin:     h.checkOrigin,
		Error: func(
			w http.ResponseWriter, r *http.Request, s int, e error) {
			rest.RenderError(c, s, e)
		},
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		l.Error(errors.Wrap(err, "unable to upgrade the request to websocket protocol"))
		return
	}

	ticker, err := keepAlive(conn)
	if err != nil {
		l.Error(err)
		conn.Close()
		return
	}
	defer ticker.Stop()

	go func() {
		defer cancel()
		var err error
		// We need to keep reading in order to keep ping/pong handlers functioning.
		for ; err == nil; _, _, err = conn.NextReader() {
		}
	}()

	//nolint:errcheck
	websocketWriter(ctx, conn, ticker, updates)
}

// keepAlive installs the ping/pong handlers; the returned ticker fires
// when the next ping is due.
func keepAlive(conn *websocket.Conn) (*time.Ticker, error) {
	err := conn.SetReadDeadline(time.Now().Add(pongWait))
	if err != nil {
		return nil, err
	}

	pingPeriod := (pongWait * 9) / 10
	ticker := time.NewTicker(pingPeriod)
	conn.SetPongHandler(func(string) error {
		ticker.Reset(pingPeriod)
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	conn.SetPingHandler(func(msg string) error {
		ticker.Reset(pingPeriod)
		err := conn.SetReadDeadline(time.Now().Add(pongWait))
		if err != nil {
			return err
		}
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(msg),
			time.Now().Add(writeWait),
		)
	})
	return ticker, nil
}

func websocketPing(conn *websocket.Conn) bool {
	pongWaitString := strconv.Itoa(int(pongWait.Seconds()))
	if err := conn.WriteControl(
		websocket.PingMessage,
		[]byte(pongWaitString),
		time.Now().Add(writeWait),
	); err != nil {
		return false
	}
	return true
}

func writerFinalizer(conn *websocket.Conn, e *error, l *log.Logger) {
	err := *e
	code := websocket.CloseNormalClosure
	msg := ""
	if err != nil {
		code = websocket.CloseInternalServerErr
		msg = err.Error()
		l.Errorf("websocket closed with error: %s", err.Error())
	}
	errBody := make([]byte, len(msg)+2)
	binary.BigEndian.PutUint16(errBody, uint16(code))
	copy(errBody[2:], msg)
	//nolint:errcheck
	conn.WriteControl(
		websocket.CloseMessage,
		errBody,
		time.Now().Add(writeWait),
	)
	conn.Close()
}

// websocketWriter is the go-routine responsible for the writing end of the
// websocket. The routine forwards the printer snapshots and periodically
// pings the connection. The connection is closed when the peer goes away,
// times out or the manager stops.
func websocketWriter(
	ctx context.Context,
	conn *websocket.Conn,
	ticker *time.Ticker,
	updates <-chan []model.LivePrinter,
) (err error) {
	l := log.FromContext(ctx)
	defer writerFinalizer(conn, &err, l)

	for {
		select {
		case printers, ok := <-updates:
			if !ok {
				return nil
			}
			err = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err == nil {
				err = conn.WriteJSON(PrintersSnapshot{
					Printers:  printers,
					Timestamp: time.Now(),
				})
			}
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !websocketPing(conn) {
				return errors.New("connection timeout")
			}
		}
	}
}
