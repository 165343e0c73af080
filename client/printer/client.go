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

package printer

import (
	"context"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	// WebsocketPath is where printers serve their control websocket
	WebsocketPath = "/websocket"

	// DefaultWriteWait is the time allowed to write a message to the printer
	DefaultWriteWait = 10 * time.Second

	sendQueueSize = 32

	readBufferSize  = 4096
	writeBufferSize = 1024
)

var (
	ErrConnClosed     = errors.New("printer: connection closed")
	ErrSendQueueFull  = errors.New("printer: send queue full")
	ErrMissingAddress = errors.New("printer: missing address")
)

// Dialer opens websocket connections to printers
//
//go:generate ../../utils/mockgen.sh
type Dialer interface {
	Dial(ctx context.Context, address string) (Conn, error)
}

// Conn is an open connection to a printer. Send and Close may be called
// from any goroutine; Serve must be called exactly once.
//
//go:generate ../../utils/mockgen.sh
type Conn interface {
	// Send queues a text frame for writing
	Send(data []byte) error
	// IsOpen reports whether the connection can still be written to
	IsOpen() bool
	// Serve reads frames until the connection is closed and returns the
	// error that ended it.
	Serve(onMessage func(data []byte)) error
	Close() error
}

// URL returns the websocket URL of the printer at address
func URL(address string) string {
	u := url.URL{
		Scheme: "ws",
		Host:   address,
		Path:   WebsocketPath,
	}
	return u.String()
}

// IsCloseError reports whether err is the result of the printer closing the
// connection, as opposed to a transport failure.
func IsCloseError(err error) bool {
	_, ok := errors.Cause(err).(*websocket.CloseError)
	return ok
}

type dialer struct {
	ws        *websocket.Dialer
	writeWait time.Duration
}

// NewDialer returns a Dialer using writeWait as the write deadline of every
// frame; zero selects DefaultWriteWait.
func NewDialer(writeWait time.Duration) Dialer {
	if writeWait <= 0 {
		writeWait = DefaultWriteWait
	}
	return &dialer{
		ws: &websocket.Dialer{
			Proxy:           nil,
			ReadBufferSize:  readBufferSize,
			WriteBufferSize: writeBufferSize,
		},
		writeWait: writeWait,
	}
}

// Dial connects to the printer at address. The attempt is abandoned when
// ctx is cancelled.
func (d *dialer) Dial(ctx context.Context, address string) (Conn, error) {
	if address == "" {
		return nil, ErrMissingAddress
	}
	ws, rsp, err := d.ws.DialContext(ctx, URL(address), nil)
	if rsp != nil && rsp.Body != nil {
		rsp.Body.Close()
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to printer at %s", address)
	}
	c := &conn{
		ws:        ws,
		send:      make(chan []byte, sendQueueSize),
		done:      make(chan struct{}),
		writeWait: d.writeWait,
	}
	go c.writer()
	return c, nil
}

type conn struct {
	ws        *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closed    int32
	closeOnce sync.Once
	writeWait time.Duration
}

func (c *conn) IsOpen() bool {
	return atomic.LoadInt32(&c.closed) == 0
}

func (c *conn) Send(data []byte) error {
	if !c.IsOpen() {
		return ErrConnClosed
	}
	select {
	case <-c.done:
		return ErrConnClosed
	case c.send <- data:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// writer is the only goroutine writing data frames to the websocket
func (c *conn) writer() {
	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			err := c.ws.SetWriteDeadline(time.Now().Add(c.writeWait))
			if err == nil {
				err = c.ws.WriteMessage(websocket.TextMessage, data)
			}
			if err != nil {
				// unblocks the reader, which reports the failure
				c.shutdown()
				return
			}
		}
	}
}

func (c *conn) Serve(onMessage func(data []byte)) error {
	defer c.shutdown()
	for {
		msgType, data, err := c.ws.ReadMessage()
		if err != nil {
			return err
		}
		if msgType != websocket.TextMessage {
			continue
		}
		onMessage(data)
	}
}

// Close sends a close frame (best effort) and closes the connection
func (c *conn) Close() error {
	if c.IsOpen() {
		//nolint:errcheck
		c.ws.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(c.writeWait),
		)
	}
	return c.shutdown()
}

func (c *conn) shutdown() (err error) {
	c.closeOnce.Do(func() {
		atomic.StoreInt32(&c.closed, 1)
		close(c.done)
		err = c.ws.Close()
	})
	return err
}
