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

package app

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mendersoftware/printerconnect/client/printer"
	"github.com/mendersoftware/printerconnect/model"
	"github.com/mendersoftware/printerconnect/protocol"
)

const (
	waitFor = 5 * time.Second
	tick    = 5 * time.Millisecond
)

// fakeConn is an in-memory printer connection. Frames pushed with
// receive are delivered to Serve; disconnect ends Serve with an error.
type fakeConn struct {
	mutex     sync.Mutex
	sent      [][]byte
	open      int32
	frames    chan []byte
	closed    chan struct{}
	closeOnce sync.Once
	serveErr  error
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		open:   1,
		frames: make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) Send(data []byte) error {
	if !c.IsOpen() {
		return printer.ErrConnClosed
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.sent = append(c.sent, data)
	return nil
}

func (c *fakeConn) IsOpen() bool {
	return atomic.LoadInt32(&c.open) == 1
}

func (c *fakeConn) Serve(onMessage func(data []byte)) error {
	for {
		select {
		case frame := <-c.frames:
			onMessage(frame)
		case <-c.closed:
			c.mutex.Lock()
			defer c.mutex.Unlock()
			return c.serveErr
		}
	}
}

func (c *fakeConn) Close() error {
	c.disconnect(printer.ErrConnClosed)
	return nil
}

// disconnect ends Serve with err, as a dropped socket would
func (c *fakeConn) disconnect(err error) {
	c.closeOnce.Do(func() {
		c.mutex.Lock()
		c.serveErr = err
		c.mutex.Unlock()
		atomic.StoreInt32(&c.open, 0)
		close(c.closed)
	})
}

// markClosed flips the socket to closed without ending Serve
func (c *fakeConn) markClosed() {
	atomic.StoreInt32(&c.open, 0)
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *fakeConn) receive(t *testing.T, frame string) {
	select {
	case c.frames <- []byte(frame):
	case <-time.After(waitFor):
		require.FailNow(t, "timeout delivering frame")
	}
}

func (c *fakeConn) requests(t *testing.T) []protocol.Request {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	reqs := make([]protocol.Request, 0, len(c.sent))
	for _, b := range c.sent {
		var req protocol.Request
		require.NoError(t, json.Unmarshal(b, &req))
		reqs = append(reqs, req)
	}
	return reqs
}

func (c *fakeConn) commands(t *testing.T) []int {
	cmds := []int{}
	for _, req := range c.requests(t) {
		cmds = append(cmds, req.Data.Cmd)
	}
	return cmds
}

func (c *fakeConn) countCommand(t *testing.T, cmd int) int {
	n := 0
	for _, code := range c.commands(t) {
		if code == cmd {
			n++
		}
	}
	return n
}

// fakeDialer hands out connections produced by dial, recording every
// attempt.
type fakeDialer struct {
	mutex sync.Mutex
	dial  func(ctx context.Context, address string) (printer.Conn, error)
	conns []*fakeConn
	addrs []string
}

// newFakeDialer returns a dialer connecting instantly to a new fakeConn
func newFakeDialer() *fakeDialer {
	d := &fakeDialer{}
	d.dial = func(ctx context.Context, address string) (printer.Conn, error) {
		return d.track(newFakeConn()), nil
	}
	return d
}

func (d *fakeDialer) Dial(ctx context.Context, address string) (printer.Conn, error) {
	d.mutex.Lock()
	d.addrs = append(d.addrs, address)
	d.mutex.Unlock()
	return d.dial(ctx, address)
}

func (d *fakeDialer) track(c *fakeConn) *fakeConn {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.conns = append(d.conns, c)
	return c
}

func (d *fakeDialer) attempts() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return len(d.addrs)
}

func (d *fakeDialer) address(i int) string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.addrs[i]
}

func (d *fakeDialer) conn(t *testing.T, i int) *fakeConn {
	var c *fakeConn
	require.Eventually(t, func() bool {
		d.mutex.Lock()
		defer d.mutex.Unlock()
		if len(d.conns) > i {
			c = d.conns[i]
			return true
		}
		return false
	}, waitFor, tick)
	return c
}

func waitForState(t *testing.T, a App, id string, state model.ConnectionState) *model.LivePrinter {
	var p *model.LivePrinter
	ok := assert.Eventually(t, func() bool {
		var err error
		p, err = a.GetPrinter(context.Background(), id)
		return err == nil && p.ConnectionState == state
	}, waitFor, tick)
	if !ok {
		require.FailNowf(t, "unexpected state", "printer %s never reached %s", id, state)
	}
	return p
}

func waitForPrinter(t *testing.T, a App, id string, cond func(p *model.LivePrinter) bool) *model.LivePrinter {
	var p *model.LivePrinter
	ok := assert.Eventually(t, func() bool {
		var err error
		p, err = a.GetPrinter(context.Background(), id)
		return err == nil && cond(p)
	}, waitFor, tick)
	if !ok {
		require.FailNowf(t, "unexpected printer", "printer %s: %+v", id, p)
	}
	return p
}

func printerIDs(printers []model.LivePrinter) []string {
	ids := make([]string, 0, len(printers))
	for _, p := range printers {
		ids = append(ids, p.ID)
	}
	return ids
}

func recordIDs(printers []model.Printer) []string {
	ids := make([]string, 0, len(printers))
	for _, p := range printers {
		ids = append(ids, p.ID)
	}
	return ids
}
