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
	"fmt"
	"time"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/mendersoftware/printerconnect/client/printer"
	"github.com/mendersoftware/printerconnect/model"
	"github.com/mendersoftware/printerconnect/protocol"
)

// session is the connection state machine of one printer. All methods
// run on the manager event loop; goroutines and timers owned by the
// session only post events back to it.
type session struct {
	app  *app
	live model.LivePrinter
	log  *log.Logger

	conn       printer.Conn
	cancelDial context.CancelFunc
	watchdog   *time.Timer
	poll       *time.Timer
	pollSeq    uint64
	closed     bool
}

// current reports whether the session is still the one registered for
// its printer. Events of replaced or removed sessions are dropped.
func (s *session) current() bool {
	return !s.closed && s.app.sessions[s.live.ID] == s
}

func (s *session) setState(state model.ConnectionState, lastError string) {
	if s.live.ConnectionState == state && s.live.LastError == lastError {
		return
	}
	s.log.Debugf("connection state %s -> %s", s.live.ConnectionState, state)
	s.live.ConnectionState = state
	s.live.LastError = lastError
	s.app.markDirty(s.live.ID)
}

// connect opens the websocket and arms the connect watchdog
func (s *session) connect() {
	s.setState(model.ConnectionStateConnecting, "")

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelDial = cancel
	s.watchdog = time.AfterFunc(s.app.ConnectTimeout, func() {
		s.app.post(s.onWatchdog)
	})
	address := s.live.IPAddress
	go func() {
		conn, err := s.app.dialer.Dial(ctx, address)
		posted := s.app.post(func() {
			s.onDial(conn, err)
		})
		if !posted && conn != nil {
			conn.Close()
		}
	}()
}

func (s *session) onDial(conn printer.Conn, err error) {
	if !s.current() || s.live.ConnectionState != model.ConnectionStateConnecting {
		if conn != nil {
			conn.Close()
		}
		return
	}
	s.stopWatchdog()
	if err != nil {
		s.log.Warnf("failed to connect: %s", err)
		s.setState(model.ConnectionStateError, err.Error())
		return
	}

	s.conn = conn
	s.setState(model.ConnectionStateConnected, "")
	go s.serve(conn)

	if err := s.send(protocol.NewEnableVideoRequest(s.live.Name, s.app.Clock.Now())); err != nil {
		s.log.Warnf("failed to enable video stream: %s", err)
	}
	s.refreshStatusNow()
	if s.live.ConnectionState == model.ConnectionStateConnected {
		s.armPoll()
	}
}

func (s *session) onWatchdog() {
	if !s.current() || s.live.ConnectionState != model.ConnectionStateConnecting {
		return
	}
	s.watchdog = nil
	s.cancelDial()
	s.log.Warnf("connection timed out after %s", s.app.ConnectTimeout)
	s.setState(model.ConnectionStateTimeout,
		fmt.Sprintf("connection timed out after %s", s.app.ConnectTimeout))
}

func (s *session) serve(conn printer.Conn) {
	err := conn.Serve(func(frame []byte) {
		s.app.post(func() {
			s.onFrame(conn, frame)
		})
	})
	s.app.post(func() {
		s.onClose(conn, err)
	})
}

func (s *session) onFrame(conn printer.Conn, frame []byte) {
	if !s.current() || s.conn != conn {
		return
	}
	msg, err := protocol.Decode(frame)
	if err != nil {
		s.log.Warnf("dropping frame: %s", err)
		return
	}
	if msg.Status != nil {
		status := *msg.Status
		now := s.app.Clock.Now()
		s.live.Status = &status
		s.live.LastUpdate = &now
		s.app.markDirty(s.live.ID)
	}
	if msg.Ack != nil {
		s.log.Debugf("command %s acknowledged", msg.Ack.RequestID)
		if msg.Ack.VideoURL != "" && msg.Ack.VideoURL != s.live.VideoURL {
			s.live.VideoURL = msg.Ack.VideoURL
			s.app.markDirty(s.live.ID)
		}
		s.refreshStatusNow()
	}
}

func (s *session) onClose(conn printer.Conn, err error) {
	if !s.current() || s.conn != conn {
		return
	}
	s.conn = nil
	s.stopPoll()
	if err == nil || printer.IsCloseError(err) {
		s.log.Infof("connection closed: %v", err)
		s.setState(model.ConnectionStateDisconnected, "")
	} else {
		s.log.Warnf("connection error: %s", err)
		s.setState(model.ConnectionStateError, err.Error())
	}
}

// refreshStatusNow asks the printer for a status snapshot right away
func (s *session) refreshStatusNow() {
	if err := s.send(protocol.NewStatusRequest(s.live.Name, s.app.Clock.Now())); err != nil {
		s.log.Warnf("failed to request status: %s", err)
	}
}

func (s *session) armPoll() {
	s.pollSeq++
	seq := s.pollSeq
	s.poll = time.AfterFunc(s.app.StatusInterval, func() {
		s.app.post(func() {
			s.onPollTick(seq)
		})
	})
}

func (s *session) onPollTick(seq uint64) {
	if !s.current() || seq != s.pollSeq ||
		s.live.ConnectionState != model.ConnectionStateConnected {
		return
	}
	s.refreshStatusNow()
	if s.live.ConnectionState == model.ConnectionStateConnected {
		s.armPoll()
	}
}

// send writes a command to the printer. A socket found closed moves the
// session to disconnected.
func (s *session) send(req *protocol.Request) error {
	if s.conn == nil {
		return ErrSendWhileClosed
	}
	if !s.conn.IsOpen() {
		s.dropConn()
		return ErrSendWhileClosed
	}
	b, err := protocol.Encode(req)
	if err != nil {
		return err
	}
	err = s.conn.Send(b)
	if errors.Is(err, printer.ErrConnClosed) {
		s.dropConn()
		return ErrSendWhileClosed
	}
	return err
}

func (s *session) dropConn() {
	s.stopPoll()
	s.conn.Close()
	s.conn = nil
	s.setState(model.ConnectionStateDisconnected, "")
}

func (s *session) stopWatchdog() {
	if s.watchdog != nil {
		s.watchdog.Stop()
		s.watchdog = nil
	}
}

func (s *session) stopPoll() {
	s.pollSeq++
	if s.poll != nil {
		s.poll.Stop()
		s.poll = nil
	}
}

// close releases every resource of the session. Pending events of a
// closed session are ignored.
func (s *session) close() {
	s.closed = true
	s.stopWatchdog()
	s.stopPoll()
	if s.cancelDial != nil {
		s.cancelDial()
	}
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}
