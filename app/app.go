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
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/mendersoftware/printerconnect/client/nats"
	"github.com/mendersoftware/printerconnect/client/printer"
	"github.com/mendersoftware/printerconnect/model"
	"github.com/mendersoftware/printerconnect/protocol"
	"github.com/mendersoftware/printerconnect/store"
	"github.com/mendersoftware/printerconnect/utils"
)

const (
	DefaultConnectTimeout = 3 * time.Second
	DefaultStatusInterval = 30 * time.Second

	taskQueueSize = 64
)

// App interface describes app objects
//
//nolint:lll
//go:generate ../utils/mockgen.sh
type App interface {
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	GetPrinters(ctx context.Context) []model.LivePrinter
	GetPrinter(ctx context.Context, id string) (*model.LivePrinter, error)
	RegisterPrinter(ctx context.Context, name, address string) (*model.Printer, error)
	UpdatePrinter(ctx context.Context, id, name, address string) (*model.Printer, error)
	UnregisterPrinter(ctx context.Context, id string) error
	ReconnectAll(ctx context.Context) error
	Reconnect(ctx context.Context, id string) error
	SendCommand(ctx context.Context, id string, cmd int, data interface{}) error
	TogglePrint(ctx context.Context, id string) error
	StopPrint(ctx context.Context, id string) error
	SetLight(ctx context.Context, id string, on bool) error
	SetFan(ctx context.Context, id string, fan model.Fan, speed int) error
	Subscribe(ctx context.Context) (<-chan []model.LivePrinter, error)
	Shutdown(timeout time.Duration)
	ShutdownDone()
}

// Config tunes the printer sessions; zero values select the defaults
type Config struct {
	ConnectTimeout time.Duration
	StatusInterval time.Duration
	Clock          utils.Clock
}

// app is the connection manager. Every field below the channels is owned
// by the event loop goroutine and must only be touched from a task.
type app struct {
	store  store.DataStore
	dialer printer.Dialer
	nats   nats.Client
	Config

	tasks    chan func()
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	snapshot atomic.Value

	records     []model.Printer
	sessions    map[string]*session
	subscribers map[chan []model.LivePrinter]struct{}
	dirty       map[string]struct{}
	removed     []string
	log         *log.Logger
}

// New initialize a new printerconnect App and starts its event loop. nc
// may be nil, in which case no printer events are published.
func New(ds store.DataStore, dialer printer.Dialer, nc nats.Client, config ...Config) App {
	conf := Config{
		ConnectTimeout: DefaultConnectTimeout,
		StatusInterval: DefaultStatusInterval,
		Clock:          utils.RealClock{},
	}
	for _, cfgIn := range config {
		if cfgIn.ConnectTimeout > 0 {
			conf.ConnectTimeout = cfgIn.ConnectTimeout
		}
		if cfgIn.StatusInterval > 0 {
			conf.StatusInterval = cfgIn.StatusInterval
		}
		if cfgIn.Clock != nil {
			conf.Clock = cfgIn.Clock
		}
	}
	a := &app{
		store:       ds,
		dialer:      dialer,
		nats:        nc,
		Config:      conf,
		tasks:       make(chan func(), taskQueueSize),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		sessions:    make(map[string]*session),
		subscribers: make(map[chan []model.LivePrinter]struct{}),
		dirty:       make(map[string]struct{}),
		log:         log.NewEmpty(),
	}
	a.snapshot.Store([]model.LivePrinter{})
	go a.run()
	return a
}

func (a *app) run() {
	defer close(a.done)
	for {
		select {
		case task := <-a.tasks:
			task()
			a.flush()

		case <-a.stop:
			a.teardown()
			a.flush()
			for ch := range a.subscribers {
				close(ch)
				delete(a.subscribers, ch)
			}
			return
		}
	}
}

// post schedules fn on the event loop without waiting for it. It reports
// false when the loop is gone.
func (a *app) post(fn func()) bool {
	select {
	case a.tasks <- fn:
		return true
	case <-a.done:
		return false
	}
}

// do runs fn on the event loop and waits until it ran and the published
// snapshot reflects its changes.
func (a *app) do(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	task := func() {
		defer close(ran)
		fn()
		a.flush()
	}
	select {
	case <-a.stop:
		return ErrManagerClosed
	case <-ctx.Done():
		return ctx.Err()
	case a.tasks <- task:
	}
	select {
	case <-ran:
		return nil
	case <-a.done:
		select {
		case <-ran:
			return nil
		default:
			return ErrManagerClosed
		}
	}
}

// HealthCheck performs a health check and returns an error if it fails
func (a *app) HealthCheck(ctx context.Context) error {
	select {
	case <-a.stop:
		return ErrManagerClosed
	default:
	}
	if err := a.store.Ping(ctx); err != nil {
		return errors.Wrap(err, "store")
	}
	if a.nats != nil && !a.nats.IsConnected() {
		return errors.New("nats: not connected")
	}
	return nil
}

// Start loads the registered printers, publishes them as disconnected and
// connects to each of them.
func (a *app) Start(ctx context.Context) error {
	records, err := a.store.GetPrinters(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load printers")
	}
	err = a.do(ctx, func() {
		for _, rec := range records {
			if _, ok := a.sessions[rec.ID]; ok {
				continue
			}
			a.records = append(a.records, rec)
			a.newSession(model.LivePrinter{
				Printer:         rec,
				ConnectionState: model.ConnectionStateDisconnected,
			})
		}
	})
	if err != nil {
		return err
	}
	log.FromContext(ctx).Infof("restored %d printers", len(records))
	return a.ReconnectAll(ctx)
}

// GetPrinters returns the published snapshot. The slice must not be
// modified.
func (a *app) GetPrinters(ctx context.Context) []model.LivePrinter {
	return a.snapshot.Load().([]model.LivePrinter)
}

func (a *app) GetPrinter(ctx context.Context, id string) (*model.LivePrinter, error) {
	for _, p := range a.GetPrinters(ctx) {
		if p.ID == id {
			clone := p.Clone()
			return &clone, nil
		}
	}
	return nil, ErrPrinterNotFound
}

// RegisterPrinter stores a new printer record and starts connecting to it
func (a *app) RegisterPrinter(
	ctx context.Context,
	name string,
	address string,
) (*model.Printer, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate printer ID")
	}
	rec := model.Printer{
		ID:        id.String(),
		Name:      name,
		IPAddress: address,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	var opErr error
	err = a.do(ctx, func() {
		if a.indexOfAddress(address, "") >= 0 {
			opErr = ErrDuplicatePrinter
			return
		}
		records := make([]model.Printer, len(a.records), len(a.records)+1)
		copy(records, a.records)
		records = append(records, rec)
		if opErr = a.persist(ctx, records); opErr != nil {
			return
		}
		a.records = records
		a.newSession(model.LivePrinter{
			Printer:         rec,
			ConnectionState: model.ConnectionStateDisconnected,
		}).connect()
	})
	if err == nil {
		err = opErr
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdatePrinter edits a printer record. The session is restarted when the
// address changes.
func (a *app) UpdatePrinter(
	ctx context.Context,
	id string,
	name string,
	address string,
) (*model.Printer, error) {
	rec := model.Printer{
		ID:        id,
		Name:      name,
		IPAddress: address,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	var opErr error
	err := a.do(ctx, func() {
		idx := a.indexOf(id)
		if idx < 0 {
			opErr = ErrPrinterNotFound
			return
		} else if a.indexOfAddress(address, id) >= 0 {
			opErr = ErrDuplicatePrinter
			return
		}
		records := make([]model.Printer, len(a.records))
		copy(records, a.records)
		records[idx] = rec
		if opErr = a.persist(ctx, records); opErr != nil {
			return
		}
		prev := a.records[idx]
		a.records = records

		s := a.sessions[id]
		s.live.Printer = rec
		a.markDirty(id)
		if prev.IPAddress != rec.IPAddress {
			s.live.Status = nil
			s.live.LastUpdate = nil
			s.live.VideoURL = ""
			a.restart(id)
		}
	})
	if err == nil {
		err = opErr
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UnregisterPrinter tears down the printer session and removes its record.
// Removing an unknown printer is a no-op.
func (a *app) UnregisterPrinter(ctx context.Context, id string) error {
	var opErr error
	err := a.do(ctx, func() {
		idx := a.indexOf(id)
		if idx < 0 {
			return
		}
		records := make([]model.Printer, 0, len(a.records))
		records = append(records, a.records[:idx]...)
		records = append(records, a.records[idx+1:]...)
		if opErr = a.persist(ctx, records); opErr != nil {
			return
		}
		a.records = records
		if s, ok := a.sessions[id]; ok {
			s.close()
			delete(a.sessions, id)
		}
		delete(a.dirty, id)
		a.removed = append(a.removed, id)
	})
	if err == nil {
		err = opErr
	}
	return err
}

// ReconnectAll restarts every session from scratch. It returns as soon as
// the connection attempts are started.
func (a *app) ReconnectAll(ctx context.Context) error {
	return a.do(ctx, func() {
		for _, rec := range a.records {
			a.restart(rec.ID)
		}
	})
}

func (a *app) Reconnect(ctx context.Context, id string) error {
	var opErr error
	err := a.do(ctx, func() {
		if _, ok := a.sessions[id]; !ok {
			opErr = ErrPrinterNotFound
			return
		}
		a.restart(id)
	})
	if err == nil {
		err = opErr
	}
	return err
}

// SendCommand forwards an arbitrary command to the printer
func (a *app) SendCommand(ctx context.Context, id string, cmd int, data interface{}) error {
	return a.withSession(ctx, id, func(s *session) error {
		return s.send(protocol.NewRequest(s.live.Name, cmd, data, a.Clock.Now()))
	})
}

// TogglePrint pauses a running print or resumes a paused one
func (a *app) TogglePrint(ctx context.Context, id string) error {
	return a.withSession(ctx, id, func(s *session) error {
		phase := s.live.PrintPhase()
		switch {
		case phase.Pausable():
			return s.send(protocol.NewPauseRequest(s.live.Name, a.Clock.Now()))
		case phase.Resumable():
			return s.send(protocol.NewResumeRequest(s.live.Name, a.Clock.Now()))
		}
		return errors.Wrapf(ErrActionNotAllowed, "cannot pause or resume while %s", phase)
	})
}

// StopPrint cancels the current print. Only a paused print can be stopped.
func (a *app) StopPrint(ctx context.Context, id string) error {
	return a.withSession(ctx, id, func(s *session) error {
		phase := s.live.PrintPhase()
		if !phase.Stoppable() {
			return errors.Wrapf(ErrActionNotAllowed, "cannot stop while %s", phase)
		}
		return s.send(protocol.NewCancelRequest(s.live.Name, a.Clock.Now()))
	})
}

func (a *app) SetLight(ctx context.Context, id string, on bool) error {
	return a.withSession(ctx, id, func(s *session) error {
		return s.send(protocol.NewLightRequest(s.live.Name, on, a.Clock.Now()))
	})
}

// SetFan changes the speed of one fan. The printer only accepts the state
// of all three fans, so the others keep their last reported speed.
func (a *app) SetFan(ctx context.Context, id string, fan model.Fan, speed int) error {
	if _, err := model.ParseFan(string(fan)); err != nil {
		return err
	}
	if speed < model.FanSpeedOff || speed > model.FanSpeedMax {
		return ErrInvalidFanSpeed
	}
	return a.withSession(ctx, id, func(s *session) error {
		var fans model.FanSpeed
		if s.live.Status != nil {
			fans = s.live.Status.CurrentFanSpeed
		}
		return s.send(protocol.NewFanSpeedRequest(
			s.live.Name, fans.With(fan, speed), a.Clock.Now(),
		))
	})
}

// Subscribe returns a channel receiving the current snapshot and every
// later one. A slow reader only gets the latest snapshot. The channel is
// closed when ctx is done or the manager shuts down.
func (a *app) Subscribe(ctx context.Context) (<-chan []model.LivePrinter, error) {
	ch := make(chan []model.LivePrinter, 1)
	err := a.do(ctx, func() {
		a.subscribers[ch] = struct{}{}
		ch <- a.GetPrinters(ctx)
	})
	if err != nil {
		return nil, err
	}
	go func() {
		select {
		case <-ctx.Done():
			a.post(func() {
				if _, ok := a.subscribers[ch]; ok {
					delete(a.subscribers, ch)
					close(ch)
				}
			})
		case <-a.done:
		}
	}()
	return ch, nil
}

// Shutdown closes every printer session and stops the event loop, waiting
// at most timeout for it to finish.
func (a *app) Shutdown(timeout time.Duration) {
	a.stopOnce.Do(func() {
		close(a.stop)
	})
	select {
	case <-a.done:
	case <-time.After(timeout):
		a.log.Warnf("printer manager did not stop within %s", timeout)
	}
}

func (a *app) ShutdownDone() {
	<-a.done
}

func (a *app) withSession(ctx context.Context, id string, fn func(s *session) error) error {
	var opErr error
	err := a.do(ctx, func() {
		s, ok := a.sessions[id]
		if !ok {
			opErr = ErrPrinterNotFound
			return
		}
		opErr = fn(s)
	})
	if err == nil {
		err = opErr
	}
	return err
}

func (a *app) persist(ctx context.Context, records []model.Printer) error {
	if err := a.store.SavePrinters(ctx, records); err != nil {
		log.FromContext(ctx).Errorf("failed to persist printers: %s", err)
		return errors.Wrap(err, "failed to persist printers")
	}
	return nil
}

func (a *app) indexOf(id string) int {
	for i, rec := range a.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func (a *app) indexOfAddress(address, exceptID string) int {
	for i, rec := range a.records {
		if rec.IPAddress == address && rec.ID != exceptID {
			return i
		}
	}
	return -1
}

func (a *app) newSession(live model.LivePrinter) *session {
	s := &session{
		app:  a,
		live: live,
		log: a.log.F(log.Ctx{
			"printer_id":   live.ID,
			"printer_name": live.Name,
		}),
	}
	a.sessions[live.ID] = s
	a.markDirty(live.ID)
	return s
}

// restart replaces the session of printer id with a fresh one that starts
// connecting. The previous session is closed first so none of its timers
// or sockets outlive it.
func (a *app) restart(id string) {
	prev, ok := a.sessions[id]
	if !ok {
		return
	}
	prev.close()
	live := prev.live
	live.LastError = ""
	a.newSession(live).connect()
}

// teardown closes every session, leaving the printers disconnected
func (a *app) teardown() {
	for _, rec := range a.records {
		if s, ok := a.sessions[rec.ID]; ok {
			s.close()
			s.live.ConnectionState = model.ConnectionStateDisconnected
			a.markDirty(rec.ID)
		}
	}
}
