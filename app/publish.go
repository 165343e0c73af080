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
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mendersoftware/printerconnect/model"
)

func (a *app) markDirty(id string) {
	a.dirty[id] = struct{}{}
}

// flush publishes the changes made by the last task: the snapshot is
// replaced, subscribers are notified and printer events are sent.
func (a *app) flush() {
	if len(a.dirty) == 0 && len(a.removed) == 0 {
		return
	}
	snapshot := make([]model.LivePrinter, 0, len(a.records))
	for _, rec := range a.records {
		if s, ok := a.sessions[rec.ID]; ok {
			snapshot = append(snapshot, s.live.Clone())
		}
	}
	a.snapshot.Store(snapshot)

	for ch := range a.subscribers {
		select {
		case ch <- snapshot:
		default:
			// only the latest snapshot matters
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}

	if a.nats != nil {
		now := a.Clock.Now()
		for i := range snapshot {
			if _, ok := a.dirty[snapshot[i].ID]; ok {
				a.publishEvent(model.PrinterEvent{
					Type:      model.PrinterEventUpdated,
					PrinterID: snapshot[i].ID,
					Printer:   &snapshot[i],
					Timestamp: now,
				})
			}
		}
		for _, id := range a.removed {
			a.publishEvent(model.PrinterEvent{
				Type:      model.PrinterEventRemoved,
				PrinterID: id,
				Timestamp: now,
			})
		}
	}
	a.dirty = make(map[string]struct{})
	a.removed = nil
}

func (a *app) publishEvent(event model.PrinterEvent) {
	b, err := msgpack.Marshal(event)
	if err != nil {
		a.log.Errorf("failed to encode printer event: %s", err)
		return
	}
	if err := a.nats.Publish(model.GetPrinterSubject(event.PrinterID), b); err != nil {
		a.log.Warnf("failed to publish printer event: %s", err)
	}
}
