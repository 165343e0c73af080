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

package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ConnectionState is the connectivity state of a printer session
type ConnectionState string

// Values for the printer connection state
const (
	ConnectionStateDisconnected ConnectionState = "disconnected"
	ConnectionStateConnecting   ConnectionState = "connecting"
	ConnectionStateConnected    ConnectionState = "connected"
	ConnectionStateError        ConnectionState = "error"
	ConnectionStateTimeout      ConnectionState = "timeout"
)

// Limits on the printer display name
const (
	PrinterNameMinLength = 2
	PrinterNameMaxLength = 50
)

// Printer is the durable record of a registered printer
type Printer struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"printerName" bson:"printerName"`
	IPAddress string `json:"ipAddress" bson:"ipAddress"`
}

func (p Printer) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Name,
			validation.Required,
			validation.Length(PrinterNameMinLength, PrinterNameMaxLength),
		),
		validation.Field(&p.IPAddress, validation.Required, is.IPv4),
	)
}

// LivePrinter is a registered printer together with its live connection
// state and the last status snapshot received from it.
type LivePrinter struct {
	Printer         `bson:",inline" msgpack:",inline"`
	ConnectionState ConnectionState `json:"connectionStatus" msgpack:"connection_status"`
	Status          *PrinterStatus  `json:"status,omitempty" msgpack:"status,omitempty"`
	LastUpdate      *time.Time      `json:"lastUpdate,omitempty" msgpack:"last_update,omitempty"`
	VideoURL        string          `json:"videoUrl,omitempty" msgpack:"video_url,omitempty"`
	LastError       string          `json:"lastError,omitempty" msgpack:"last_error,omitempty"`
}

// PrintPhase returns the phase of the current print job; a printer that
// has not reported any status yet is idle.
func (p LivePrinter) PrintPhase() PrintPhase {
	if p.Status == nil {
		return PrintPhaseIdle
	}
	return PrintPhaseFromCode(p.Status.PrintInfo.Status)
}

// Clone returns a deep copy of the printer, safe to hand out while the
// original keeps being updated.
func (p LivePrinter) Clone() LivePrinter {
	clone := p
	if p.Status != nil {
		status := p.Status.Clone()
		clone.Status = &status
	}
	if p.LastUpdate != nil {
		ts := *p.LastUpdate
		clone.LastUpdate = &ts
	}
	return clone
}
