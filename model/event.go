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
	"strings"
	"time"
)

// Printer event types
const (
	PrinterEventUpdated = "updated"
	PrinterEventRemoved = "removed"
)

// PrinterEvent is published every time a live printer changes or is removed
type PrinterEvent struct {
	Type      string       `json:"type" msgpack:"type"`
	PrinterID string       `json:"printer_id" msgpack:"printer_id"`
	Printer   *LivePrinter `json:"printer,omitempty" msgpack:"printer,omitempty"`
	Timestamp time.Time    `json:"ts" msgpack:"ts"`
}

func GetPrinterSubject(printerID string) string {
	return strings.Join([]string{
		"printer",
		printerID,
	}, ".")
}
