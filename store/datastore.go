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

package store

import (
	"context"
	"errors"

	"github.com/mendersoftware/printerconnect/model"
)

// PrintersKey is the durable key holding the registered printers
const PrintersKey = "printers"

// DataStore persists the ordered list of registered printers. Only the
// printer records are stored, never their live status.
//
//go:generate ../utils/mockgen.sh
type DataStore interface {
	Ping(ctx context.Context) error
	GetPrinters(ctx context.Context) ([]model.Printer, error)
	SavePrinters(ctx context.Context, printers []model.Printer) error
	Close() error
}

var (
	ErrStoreClosed = errors.New("store: closed")
)
