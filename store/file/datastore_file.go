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

// Package file stores the printer records in a local JSON document, the
// default for a single-host companion.
package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/mendersoftware/printerconnect/model"
	"github.com/mendersoftware/printerconnect/store"
)

const (
	dirMode  = 0o700
	fileMode = 0o600
)

// DataStoreFile keeps every durable key of the application in one JSON
// object on disk.
type DataStoreFile struct {
	path   string
	mutex  sync.Mutex
	closed bool
}

// NewDataStore returns a file data store writing to path, creating the
// parent directory if needed.
func NewDataStore(path string) (*DataStoreFile, error) {
	if path == "" {
		return nil, errors.New("file store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, errors.Wrap(err, "file store: failed to create directory")
	}
	return &DataStoreFile{path: path}, nil
}

// Path returns the location of the document
func (db *DataStoreFile) Path() string {
	return db.path
}

// Ping verifies the document directory is reachable
func (db *DataStoreFile) Ping(ctx context.Context) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if db.closed {
		return store.ErrStoreClosed
	}
	info, err := os.Stat(filepath.Dir(db.path))
	if err != nil {
		return errors.Wrap(err, "file store")
	} else if !info.IsDir() {
		return errors.Errorf("file store: %s is not a directory", filepath.Dir(db.path))
	}
	return nil
}

func (db *DataStoreFile) GetPrinters(ctx context.Context) ([]model.Printer, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if db.closed {
		return nil, store.ErrStoreClosed
	}
	doc, err := db.read()
	if err != nil {
		return nil, err
	}
	printers := []model.Printer{}
	if raw, ok := doc[store.PrintersKey]; ok {
		if err := json.Unmarshal(raw, &printers); err != nil {
			return nil, errors.Wrap(err, "file store: failed to decode printers")
		}
	}
	return printers, nil
}

// SavePrinters replaces the stored printer list. The document is written
// to a temporary file and renamed over the old one.
func (db *DataStoreFile) SavePrinters(ctx context.Context, printers []model.Printer) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if db.closed {
		return store.ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := db.read()
	if err != nil {
		return err
	}
	if printers == nil {
		printers = []model.Printer{}
	}
	raw, err := json.Marshal(printers)
	if err != nil {
		return errors.Wrap(err, "file store: failed to encode printers")
	}
	doc[store.PrintersKey] = raw
	return db.write(doc)
}

func (db *DataStoreFile) Close() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.closed = true
	return nil
}

func (db *DataStoreFile) read() (map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	b, err := os.ReadFile(db.path)
	if os.IsNotExist(err) {
		return doc, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "file store: failed to read document")
	}
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, errors.Wrap(err, "file store: corrupt document")
	}
	return doc, nil
}

func (db *DataStoreFile) write(doc map[string]json.RawMessage) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "file store: failed to encode document")
	}
	tmp, err := os.CreateTemp(filepath.Dir(db.path), filepath.Base(db.path)+".*")
	if err != nil {
		return errors.Wrap(err, "file store: failed to create temporary file")
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.Write(b); err == nil {
		err = tmp.Sync()
	}
	if errClose := tmp.Close(); err == nil {
		err = errClose
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), fileMode)
	}
	if err != nil {
		return errors.Wrap(err, "file store: failed to write document")
	}
	return errors.Wrap(os.Rename(tmp.Name(), db.path), "file store: failed to replace document")
}
