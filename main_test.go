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

package main

import (
	"bytes"
	"context"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/mendersoftware/printerconnect/api/http"
	dconfig "github.com/mendersoftware/printerconnect/config"
	"github.com/mendersoftware/printerconnect/model"
	"github.com/mendersoftware/printerconnect/store/file"
)

var (
	acceptanceTesting bool
)

func init() {
	flag.BoolVar(&acceptanceTesting, "acceptance-testing", false,
		"Acceptance testing mode, starts the application main function "+
			"with cover mode enabled. Non-flag arguments are passed"+
			"to the main application, add '--' after test flags to"+
			"pass flags to main.",
	)
}

func TestMain(m *testing.M) {
	flag.Parse()
	if acceptanceTesting {
		// Override 'run' flags to only execute TestDoMain
		flag.Set("test.run", "TestDoMain")
	}
	os.Exit(m.Run())
}

func TestDoMain(t *testing.T) {
	if !acceptanceTesting {
		t.Skip()
	}
	doMain(append(os.Args[:1], flag.Args()...))
}

func TestSetupDataStore(t *testing.T) {
	path := t.TempDir() + "/printers.json"
	config.Config.Set(dconfig.SettingStore, dconfig.StoreFile)
	config.Config.Set(dconfig.SettingStorePath, path)
	defer config.Config.Set(dconfig.SettingStore, dconfig.SettingStoreDefault)
	defer config.Config.Set(dconfig.SettingStorePath, dconfig.SettingStorePathDefault)

	ds, err := setupDataStore(config.Config, false)
	require.NoError(t, err)
	defer ds.Close()
	if assert.IsType(t, &file.DataStoreFile{}, ds) {
		assert.Equal(t, path, ds.(*file.DataStoreFile).Path())
	}

	config.Config.Set(dconfig.SettingStore, "sqlite")
	_, err = setupDataStore(config.Config, false)
	assert.EqualError(t, err, `unknown store "sqlite"`)
}

func TestFetchPrinters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != api.APIURLPrinters {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"id": "abc",
			"printerName": "Kitchen",
			"ipAddress": "192.168.1.10",
			"connectionStatus": "connected",
			"lastUpdate": "2026-10-18T10:00:00Z",
			"status": {"PrintInfo": {"Status": 13}}
		}]`))
	}))
	defer srv.Close()

	printers, err := fetchPrinters(context.Background(), srv.Client(), srv.URL+"/")
	require.NoError(t, err)
	if assert.Len(t, printers, 1) {
		assert.Equal(t, "Kitchen", printers[0].Name)
		assert.Equal(t, model.ConnectionStateConnected, printers[0].ConnectionState)
		assert.Equal(t, model.PrintPhasePrinting, printers[0].PrintPhase())
	}

	_, err = fetchPrinters(context.Background(), srv.Client(), srv.URL+"/nope")
	assert.EqualError(t, err,
		"printerconnect responded with unexpected status code: 404")
}

func TestWritePrinters(t *testing.T) {
	now := time.Date(2026, 10, 18, 10, 2, 5, 0, time.UTC)
	updated := now.Add(-65 * time.Second)
	var buf bytes.Buffer
	err := writePrinters(&buf, []model.LivePrinter{{
		Printer: model.Printer{
			ID:        "abc",
			Name:      "Kitchen",
			IPAddress: "192.168.1.10",
		},
		ConnectionState: model.ConnectionStateConnected,
		LastUpdate:      &updated,
	}, {
		Printer: model.Printer{
			ID:        "def",
			Name:      "Garage",
			IPAddress: "192.168.1.11",
		},
		ConnectionState: model.ConnectionStateError,
		LastError:       "connection refused",
	}}, now)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 3) {
		assert.True(t, strings.HasPrefix(lines[0], "ID"))
		assert.Equal(t,
			[]string{"abc", "Kitchen", "192.168.1.10", "connected", "idle", "1m", "5s", "ago"},
			strings.Fields(lines[1]))
		assert.Equal(t,
			[]string{"def", "Garage", "192.168.1.11", "error", "idle", "-", "connection", "refused"},
			strings.Fields(lines[2]))
	}
}
