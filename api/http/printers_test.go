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

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mendersoftware/printerconnect/app"
	app_mocks "github.com/mendersoftware/printerconnect/app/mocks"
	"github.com/mendersoftware/printerconnect/model"
	"github.com/mendersoftware/printerconnect/protocol"
)

var contextMatcher = mock.MatchedBy(func(_ context.Context) bool { return true })

func TestRenderAppError(t *testing.T) {
	testCases := map[string]struct {
		Err    error
		Status int
	}{
		"validation": {
			Err:    validation.Errors{"ipAddress": errors.New("must be a valid IPv4 address")},
			Status: http.StatusBadRequest,
		},
		"fan speed":  {Err: app.ErrInvalidFanSpeed, Status: http.StatusBadRequest},
		"fan":        {Err: errors.Wrap(model.ErrUnknownFan, `"exhaust"`), Status: http.StatusBadRequest},
		"not found":  {Err: app.ErrPrinterNotFound, Status: http.StatusNotFound},
		"duplicate":  {Err: app.ErrDuplicatePrinter, Status: http.StatusConflict},
		"not open":   {Err: app.ErrSendWhileClosed, Status: http.StatusConflict},
		"not now":    {Err: errors.Wrap(app.ErrActionNotAllowed, "idle"), Status: http.StatusConflict},
		"closed":     {Err: app.ErrManagerClosed, Status: http.StatusServiceUnavailable},
		"store down": {Err: errors.New("disk full"), Status: http.StatusInternalServerError},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			printerConnectApp := app_mocks.NewApp(t)
			printerConnectApp.On("Reconnect", contextMatcher, "abc").Return(tc.Err)

			router, _ := NewRouter(printerConnectApp)
			req, _ := http.NewRequest(http.MethodPost,
				strings.Replace(APIURLPrinterReconnect, ":id", "abc", 1), nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.Status, w.Code)

			var body map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Contains(t, body, "error")
		})
	}
}

func TestListPrinters(t *testing.T) {
	printers := []model.LivePrinter{{
		Printer: model.Printer{
			ID:        "abc",
			Name:      "Kitchen",
			IPAddress: "192.168.1.10",
		},
		ConnectionState: model.ConnectionStateConnected,
		Status: &model.PrinterStatus{
			TempOfNozzle: 210.5,
		},
	}, {
		Printer: model.Printer{
			ID:        "def",
			Name:      "Garage",
			IPAddress: "192.168.1.11",
		},
		ConnectionState: model.ConnectionStateTimeout,
		LastError:       "connection timed out after 3s",
	}}
	printerConnectApp := app_mocks.NewApp(t)
	printerConnectApp.On("GetPrinters", contextMatcher).Return(printers)

	router, _ := NewRouter(printerConnectApp)
	req, _ := http.NewRequest(http.MethodGet, APIURLPrinters, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []map[string]interface{}
	if assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)) && assert.Len(t, body, 2) {
		assert.Equal(t, "abc", body[0]["id"])
		assert.Equal(t, "Kitchen", body[0]["printerName"])
		assert.Equal(t, "192.168.1.10", body[0]["ipAddress"])
		assert.Equal(t, "connected", body[0]["connectionStatus"])
		assert.Equal(t, 210.5, body[0]["status"].(map[string]interface{})["TempOfNozzle"])
		assert.Equal(t, "timeout", body[1]["connectionStatus"])
		assert.NotContains(t, body[1], "status")
		assert.Equal(t, "connection timed out after 3s", body[1]["lastError"])
	}
}

func TestGetPrinter(t *testing.T) {
	printerConnectApp := app_mocks.NewApp(t)
	printerConnectApp.On("GetPrinter", contextMatcher, "abc").Return(&model.LivePrinter{
		Printer:         model.Printer{ID: "abc", Name: "Kitchen", IPAddress: "192.168.1.10"},
		ConnectionState: model.ConnectionStateConnecting,
	}, nil)
	printerConnectApp.On("GetPrinter", contextMatcher, "nope").Return(nil, app.ErrPrinterNotFound)

	router, _ := NewRouter(printerConnectApp)

	req, _ := http.NewRequest(http.MethodGet, APIURLPrinters+"/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"id": "abc",
		"printerName": "Kitchen",
		"ipAddress": "192.168.1.10",
		"connectionStatus": "connecting"
	}`, w.Body.String())

	req, _ = http.NewRequest(http.MethodGet, APIURLPrinters+"/nope", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterPrinter(t *testing.T) {
	testCases := []struct {
		Name string

		Body    string
		App     func(t *testing.T) *app_mocks.App
		Status  int
		Headers map[string]string
	}{{
		Name: "ok",

		Body: `{"printerName": "Kitchen", "ipAddress": "192.168.1.10"}`,
		App: func(t *testing.T) *app_mocks.App {
			a := app_mocks.NewApp(t)
			a.On("RegisterPrinter", contextMatcher, "Kitchen", "192.168.1.10").
				Return(&model.Printer{ID: "abc", Name: "Kitchen", IPAddress: "192.168.1.10"}, nil)
			return a
		},
		Status:  http.StatusCreated,
		Headers: map[string]string{"Location": APIURLPrinters + "/abc"},
	}, {
		Name: "error, malformed body",

		Body:   `{"printerName": `,
		App:    func(t *testing.T) *app_mocks.App { return app_mocks.NewApp(t) },
		Status: http.StatusBadRequest,
	}, {
		Name: "error, missing address",

		Body:   `{"printerName": "Kitchen"}`,
		App:    func(t *testing.T) *app_mocks.App { return app_mocks.NewApp(t) },
		Status: http.StatusBadRequest,
	}, {
		Name: "error, invalid printer",

		Body: `{"printerName": "Kitchen", "ipAddress": "kitchen.local"}`,
		App: func(t *testing.T) *app_mocks.App {
			a := app_mocks.NewApp(t)
			a.On("RegisterPrinter", contextMatcher, "Kitchen", "kitchen.local").
				Return(nil, validation.Errors{
					"ipAddress": errors.New("must be a valid IPv4 address"),
				})
			return a
		},
		Status: http.StatusBadRequest,
	}, {
		Name: "error, duplicate address",

		Body: `{"printerName": "Kitchen", "ipAddress": "192.168.1.10"}`,
		App: func(t *testing.T) *app_mocks.App {
			a := app_mocks.NewApp(t)
			a.On("RegisterPrinter", contextMatcher, "Kitchen", "192.168.1.10").
				Return(nil, app.ErrDuplicatePrinter)
			return a
		},
		Status: http.StatusConflict,
	}}
	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			router, _ := NewRouter(tc.App(t))
			req, _ := http.NewRequest(http.MethodPost, APIURLPrinters, strings.NewReader(tc.Body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.Status, w.Code)
			for k, v := range tc.Headers {
				assert.Equal(t, v, w.Header().Get(k))
			}
			if tc.Status == http.StatusCreated {
				assert.JSONEq(t,
					`{"id": "abc", "printerName": "Kitchen", "ipAddress": "192.168.1.10"}`,
					w.Body.String())
			}
		})
	}
}

func TestUpdatePrinter(t *testing.T) {
	printerConnectApp := app_mocks.NewApp(t)
	printerConnectApp.On("UpdatePrinter", contextMatcher, "abc", "Kitchen", "192.168.1.20").
		Return(&model.Printer{ID: "abc", Name: "Kitchen", IPAddress: "192.168.1.20"}, nil)
	printerConnectApp.On("UpdatePrinter", contextMatcher, "nope", "Kitchen", "192.168.1.20").
		Return(nil, app.ErrPrinterNotFound)

	router, _ := NewRouter(printerConnectApp)
	for id, status := range map[string]int{
		"abc":  http.StatusOK,
		"nope": http.StatusNotFound,
	} {
		req, _ := http.NewRequest(http.MethodPut, APIURLPrinters+"/"+id,
			strings.NewReader(`{"printerName": "Kitchen", "ipAddress": "192.168.1.20"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, status, w.Code, id)
	}
}

func TestPrinterActions(t *testing.T) {
	testCases := []struct {
		Name string

		Method string
		Path   string
		Body   string
		Setup  func(a *app_mocks.App)

		Status int
	}{{
		Name:   "unregister",
		Method: http.MethodDelete,
		Path:   APIURLPrinters + "/abc",
		Setup: func(a *app_mocks.App) {
			a.On("UnregisterPrinter", contextMatcher, "abc").Return(nil)
		},
		Status: http.StatusNoContent,
	}, {
		Name:   "unregister, store failure",
		Method: http.MethodDelete,
		Path:   APIURLPrinters + "/abc",
		Setup: func(a *app_mocks.App) {
			a.On("UnregisterPrinter", contextMatcher, "abc").
				Return(errors.New("failed to persist printers"))
		},
		Status: http.StatusInternalServerError,
	}, {
		Name:   "reconnect all",
		Method: http.MethodPost,
		Path:   APIURLPrintersReconnect,
		Setup: func(a *app_mocks.App) {
			a.On("ReconnectAll", contextMatcher).Return(nil)
		},
		Status: http.StatusAccepted,
	}, {
		Name:   "reconnect",
		Method: http.MethodPost,
		Path:   APIURLPrinters + "/abc/reconnect",
		Setup: func(a *app_mocks.App) {
			a.On("Reconnect", contextMatcher, "abc").Return(nil)
		},
		Status: http.StatusAccepted,
	}, {
		Name:   "command",
		Method: http.MethodPost,
		Path:   APIURLPrinters + "/abc/commands",
		Body:   `{"cmd": 0}`,
		Setup: func(a *app_mocks.App) {
			a.On("SendCommand", contextMatcher, "abc", protocol.CmdStatusRequest, nil).
				Return(nil)
		},
		Status: http.StatusAccepted,
	}, {
		Name:   "command with data",
		Method: http.MethodPost,
		Path:   APIURLPrinters + "/abc/commands",
		Body:   `{"cmd": 403, "data": {"LightStatus": {"SecondLight": false}}}`,
		Setup: func(a *app_mocks.App) {
			a.On("SendCommand", contextMatcher, "abc", protocol.CmdSetControl,
				map[string]interface{}{
					"LightStatus": map[string]interface{}{"SecondLight": false},
				}).
				Return(nil)
		},
		Status: http.StatusAccepted,
	}, {
		Name:   "command, socket closed",
		Method: http.MethodPost,
		Path:   APIURLPrinters + "/abc/commands",
		Body:   `{"cmd": 129}`,
		Setup: func(a *app_mocks.App) {
			a.On("SendCommand", contextMatcher, "abc", protocol.CmdPausePrint, nil).
				Return(app.ErrSendWhileClosed)
		},
		Status: http.StatusConflict,
	}, {
		Name:   "command, missing cmd",
		Method: http.MethodPost,
		Path:   APIURLPrinters + "/abc/commands",
		Body:   `{"data": {}}`,
		Status: http.StatusBadRequest,
	}, {
		Name:   "toggle print",
		Method: http.MethodPost,
		Path:   APIURLPrinters + "/abc/print/toggle",
		Setup: func(a *app_mocks.App) {
			a.On("TogglePrint", contextMatcher, "abc").Return(nil)
		},
		Status: http.StatusAccepted,
	}, {
		Name:   "stop print, not paused",
		Method: http.MethodPost,
		Path:   APIURLPrinters + "/abc/print/stop",
		Setup: func(a *app_mocks.App) {
			a.On("StopPrint", contextMatcher, "abc").
				Return(errors.Wrap(app.ErrActionNotAllowed, "cannot stop while printing"))
		},
		Status: http.StatusConflict,
	}, {
		Name:   "light",
		Method: http.MethodPut,
		Path:   APIURLPrinters + "/abc/light",
		Body:   `{"on": false}`,
		Setup: func(a *app_mocks.App) {
			a.On("SetLight", contextMatcher, "abc", false).Return(nil)
		},
		Status: http.StatusAccepted,
	}, {
		Name:   "light, missing state",
		Method: http.MethodPut,
		Path:   APIURLPrinters + "/abc/light",
		Body:   `{}`,
		Status: http.StatusBadRequest,
	}, {
		Name:   "fan",
		Method: http.MethodPut,
		Path:   APIURLPrinters + "/abc/fans/chamber",
		Body:   `{"speed": 0}`,
		Setup: func(a *app_mocks.App) {
			a.On("SetFan", contextMatcher, "abc", model.FanChamber, 0).Return(nil)
		},
		Status: http.StatusAccepted,
	}, {
		Name:   "fan, unknown printer",
		Method: http.MethodPut,
		Path:   APIURLPrinters + "/nope/fans/model",
		Body:   `{"speed": 100}`,
		Setup: func(a *app_mocks.App) {
			a.On("SetFan", contextMatcher, "nope", model.FanModel, 100).
				Return(app.ErrPrinterNotFound)
		},
		Status: http.StatusNotFound,
	}, {
		Name:   "fan, speed out of range",
		Method: http.MethodPut,
		Path:   APIURLPrinters + "/abc/fans/model",
		Body:   `{"speed": 120}`,
		Status: http.StatusBadRequest,
	}, {
		Name:   "fan, unknown fan",
		Method: http.MethodPut,
		Path:   APIURLPrinters + "/abc/fans/exhaust",
		Body:   `{"speed": 20}`,
		Status: http.StatusBadRequest,
	}}
	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			printerConnectApp := app_mocks.NewApp(t)
			if tc.Setup != nil {
				tc.Setup(printerConnectApp)
			}
			router, _ := NewRouter(printerConnectApp)

			var req *http.Request
			if tc.Body != "" {
				req, _ = http.NewRequest(tc.Method, tc.Path, strings.NewReader(tc.Body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req, _ = http.NewRequest(tc.Method, tc.Path, nil)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.Status, w.Code)
		})
	}
}
