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

package protocol

import (
	"fmt"
	"time"

	"github.com/mendersoftware/printerconnect/model"
)

func newRequest(printerName string, cmd int, requestID string, data interface{}, ts time.Time) *Request {
	if data == nil {
		data = map[string]interface{}{}
	}
	ms := ts.UnixMilli()
	return &Request{
		ID: fmt.Sprintf("%s-id-%d", printerName, ms),
		Data: RequestData{
			Cmd:         cmd,
			Data:        data,
			RequestID:   requestID,
			MainboardID: "",
			TimeStamp:   ms,
			From:        FromClient,
		},
	}
}

func commandRequestID(kind string, ts time.Time) string {
	return fmt.Sprintf("%s-%d", kind, ts.UnixMilli())
}

// NewStatusRequest asks the printer for a status snapshot
func NewStatusRequest(printerName string, ts time.Time) *Request {
	return newRequest(printerName, CmdStatusRequest, RequestIDStatus, nil, ts)
}

// NewEnableVideoRequest enables the camera stream; the acknowledgement
// carries the stream URL.
func NewEnableVideoRequest(printerName string, ts time.Time) *Request {
	return newRequest(printerName, CmdEnableVideo, RequestIDEnableVideo,
		map[string]interface{}{"Enable": 1}, ts)
}

func NewPauseRequest(printerName string, ts time.Time) *Request {
	return newRequest(printerName, CmdPausePrint,
		commandRequestID("pause", ts), nil, ts)
}

func NewResumeRequest(printerName string, ts time.Time) *Request {
	return newRequest(printerName, CmdResumePrint,
		commandRequestID("resume", ts), nil, ts)
}

func NewCancelRequest(printerName string, ts time.Time) *Request {
	return newRequest(printerName, CmdStopPrint,
		commandRequestID("cancel", ts), nil, ts)
}

// NewLightRequest switches the chamber light on or off
func NewLightRequest(printerName string, on bool, ts time.Time) *Request {
	return newRequest(printerName, CmdSetControl,
		commandRequestID("light-toggle", ts),
		map[string]interface{}{
			"LightStatus": map[string]interface{}{
				"SecondLight": on,
			},
		}, ts)
}

// NewFanSpeedRequest sets the speed of all three fans at once. The
// printer has no way to change a single fan, so callers pass the full
// state.
func NewFanSpeedRequest(printerName string, fans model.FanSpeed, ts time.Time) *Request {
	return newRequest(printerName, CmdSetControl,
		commandRequestID("fan-speed", ts),
		map[string]interface{}{
			"TargetFanSpeed": fans,
		}, ts)
}

// NewRequest builds an arbitrary command envelope
func NewRequest(printerName string, cmd int, data interface{}, ts time.Time) *Request {
	return newRequest(printerName, cmd,
		commandRequestID(fmt.Sprintf("cmd%d", cmd), ts), data, ts)
}
