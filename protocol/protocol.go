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

// Package protocol translates between the printer's JSON wire messages and
// the printer model. It holds no state.
package protocol

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/mendersoftware/printerconnect/model"
)

// Command codes understood by the printer mainboard. The values must not
// change: they are what the hardware expects.
const (
	CmdStatusRequest = 0
	CmdPausePrint    = 129
	CmdStopPrint     = 130
	CmdResumePrint   = 131
	CmdEnableVideo   = 386
	// CmdSetControl sets the light and fan speeds
	CmdSetControl = 403
)

// Fixed request IDs
const (
	RequestIDStatus      = "STATUS_REQUEST"
	RequestIDEnableVideo = "ENABLE_VIDEO"
)

// FromClient marks requests originating from a client application
const FromClient = 1

// AckOK is the acknowledgement code of a successful request
const AckOK = 0

var (
	ErrMalformedFrame = errors.New("protocol: malformed frame")
)

// Request is the envelope of every request sent to a printer
type Request struct {
	ID   string      `json:"Id"`
	Data RequestData `json:"Data"`
}

// RequestData is the body of a request
type RequestData struct {
	Cmd         int         `json:"Cmd"`
	Data        interface{} `json:"Data"`
	RequestID   string      `json:"RequestID"`
	MainboardID string      `json:"MainboardID"`
	TimeStamp   int64       `json:"TimeStamp"`
	From        int         `json:"From"`
}

// Encode returns the wire form of the request
func Encode(req *Request) ([]byte, error) {
	if req == nil {
		return nil, errors.New("protocol: nil request")
	}
	return json.Marshal(req)
}

// Message is a decoded inbound frame. A frame can carry a status
// snapshot, a command acknowledgement, both, or neither.
type Message struct {
	Status *model.PrinterStatus
	Ack    *Ack
}

// Ack is the acknowledgement of a user-initiated request
type Ack struct {
	RequestID string
	VideoURL  string
}

type inboundFrame struct {
	Status json.RawMessage `json:"Status"`
	Data   json.RawMessage `json:"Data"`
}

type inboundData struct {
	Data      json.RawMessage `json:"Data"`
	RequestID string          `json:"RequestID"`
}

type inboundAck struct {
	Ack      *int   `json:"Ack"`
	VideoURL string `json:"VideoUrl"`
}

// Decode parses one text frame. Frames that are not JSON objects, or
// whose status payload does not match the status schema, yield an error
// wrapping ErrMalformedFrame.
func Decode(frame []byte) (*Message, error) {
	var in inboundFrame
	if err := json.Unmarshal(frame, &in); err != nil {
		return nil, errors.Wrap(ErrMalformedFrame, err.Error())
	}

	msg := &Message{}
	if isPresent(in.Status) {
		status := &model.PrinterStatus{}
		if err := json.Unmarshal(in.Status, status); err != nil {
			return nil, errors.Wrap(ErrMalformedFrame,
				"invalid status payload: "+err.Error())
		}
		msg.Status = status
	}
	msg.Ack = decodeAck(in.Data)
	return msg, nil
}

// decodeAck returns the acknowledgement carried in the Data envelope, if
// any. Responses to status polls are not treated as acknowledgements.
func decodeAck(raw json.RawMessage) *Ack {
	if !isPresent(raw) {
		return nil
	}
	var data inboundData
	if err := json.Unmarshal(raw, &data); err != nil || !isPresent(data.Data) {
		return nil
	}
	var ack inboundAck
	if err := json.Unmarshal(data.Data, &ack); err != nil {
		return nil
	}
	if ack.Ack == nil || *ack.Ack != AckOK || data.RequestID == RequestIDStatus {
		return nil
	}
	return &Ack{
		RequestID: data.RequestID,
		VideoURL:  ack.VideoURL,
	}
}

func isPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
