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

import "github.com/pkg/errors"

// PrinterStatus is the status snapshot reported by the printer mainboard.
// Field names follow the wire format.
type PrinterStatus struct {
	CurrentStatus    []int       `json:"CurrentStatus"`
	TimeLapseStatus  int         `json:"TimeLapseStatus"`
	PlatFormType     int         `json:"PlatFormType"`
	TempOfHotbed     float64     `json:"TempOfHotbed"`
	TempOfNozzle     float64     `json:"TempOfNozzle"`
	TempOfBox        float64     `json:"TempOfBox"`
	TempTargetHotbed float64     `json:"TempTargetHotbed"`
	TempTargetNozzle float64     `json:"TempTargetNozzle"`
	TempTargetBox    float64     `json:"TempTargetBox"`
	CurrenCoord      string      `json:"CurrenCoord"`
	CurrentFanSpeed  FanSpeed    `json:"CurrentFanSpeed"`
	ZOffset          float64     `json:"ZOffset"`
	LightStatus      LightStatus `json:"LightStatus"`
	PrintInfo        PrintInfo   `json:"PrintInfo"`
}

func (s PrinterStatus) Clone() PrinterStatus {
	clone := s
	if s.CurrentStatus != nil {
		clone.CurrentStatus = make([]int, len(s.CurrentStatus))
		copy(clone.CurrentStatus, s.CurrentStatus)
	}
	return clone
}

// FanSpeed holds the speed (percent) of the three printer fans.
type FanSpeed struct {
	ModelFan     int `json:"ModelFan"`
	AuxiliaryFan int `json:"AuxiliaryFan"`
	BoxFan       int `json:"BoxFan"`
}

// Fan identifies one of the printer fans
type Fan string

const (
	FanModel     Fan = "model"
	FanAuxiliary Fan = "auxiliary"
	FanChamber   Fan = "chamber"
)

// Fan speed bounds in percent
const (
	FanSpeedOff = 0
	FanSpeedMax = 100
)

var ErrUnknownFan = errors.New("unknown fan")

// ParseFan parses a fan name
func ParseFan(s string) (Fan, error) {
	switch fan := Fan(s); fan {
	case FanModel, FanAuxiliary, FanChamber:
		return fan, nil
	}
	return "", errors.Wrapf(ErrUnknownFan, "%q", s)
}

// With returns a copy of the fan speeds with one fan changed. The other
// two keep their current speed.
func (f FanSpeed) With(fan Fan, speed int) FanSpeed {
	switch fan {
	case FanModel:
		f.ModelFan = speed
	case FanAuxiliary:
		f.AuxiliaryFan = speed
	case FanChamber:
		f.BoxFan = speed
	}
	return f
}

// LightStatus is the state of the chamber light and the RGB strip.
type LightStatus struct {
	SecondLight int    `json:"SecondLight"`
	RgbLight    [3]int `json:"RgbLight"`
}

// PrintInfo describes the current print job
type PrintInfo struct {
	Status        int     `json:"Status"`
	CurrentLayer  int     `json:"CurrentLayer"`
	TotalLayer    int     `json:"TotalLayer"`
	CurrentTicks  float64 `json:"CurrentTicks"`
	TotalTicks    float64 `json:"TotalTicks"`
	Filename      string  `json:"Filename"`
	TaskID        string  `json:"TaskId"`
	PrintSpeedPct int     `json:"PrintSpeedPct"`
	Progress      float64 `json:"Progress"`
}
