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

// PrintPhase is the semantic phase of a print job
type PrintPhase string

const (
	PrintPhaseIdle      PrintPhase = "idle"
	PrintPhasePreparing PrintPhase = "preparing"
	PrintPhasePrinting  PrintPhase = "printing"
	PrintPhasePaused    PrintPhase = "paused"
	PrintPhaseStopped   PrintPhase = "stopped"
	PrintPhaseCompleted PrintPhase = "completed"
	PrintPhaseUnknown   PrintPhase = "unknown"
)

// Print job status codes reported in PrintInfo.Status
const (
	PrintStatusIdle         = 0
	PrintStatusHoming       = 1
	PrintStatusDropping     = 2
	PrintStatusPaused       = 6
	PrintStatusStopped      = 8
	PrintStatusCompleted    = 9
	PrintStatusFileChecking = 10
	PrintStatusPrinting     = 13
	PrintStatusHeating      = 16
	PrintStatusBedLeveling  = 20
)

// PrintPhaseFromCode maps a print job status code to its phase. Codes
// that are not listed (including the transitional pausing and stopping
// codes) map to PrintPhaseUnknown.
func PrintPhaseFromCode(code int) PrintPhase {
	switch code {
	case PrintStatusIdle:
		return PrintPhaseIdle
	case PrintStatusHoming,
		PrintStatusDropping,
		PrintStatusFileChecking,
		PrintStatusHeating,
		PrintStatusBedLeveling:
		return PrintPhasePreparing
	case PrintStatusPrinting:
		return PrintPhasePrinting
	case PrintStatusPaused:
		return PrintPhasePaused
	case PrintStatusStopped:
		return PrintPhaseStopped
	case PrintStatusCompleted:
		return PrintPhaseCompleted
	}
	return PrintPhaseUnknown
}

func (p PrintPhase) Pausable() bool {
	return p == PrintPhasePrinting
}

func (p PrintPhase) Resumable() bool {
	return p == PrintPhasePaused
}

// Stoppable reports whether a print can be cancelled. Only a paused
// print can be stopped.
func (p PrintPhase) Stoppable() bool {
	return p == PrintPhasePaused
}
