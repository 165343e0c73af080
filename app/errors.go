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

package app

import "github.com/pkg/errors"

// App errors
var (
	ErrPrinterNotFound  = errors.New("printer not found")
	ErrDuplicatePrinter = errors.New("a printer with the same address is already registered")
	ErrSendWhileClosed  = errors.New("printer connection is not open")
	ErrActionNotAllowed = errors.New("action not allowed in the current print phase")
	ErrInvalidFanSpeed  = errors.New("fan speed must be between 0 and 100")
	ErrManagerClosed    = errors.New("printer manager is shut down")
)
