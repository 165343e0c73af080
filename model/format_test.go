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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	testCases := map[string]struct {
		Elapsed  time.Duration
		Expected string
	}{
		"just now":        {Elapsed: 2 * time.Second, Expected: "Just now"},
		"five seconds":    {Elapsed: 5*time.Second + 900*time.Millisecond, Expected: "Just now"},
		"six seconds":     {Elapsed: 6 * time.Second, Expected: "6s ago"},
		"under a minute":  {Elapsed: 59 * time.Second, Expected: "59s ago"},
		"minute and half": {Elapsed: 90 * time.Second, Expected: "1m 30s ago"},
		"long ago":        {Elapsed: 2*time.Hour + 5*time.Second, Expected: "120m 5s ago"},
		"in the future":   {Elapsed: -time.Minute, Expected: "Just now"},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, FormatTimeAgo(now.Add(-tc.Elapsed), now))
		})
	}
}
