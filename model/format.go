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
	"fmt"
	"time"
)

const justNowSeconds = 5

// FormatTimeAgo renders the time elapsed since ts as "2m 30s ago",
// "42s ago" or "Just now".
func FormatTimeAgo(ts, now time.Time) string {
	diff := now.Sub(ts)
	minutes := int64(diff / time.Minute)
	seconds := int64(diff / time.Second)

	switch {
	case minutes > 0:
		return fmt.Sprintf("%dm %ds ago", minutes, seconds%60)
	case seconds > justNowSeconds:
		return fmt.Sprintf("%ds ago", seconds)
	default:
		return "Just now"
	}
}
