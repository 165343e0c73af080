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
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const HdrKeyOrigin = "Origin"

func allowAllOrigins(r *http.Request) bool { return true }

// newOriginChecker returns the websocket origin check accepting the given
// origins; an empty list accepts every origin.
func newOriginChecker(origins []string) func(r *http.Request) bool {
	switch len(origins) {
	case 0:
		return allowAllOrigins
	case 1:
		origin := origins[0]
		return func(r *http.Request) bool {
			if actual, ok := r.Header[HdrKeyOrigin]; ok {
				return len(actual) > 0 && origin == actual[0]
			}
			// Origin header not present
			return true
		}
	default:
		// Compile a hashmap of valid origins for fast lookup
		originSet := make(map[string]struct{}, len(origins))
		for _, origin := range origins {
			originSet[origin] = struct{}{}
		}
		return func(r *http.Request) bool {
			if actual, ok := r.Header[HdrKeyOrigin]; ok {
				if len(actual) == 0 {
					return false
				}
				_, allowed := originSet[actual[0]]
				return allowed
			}
			// Origin header not present
			return true
		}
	}
}

// newCORSMiddleware allows the UI served from one of origins to call the
// API
func newCORSMiddleware(origins []string) gin.HandlerFunc {
	conf := cors.Config{
		AllowHeaders: []string{
			"Accept",
			"Allow",
			"Content-Type",
			"Origin",
			"Accept-Encoding",
			"Access-Control-Request-Headers",
			"Header-Access-Control-Request",
		},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowWebSockets: true,
		ExposeHeaders: []string{
			"Location",
		},
		MaxAge: time.Hour * 12,
	}
	if len(origins) == 0 {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = origins
	}
	return cors.New(conf)
}
