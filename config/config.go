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

package config

import (
	"github.com/mendersoftware/go-lib-micro/config"
)

const (
	// SettingListen is the config key for the listen address
	SettingListen = "listen"
	// SettingListenDefault is the default value for the listen address
	SettingListenDefault = "127.0.0.1:8080"

	// SettingAcceptedOrigins is the config key for the origins allowed to
	// use the API; an empty list allows any origin
	SettingAcceptedOrigins = "accepted_origins"

	// SettingNatsURI is the config key for the nats uri; an empty value
	// disables event publishing
	SettingNatsURI = "nats_uri"
	// SettingNatsURIDefault is the default value for the nats uri
	SettingNatsURIDefault = ""

	// SettingStore is the config key selecting the persistence backend
	SettingStore = "store"
	// SettingStoreDefault is the default persistence backend
	SettingStoreDefault = StoreFile

	// SettingStorePath is the config key for the file store location
	SettingStorePath = "store_path"
	// SettingStorePathDefault is the default file store location
	SettingStorePathDefault = "/var/lib/printerconnect/printers.json"

	// SettingMongo is the config key for the mongo URL
	SettingMongo = "mongo_url"
	// SettingMongoDefault is the default value for the mongo URL
	SettingMongoDefault = "mongodb://localhost:27017"

	// SettingDbName is the config key for the mongo database name
	SettingDbName = "mongo_dbname"
	// SettingDbNameDefault is the default value for the mongo database name
	SettingDbNameDefault = "printerconnect"

	// SettingDbSSL is the config key for the mongo SSL setting
	SettingDbSSL = "mongo_ssl"
	// SettingDbSSLDefault is the default value for the mongo SSL setting
	SettingDbSSLDefault = false

	// SettingDbSSLSkipVerify is the config key for the mongo SSL skip verify setting
	SettingDbSSLSkipVerify = "mongo_ssl_skipverify"
	// SettingDbSSLSkipVerifyDefault is the default value for the mongo SSL skip verify setting
	SettingDbSSLSkipVerifyDefault = false

	// SettingDbUsername is the config key for the mongo username
	SettingDbUsername = "mongo_username"

	// SettingDbPassword is the config key for the mongo password
	SettingDbPassword = "mongo_password"

	// SettingDebugLog is the config key for the turning on the debug log
	SettingDebugLog = "debug_log"
	// SettingDebugLogDefault is the default value for the debug log enabling
	SettingDebugLogDefault = false

	// SettingConnectTimeout is the config key for the printer connect
	// watchdog, in milliseconds
	SettingConnectTimeout = "connect_timeout_ms"
	// SettingConnectTimeoutDefault is the default connect watchdog
	SettingConnectTimeoutDefault = 3000

	// SettingStatusInterval is the config key for the status poll
	// interval, in milliseconds
	SettingStatusInterval = "status_interval_ms"
	// SettingStatusIntervalDefault is the default status poll interval
	SettingStatusIntervalDefault = 30000

	// SettingWriteWait is the config key for the websocket write
	// deadline, in milliseconds
	SettingWriteWait = "write_wait_ms"
	// SettingWriteWaitDefault is the default websocket write deadline
	SettingWriteWaitDefault = 10000
)

// Persistence backends
const (
	StoreFile  = "file"
	StoreMongo = "mongo"
)

var (
	// Defaults are the default configuration settings
	Defaults = []config.Default{
		{Key: SettingListen, Value: SettingListenDefault},
		{Key: SettingAcceptedOrigins, Value: []string{}},
		{Key: SettingNatsURI, Value: SettingNatsURIDefault},
		{Key: SettingStore, Value: SettingStoreDefault},
		{Key: SettingStorePath, Value: SettingStorePathDefault},
		{Key: SettingMongo, Value: SettingMongoDefault},
		{Key: SettingDbName, Value: SettingDbNameDefault},
		{Key: SettingDbSSL, Value: SettingDbSSLDefault},
		{Key: SettingDbSSLSkipVerify, Value: SettingDbSSLSkipVerifyDefault},
		{Key: SettingDebugLog, Value: SettingDebugLogDefault},
		{Key: SettingConnectTimeout, Value: SettingConnectTimeoutDefault},
		{Key: SettingStatusInterval, Value: SettingStatusIntervalDefault},
		{Key: SettingWriteWait, Value: SettingWriteWaitDefault},
	}
)
