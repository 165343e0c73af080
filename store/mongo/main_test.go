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

package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	dconfig "github.com/mendersoftware/printerconnect/config"
)

// envMongoURL points the tests at a disposable mongod
const (
	envMongoURL = "TEST_MONGO_URL"
	testDbName  = "printerconnect_test"
)

// testDB returns a client to a freshly dropped test database. The test is
// skipped in short mode or when no server is configured.
func testDB(t *testing.T) (*mongo.Client, config.Reader) {
	if testing.Short() {
		t.Skipf("skipping %s in short mode.", t.Name())
	}
	url := os.Getenv(envMongoURL)
	if url == "" {
		t.Skipf("skipping %s: %s is not set", t.Name(), envMongoURL)
	}

	c := config.Config
	c.Set(dconfig.SettingMongo, url)
	c.Set(dconfig.SettingDbName, testDbName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := NewClient(ctx, c)
	require.NoError(t, err)
	require.NoError(t, client.Database(testDbName).Drop(ctx))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Database(testDbName).Drop(ctx)
		disconnectClient(ctx, client)
	})
	return client, c
}
