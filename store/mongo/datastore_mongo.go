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
	"crypto/tls"
	"strings"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/mendersoftware/go-lib-micro/mongo/migrate"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	dconfig "github.com/mendersoftware/printerconnect/config"
	"github.com/mendersoftware/printerconnect/model"
	"github.com/mendersoftware/printerconnect/store"
)

const (
	// DbVersion is the current schema version
	DbVersion = "1.0.0"

	// KeyValueCollectionName refers to the collection of durable keys
	KeyValueCollectionName = "kv"

	dbFieldID    = "_id"
	dbFieldValue = "value"
)

type kvPrinters struct {
	Key      string          `bson:"_id"`
	Printers []model.Printer `bson:"value"`
}

// SetupDataStore returns the mongo data store and optionally runs migrations
func SetupDataStore(automigrate bool) (*DataStoreMongo, error) {
	ctx := context.Background()
	dbClient, err := NewClient(ctx, config.Config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to db")
	}
	dataStore := NewDataStoreWithClient(dbClient, config.Config)
	err = Migrate(ctx, dataStore.dbName, DbVersion, dbClient, automigrate)
	if err != nil {
		disconnectClient(ctx, dbClient)
		return nil, err
	}
	return dataStore, nil
}

// Migrate brings the database db up to version
func Migrate(ctx context.Context,
	db string,
	version string,
	client *mongo.Client,
	automigrate bool) error {
	l := log.FromContext(ctx)
	l.Infof("migrating %s", db)

	m := migrate.SimpleMigrator{
		Client:      client,
		Db:          db,
		Automigrate: automigrate,
	}
	ver, err := migrate.NewVersion(version)
	if err != nil {
		return errors.Wrap(err, "failed to parse service version")
	}
	migrations := []migrate.Migration{
		&migration1_0_0{
			client: client,
			db:     db,
		},
	}
	if err = m.Apply(ctx, *ver, migrations); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}
	return nil
}

func disconnectClient(parentCtx context.Context, client *mongo.Client) {
	ctx, cancel := context.WithTimeout(parentCtx, 1*time.Second)
	defer cancel()
	_ = client.Disconnect(ctx)
}

// NewClient returns a mongo client
func NewClient(ctx context.Context, c config.Reader) (*mongo.Client, error) {

	clientOptions := mopts.Client()
	mongoURL := c.GetString(dconfig.SettingMongo)
	if !strings.Contains(mongoURL, "://") {
		return nil, errors.Errorf("Invalid mongoURL %q: missing schema.",
			mongoURL)
	}
	clientOptions.ApplyURI(mongoURL)

	username := c.GetString(dconfig.SettingDbUsername)
	if username != "" {
		credentials := mopts.Credential{
			Username: username,
		}
		password := c.GetString(dconfig.SettingDbPassword)
		if password != "" {
			credentials.Password = password
			credentials.PasswordSet = true
		}
		clientOptions.SetAuth(credentials)
	}

	if c.GetBool(dconfig.SettingDbSSL) {
		tlsConfig := &tls.Config{}
		tlsConfig.InsecureSkipVerify = c.GetBool(dconfig.SettingDbSSLSkipVerify)
		clientOptions.SetTLSConfig(tlsConfig)
	}

	// Acknowledge after the write is committed to the journal.
	clientOptions.SetWriteConcern(writeconcern.New(
		writeconcern.W(1), writeconcern.J(true),
	))

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to connect to mongo server")
	}

	// Validate connection
	if err = client.Ping(ctx, nil); err != nil {
		disconnectClient(context.Background(), client)
		return nil, errors.Wrap(err, "Error reaching mongo server")
	}

	return client, nil
}

// DataStoreMongo is the data storage service
type DataStoreMongo struct {
	// client holds the reference to the client used to communicate with the
	// mongodb server.
	client *mongo.Client
	// dbName contains the name of the printerconnect database.
	dbName string
}

// NewDataStoreWithClient initializes a DataStore object
func NewDataStoreWithClient(client *mongo.Client, c config.Reader) *DataStoreMongo {
	dbName := c.GetString(dconfig.SettingDbName)
	if dbName == "" {
		dbName = dconfig.SettingDbNameDefault
	}

	return &DataStoreMongo{
		client: client,
		dbName: dbName,
	}
}

// Ping verifies the connection to the database
func (db *DataStoreMongo) Ping(ctx context.Context) error {
	res := db.client.Database(db.dbName).RunCommand(ctx, bson.M{"ping": 1})
	return res.Err()
}

// GetPrinters returns the stored printer list, empty when none was saved
func (db *DataStoreMongo) GetPrinters(ctx context.Context) ([]model.Printer, error) {
	coll := db.client.Database(db.dbName).Collection(KeyValueCollectionName)

	doc := kvPrinters{}
	err := coll.FindOne(ctx, bson.M{dbFieldID: store.PrintersKey}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return []model.Printer{}, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "mongo: failed to load printers")
	}
	if doc.Printers == nil {
		doc.Printers = []model.Printer{}
	}
	return doc.Printers, nil
}

// SavePrinters replaces the stored printer list
func (db *DataStoreMongo) SavePrinters(ctx context.Context, printers []model.Printer) error {
	coll := db.client.Database(db.dbName).Collection(KeyValueCollectionName)

	if printers == nil {
		printers = []model.Printer{}
	}
	updateOpts := mopts.Update().SetUpsert(true)
	_, err := coll.UpdateOne(ctx,
		bson.M{dbFieldID: store.PrintersKey},
		bson.M{"$set": bson.M{dbFieldValue: printers}},
		updateOpts,
	)
	return errors.Wrap(err, "mongo: failed to save printers")
}

// Close disconnects the client
func (db *DataStoreMongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := db.client.Disconnect(ctx)
	return err
}
