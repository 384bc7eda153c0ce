package storage

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const serverSelectionTimeout = 3 * time.Second

type mongoLog struct {
	col *mongo.Collection
}

func (l *mongoLog) Insert(ctx context.Context, rec DetectionRecord) error {
	_, err := l.col.InsertOne(ctx, rec)
	return err
}

// Connect opens the Mongo client and verifies it with a ping. When the
// store is unreachable the log degrades to disabled for the process
// lifetime; no retries, no queuing.
func Connect(ctx context.Context, uri, db, collection string) DetectionLog {
	client, err := mongo.Connect(options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTimeout))
	if err != nil {
		slog.Warn("could not create MongoDB client, detection log disabled",
			slog.String("error", err.Error()))
		return Disabled()
	}

	pingCtx, cancel := context.WithTimeout(ctx, serverSelectionTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		slog.Warn("could not reach MongoDB, detection log disabled",
			slog.String("uri", uri),
			slog.String("error", err.Error()))
		return Disabled()
	}

	slog.Info("connected to MongoDB", slog.String("uri", uri), slog.String("db", db))
	return &mongoLog{col: client.Database(db).Collection(collection)}
}
