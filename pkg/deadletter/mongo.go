package deadletter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/stayforge/hotelops/pkg/queue"
)

// DefaultMongoCollection is the collection MongoSink writes to.
const DefaultMongoCollection = "dead_letters"

// MongoSink persists dead letters in a MongoDB collection. Jobs are stored
// as native documents rather than opaque blobs, so payload fields stay
// queryable from the shell.
type MongoSink struct {
	coll *mongo.Collection
}

// MongoSinkOption configures a MongoSink.
type MongoSinkOption func(*mongoSinkConfig)

type mongoSinkConfig struct {
	collection string
}

// WithMongoCollection overrides the target collection name.
func WithMongoCollection(collection string) MongoSinkOption {
	return func(cfg *mongoSinkConfig) {
		if collection != "" {
			cfg.collection = collection
		}
	}
}

// NewMongoSink creates a sink writing to the given database.
func NewMongoSink(db *mongo.Database, opts ...MongoSinkOption) (*MongoSink, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: nil mongo database", ErrFailedToCreateSink)
	}

	cfg := mongoSinkConfig{collection: DefaultMongoCollection}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &MongoSink{coll: db.Collection(cfg.collection)}, nil
}

type mongoEntry struct {
	ID       bson.ObjectID `bson:"_id,omitempty"`
	Queue    string        `bson:"queue"`
	Job      bson.M        `bson:"job"`
	Error    string        `bson:"error"`
	FailedAt time.Time     `bson:"failed_at"`
}

func (s *MongoSink) Store(ctx context.Context, entry queue.DeadLetter) error {
	job, err := jobToDocument(entry.Job)
	if err != nil {
		return errors.Join(ErrFailedToStoreEntry, err)
	}

	doc := mongoEntry{
		Queue:    entry.Job.Queue,
		Job:      job,
		Error:    entry.Error,
		FailedAt: entry.FailedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return errors.Join(ErrFailedToStoreEntry, err)
	}
	return nil
}

func (s *MongoSink) List(ctx context.Context, queueName string, limit int) ([]queue.DeadLetter, error) {
	filter := bson.M{}
	if queueName != "" {
		filter["queue"] = queueName
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "failed_at", Value: -1}})
	if limit > 0 {
		findOpts = findOpts.SetLimit(int64(limit))
	}

	cursor, err := s.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, errors.Join(ErrFailedToListEntries, err)
	}
	defer cursor.Close(ctx)

	var docs []mongoEntry
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrFailedToListEntries, err)
	}

	entries := make([]queue.DeadLetter, 0, len(docs))
	for _, doc := range docs {
		job, err := documentToJob(doc.Job)
		if err != nil {
			return nil, errors.Join(ErrFailedToDecodeEntry, err)
		}
		entries = append(entries, queue.DeadLetter{
			Job:      job,
			Error:    doc.Error,
			FailedAt: doc.FailedAt,
		})
	}
	return entries, nil
}

// jobToDocument converts a job into a BSON document via its JSON form, which
// keeps the stored shape identical to what the API and file sinks emit.
func jobToDocument(job queue.Job) (bson.M, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func documentToJob(doc bson.M) (queue.Job, error) {
	data, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return queue.Job{}, err
	}
	var job queue.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return queue.Job{}, err
	}
	return job, nil
}

var _ queue.DeadLetterSink = (*MongoSink)(nil)
