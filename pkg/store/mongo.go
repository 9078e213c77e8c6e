package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/paragon/pkg/errors"
	"github.com/matzehuels/paragon/pkg/stitch"
)

// runDocument is the BSON form of a Run.
type runDocument struct {
	ID         string     `bson:"_id"`
	Class      string     `bson:"class"`
	CreatedAt  time.Time  `bson:"created_at"`
	BoardNames []string   `bson:"board_names"`
	Layouts    [][]string `bson:"layouts"`
	Count      int        `bson:"count"`
}

func toDocument(run *Run) runDocument {
	layouts := make([][]string, len(run.Layouts))
	for i, l := range run.Layouts {
		layouts[i] = []string(l)
	}
	return runDocument{
		ID:         run.ID.String(),
		Class:      run.Class,
		CreatedAt:  run.CreatedAt.UTC(),
		BoardNames: run.BoardNames,
		Layouts:    layouts,
		Count:      len(layouts),
	}
}

func (d runDocument) run() (*Run, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "run id %q", d.ID)
	}
	layouts := make([]stitch.Layout, len(d.Layouts))
	for i, l := range d.Layouts {
		layouts[i] = stitch.Layout(l)
	}
	return &Run{
		ID:         id,
		Class:      d.Class,
		CreatedAt:  d.CreatedAt,
		BoardNames: d.BoardNames,
		Layouts:    layouts,
	}, nil
}

// MongoStore saves runs as documents in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and pings the server before returning.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreFailed, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStoreFailed, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Save inserts run as a single document.
func (s *MongoStore) Save(ctx context.Context, run *Run) error {
	if _, err := s.coll.InsertOne(ctx, toDocument(run)); err != nil {
		return errors.Wrap(errors.ErrCodeStoreFailed, err, "insert run %s", run.ID)
	}
	return nil
}

// List returns up to limit runs of class, newest first. A limit <= 0
// returns every run.
func (s *MongoStore) List(ctx context.Context, class string, limit int) ([]*Run, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.coll.Find(ctx, bson.M{"class": class}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreFailed, err, "find runs of %s", class)
	}
	var docs []runDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreFailed, err, "decode runs of %s", class)
	}

	runs := make([]*Run, 0, len(docs))
	for _, d := range docs {
		r, err := d.run()
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
