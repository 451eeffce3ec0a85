package theme

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/matzehuels/tilestack/pkg/errors"
	"github.com/matzehuels/tilestack/pkg/tileset"
)

// MongoOptions configures a [MongoCatalog].
type MongoOptions struct {
	URI        string
	Database   string
	Collection string

	// Timeout bounds connecting and each query. Zero means 5s.
	Timeout time.Duration
}

// themeDocument is the stored form of a theme: the theme fields inline with
// the id as the document key.
type themeDocument struct {
	ID            string `bson:"_id"`
	tileset.Theme `bson:",inline"`
}

// MongoCatalog stores one theme per document in a MongoDB collection.
type MongoCatalog struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoCatalog connects to MongoDB and pings the primary.
func NewMongoCatalog(ctx context.Context, opts MongoOptions) (*MongoCatalog, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect to mongo")
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "ping mongo")
	}

	return &MongoCatalog{
		client:  client,
		coll:    client.Database(opts.Database).Collection(opts.Collection),
		timeout: opts.Timeout,
	}, nil
}

// IDs lists the stored theme ids, sorted.
func (c *MongoCatalog) IDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	find := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 1}}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := c.coll.Find(ctx, bson.D{}, find)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "list themes")
	}

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "list themes")
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

// Theme loads the document with _id == id.
func (c *MongoCatalog) Theme(ctx context.Context, id string) (*tileset.Theme, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var doc themeDocument
	err := c.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, NotFound(id, err)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "load theme %s", id)
	}
	return &doc.Theme, nil
}

// Put inserts or replaces the theme stored under id.
func (c *MongoCatalog) Put(ctx context.Context, id string, t *tileset.Theme) error {
	if err := errs.ValidateThemeID(id); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	doc := themeDocument{ID: id, Theme: *t}
	_, err := c.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errs.Wrap(errs.ErrCodeNetwork, err, "store theme %s", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (c *MongoCatalog) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

var _ Catalog = (*MongoCatalog)(nil)
