package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/builders"
)

// Register client
func init() {
	_ = register(&Mongo{}, "mongo", "mongodb")
}

var _ core.Adapter = (*Mongo)(nil)

// Mongo reads every document of a collection, optionally narrowed by
// an extended JSON filter in the query.
type Mongo struct{}

func (m *Mongo) Connect(params *core.SourceParams) (core.Extractor, error) {
	// get database name from url
	u, err := url.Parse(params.Location)
	if err != nil {
		return nil, fmt.Errorf("mongo: invalid url: %w", err)
	}
	if params.DataKey == "" {
		return nil, errors.New("mongo: data_key must name a collection")
	}

	filter := bson.D{}
	if q := strings.TrimSpace(params.Query); q != "" {
		if err := bson.UnmarshalExtJSON([]byte(q), false, &filter); err != nil {
			return nil, fmt.Errorf("cannot marshal filter: %q to bson: %w", q, err)
		}
	}

	opts := options.Client().ApplyURI(params.Location)
	client, err := mongo.Connect(context.TODO(), opts)
	if err != nil {
		return nil, err
	}

	return &mongoExtractor{
		c:          client,
		dbName:     strings.TrimPrefix(u.Path, "/"),
		collection: params.DataKey,
		filter:     filter,
	}, nil
}

type mongoExtractor struct {
	c          *mongo.Client
	dbName     string
	collection string
	filter     bson.D
}

func (e *mongoExtractor) getCurrentDatabase(ctx context.Context) (string, error) {
	if e.dbName != "" {
		return e.dbName, nil
	}

	dbs, err := e.c.ListDatabaseNames(ctx, bson.D{})
	if err != nil {
		return "", fmt.Errorf("failed to select default database: %w", err)
	}
	if len(dbs) < 1 {
		return "", fmt.Errorf("%w: no databases found", core.ErrNotFound)
	}
	e.dbName = dbs[0]

	return e.dbName, nil
}

func (e *mongoExtractor) Extract(ctx context.Context) ([]core.Record, error) {
	dbName, err := e.getCurrentDatabase(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := e.c.Database(dbName).Collection(e.collection).Find(ctx, e.filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}

	next, hasNext := builders.NextYield(func(yield func(core.Record)) error {
		for cursor.Next(ctx) {
			var doc bson.D
			if err := cursor.Decode(&doc); err != nil {
				return fmt.Errorf("%w: %v", core.ErrParse, err)
			}
			yield(documentToRecord(doc))
		}
		return cursor.Err()
	})

	stream := builders.NewRecordStreamBuilder().
		WithNextFunc(next, hasNext).
		WithHeader(core.Header{"_id"}).
		WithCloseFunc(func() {
			_ = cursor.Close(context.Background())
		}).
		Build()

	return core.Drain(stream)
}

func (e *mongoExtractor) Close() {
	_ = e.c.Disconnect(context.TODO())
}

func documentToRecord(doc bson.D) core.Record {
	pairs := make([]any, 0, 2*len(doc))
	for _, elem := range doc {
		pairs = append(pairs, elem.Key, bsonValue(elem.Value))
	}
	return core.NewRecord(pairs...)
}

// bsonValue converts bson specific values into plain values.
func bsonValue(val any) any {
	switch v := val.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case primitive.DateTime:
		return v.Time().UTC()
	case primitive.Decimal128:
		return v.String()
	case primitive.Null, primitive.Undefined:
		return nil
	case bson.D:
		return documentToRecord(v)
	case bson.A:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, bsonValue(item))
		}
		return out
	default:
		return v
	}
}
