package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tokenlore/storyd/pkg/errors"
	"github.com/tokenlore/storyd/pkg/logger"
)

func newMongo[T any](
	ctx context.Context,
	cfg MongoConfig,
	collection string,
	log logger.Logger,
) (*mongoRepo[T], error) {
	client, err := mongo.Connect(
		ctx,
		options.Client().
			ApplyURI(cfg.URL).
			SetTimeout(cfg.Timeout).
			SetAuth(options.Credential{
				Username: cfg.Auth.Username,
				Password: cfg.Auth.Password,
			}),
	)
	if err != nil {
		return nil, errors.WrapFail(err, "connect to mongo db")
	}

	return &mongoRepo[T]{
		coll: client.Database(cfg.Database).Collection(collection),
		log:  log.With("mongo_repo"),
	}, nil
}

// document wraps stored values so filters can address their fields under a
// stable prefix, independent of the value type.
type document[T any] struct {
	OID primitive.ObjectID `bson:"_id,omitempty"`
	Doc T                  `bson:"doc"`
}

type mongoRepo[T any] struct {
	coll *mongo.Collection
	log  logger.Logger
}

func (m *mongoRepo[T]) Insert(ctx context.Context, data T) (string, error) {
	result, err := m.coll.InsertOne(ctx, document[T]{Doc: data})
	if err != nil {
		return "", errors.WrapFail(err, "insert document")
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.Error("bad inserted id type")
	}

	return oid.Hex(), nil
}

func (m *mongoRepo[T]) Select(ctx context.Context, filters ...Filter) ([]T, error) {
	f := buildFilter(filters)

	match, err := m.matchExpr(f)
	if err != nil {
		return nil, err
	}

	// ObjectIDs are generated in insertion order, which Select promises.
	cur, err := m.coll.Find(ctx, match, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.WrapFail(err, "find documents")
	}

	defer func() {
		err := cur.Close(ctx)
		if err != nil {
			m.log.Warn(errors.WrapFail(err, "close cursor"))
		}
	}()

	var selected []T
	for cur.Next(ctx) {
		var doc document[T]

		err := cur.Decode(&doc)
		if err != nil {
			return nil, errors.WrapFail(err, "decode document")
		}

		if f.fn != nil && !f.fn(doc.Doc) {
			continue
		}

		selected = append(selected, doc.Doc)
	}

	if cur.Err() != nil {
		return nil, errors.WrapFail(cur.Err(), "iterate documents")
	}

	return selected, nil
}

func (m *mongoRepo[T]) Update(ctx context.Context, update func(*T), filters ...Filter) error {
	f := buildFilter(filters)

	match, err := m.matchExpr(f)
	if err != nil {
		return err
	}

	cur, err := m.coll.Find(ctx, match)
	if err != nil {
		return errors.WrapFail(err, "find documents to update")
	}

	var docs []document[T]
	err = cur.All(ctx, &docs)
	if err != nil {
		return errors.WrapFail(err, "decode documents to update")
	}

	var errs []error
	for i := range docs {
		if f.fn != nil && !f.fn(docs[i].Doc) {
			continue
		}

		update(&docs[i].Doc)

		_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": docs[i].OID}, docs[i])
		if err != nil {
			errs = append(errs, errors.WrapFailf(err, "replace document %s", docs[i].OID.Hex()))
		}
	}

	return errors.Collapse(errs)
}

func (m *mongoRepo[T]) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, errors.WrapFail(err, "parse document id")
	}

	result, err := m.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, errors.WrapFail(err, "delete document by id")
	}

	return result.DeletedCount == 1, nil
}

func (m *mongoRepo[T]) Close(ctx context.Context) error {
	err := m.coll.Database().Client().Disconnect(ctx)
	return errors.WrapFail(err, "close mongo db connection")
}

func (m *mongoRepo[T]) matchExpr(f filter) (bson.M, error) {
	match := bson.M{}

	if f.id != nil {
		oid, err := primitive.ObjectIDFromHex(*f.id)
		if err != nil {
			return nil, errors.WrapFail(err, "parse document id")
		}
		match["_id"] = oid
	}

	for name, value := range f.fields {
		match["doc."+name] = value
	}

	return match, nil
}
