package recipes

import (
	"context"
	"errors"

	"recipebook/db"
	"recipebook/models"
	"recipebook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no recipe matches the given id.
var ErrNotFound = errors.New("recipe not found")

// Store is everything the handlers need from persistence. Every mutation is
// a single-document operation; there is no caching and no cross-document
// coordination.
type Store interface {
	List(ctx context.Context, cuisine string) ([]models.Recipe, error)
	Top(ctx context.Context, limit int) ([]models.Recipe, error)
	ByUser(ctx context.Context, userID string) ([]models.Recipe, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*models.Recipe, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	// Like adds userID to the recipe's likedBy set and bumps the counter as
	// one conditional operation. It reports false without touching the
	// document when userID already liked the recipe, so the count can never
	// drift from the set, even under concurrent duplicates.
	Like(ctx context.Context, id primitive.ObjectID, userID string) (bool, error)
	Cuisines(ctx context.Context) ([]string, error)
}

// MongoStore is the production Store over the recipes collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(d *db.DB) *MongoStore {
	return &MongoStore{coll: d.Recipes}
}

func (s *MongoStore) List(ctx context.Context, cuisine string) ([]models.Recipe, error) {
	filter := bson.M{}
	if cuisine != "" {
		filter["cuisine"] = cuisine
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return utils.FindAndDecode[models.Recipe](ctx, s.coll, filter, opts)
}

func (s *MongoStore) Top(ctx context.Context, limit int) ([]models.Recipe, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "likes", Value: -1}}).
		SetLimit(int64(limit))
	return utils.FindAndDecode[models.Recipe](ctx, s.coll, bson.M{}, opts)
}

func (s *MongoStore) ByUser(ctx context.Context, userID string) ([]models.Recipe, error) {
	return utils.FindAndDecode[models.Recipe](ctx, s.coll, bson.M{"userId": userID})
}

func (s *MongoStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *MongoStore) Create(ctx context.Context, recipe *models.Recipe) (primitive.ObjectID, error) {
	result, err := s.coll.InsertOne(ctx, recipe)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (s *MongoStore) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*models.Recipe, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Recipe
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		opts,
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

func (s *MongoStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"userId": userID})
}

func (s *MongoStore) Like(ctx context.Context, id primitive.ObjectID, userID string) (bool, error) {
	// The likedBy guard in the filter makes increment-and-add atomic: a
	// duplicate like matches nothing instead of bumping the counter twice.
	result, err := s.coll.UpdateOne(ctx,
		bson.M{
			"_id":     id,
			"userId":  bson.M{"$ne": userID},
			"likedBy": bson.M{"$ne": userID},
		},
		bson.M{
			"$inc":      bson.M{"likes": 1},
			"$addToSet": bson.M{"likedBy": userID},
		},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

func (s *MongoStore) Cuisines(ctx context.Context) ([]string, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"cuisines": bson.M{"$addToSet": "$cuisine"},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []struct {
		Cuisines []string `bson:"cuisines"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return []string{}, nil
	}
	return result[0].Cuisines, nil
}
