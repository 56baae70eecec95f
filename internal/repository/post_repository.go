package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Hossain-Md-Shahriar/volunteer-management-server/model"
)

// PostRepository owns volunteer-need posts. AdjustSlots is the single
// synchronization point for the capacity invariant: it must apply the delta
// and the non-negative check in one atomic round trip per post.
type PostRepository interface {
	Create(ctx context.Context, p model.Post) (model.Post, error)
	Get(ctx context.Context, id bson.ObjectID) (model.Post, error)
	List(ctx context.Context, search string) ([]model.Post, error)
	ListByOrganizer(ctx context.Context, email string) ([]model.Post, error)
	Update(ctx context.Context, id bson.ObjectID, fields map[string]any) error
	Delete(ctx context.Context, id bson.ObjectID) error
	AdjustSlots(ctx context.Context, id bson.ObjectID, delta int) (int, error)
}

type mongoPostRepo struct {
	col *mongo.Collection
}

func NewMongoPostRepo(db *mongo.Database) PostRepository {
	return &mongoPostRepo{col: db.Collection("posts")}
}

func (r *mongoPostRepo) Create(ctx context.Context, p model.Post) (model.Post, error) {
	p.ID = bson.NewObjectID()
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return model.Post{}, err
	}
	return p, nil
}

func (r *mongoPostRepo) Get(ctx context.Context, id bson.ObjectID) (model.Post, error) {
	var p model.Post
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Post{}, ErrNotFound
	}
	return p, err
}

func (r *mongoPostRepo) List(ctx context.Context, search string) ([]model.Post, error) {
	filter := bson.M{}
	if search != "" {
		filter["postTitle"] = bson.M{"$regex": search, "$options": "i"}
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []model.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *mongoPostRepo) ListByOrganizer(ctx context.Context, email string) ([]model.Post, error) {
	cur, err := r.col.Find(ctx, bson.M{"organizer.email": email})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []model.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *mongoPostRepo) Update(ctx context.Context, id bson.ObjectID, fields map[string]any) error {
	delete(fields, "_id")
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *mongoPostRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustSlots increments slotsRemaining by delta in a single conditional
// update. For a decrement the filter requires enough remaining slots, so the
// non-negative invariant is enforced server-side under any interleaving; a
// separate read-then-write pair would lose updates here.
func (r *mongoPostRepo) AdjustSlots(ctx context.Context, id bson.ObjectID, delta int) (int, error) {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["slotsRemaining"] = bson.M{"$gte": -delta}
	}

	var updated model.Post
	err := r.col.FindOneAndUpdate(ctx,
		filter,
		bson.M{"$inc": bson.M{"slotsRemaining": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == nil {
		return updated.SlotsRemaining, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, err
	}

	// No match: either the post is gone or the decrement would go negative.
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Err(); errors.Is(err, mongo.ErrNoDocuments) {
		return 0, ErrNotFound
	} else if err != nil {
		return 0, err
	}
	return 0, ErrNoSlots
}
