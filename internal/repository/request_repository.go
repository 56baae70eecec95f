package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Hossain-Md-Shahriar/volunteer-management-server/model"
)

// RequestRepository owns volunteer requests. Insert reports ErrDuplicate when
// the (postId, volunteer.email) unique index rejects the document, which is
// what closes the check-then-insert race between concurrent applies.
type RequestRepository interface {
	Insert(ctx context.Context, req model.VolunteerRequest) (model.VolunteerRequest, error)
	FindByID(ctx context.Context, id bson.ObjectID) (model.VolunteerRequest, error)
	FindByPostAndEmail(ctx context.Context, postID bson.ObjectID, email string) (model.VolunteerRequest, error)
	ListByVolunteer(ctx context.Context, email string) ([]model.VolunteerRequest, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

// MongoRequestRepo implements RequestRepository over the requests collection.
// Exported so main can run EnsureIndexes once at startup.
type MongoRequestRepo struct {
	col *mongo.Collection
}

func NewMongoRequestRepo(db *mongo.Database) *MongoRequestRepo {
	return &MongoRequestRepo{col: db.Collection("requests")}
}

func (r *MongoRequestRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "postId", Value: 1}, {Key: "volunteer.email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_post_volunteer"),
		},
		{
			Keys:    bson.D{{Key: "volunteer.email", Value: 1}},
			Options: options.Index().SetName("volunteer_email"),
		},
	})
	return err
}

func (r *MongoRequestRepo) Insert(ctx context.Context, req model.VolunteerRequest) (model.VolunteerRequest, error) {
	req.ID = bson.NewObjectID()
	_, err := r.col.InsertOne(ctx, req)
	if err == nil {
		return req, nil
	}
	var we mongo.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 && we.WriteErrors[0].Code == 11000 {
		return model.VolunteerRequest{}, ErrDuplicate
	}
	return model.VolunteerRequest{}, err
}

func (r *MongoRequestRepo) FindByID(ctx context.Context, id bson.ObjectID) (model.VolunteerRequest, error) {
	var req model.VolunteerRequest
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.VolunteerRequest{}, ErrNotFound
	}
	return req, err
}

func (r *MongoRequestRepo) FindByPostAndEmail(ctx context.Context, postID bson.ObjectID, email string) (model.VolunteerRequest, error) {
	var req model.VolunteerRequest
	err := r.col.FindOne(ctx, bson.M{"postId": postID, "volunteer.email": email}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.VolunteerRequest{}, ErrNotFound
	}
	return req, err
}

func (r *MongoRequestRepo) ListByVolunteer(ctx context.Context, email string) ([]model.VolunteerRequest, error) {
	cur, err := r.col.Find(ctx, bson.M{"volunteer.email": email})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	reqs := []model.VolunteerRequest{}
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *MongoRequestRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
