package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hanuiwon/clinic-api/models"
)

// CounsellingRepository is the persistence contract for online counselling
// threads and their embedded comments.
type CounsellingRepository interface {
	List(ctx context.Context, search string, page Page) ([]models.OnlineCounselling, error)
	Count(ctx context.Context, search string) (int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.OnlineCounselling, error)
	Insert(ctx context.Context, counselling *models.OnlineCounselling) error
	Update(ctx context.Context, id primitive.ObjectID, changes bson.M) (*models.OnlineCounselling, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AppendComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) (*models.OnlineCounselling, error)
}

type mongoCounsellingRepository struct {
	coll *mongo.Collection
}

// NewCounsellingRepository returns a CounsellingRepository backed by the
// onlinecounsellings collection.
func NewCounsellingRepository(db *mongo.Database) CounsellingRepository {
	return &mongoCounsellingRepository{coll: db.Collection("onlinecounsellings")}
}

func (r *mongoCounsellingRepository) filter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	return bson.M{"$or": bson.A{
		bson.M{"title": bson.M{"$regex": search}},
		bson.M{"writer": bson.M{"$regex": search}},
	}}
}

func (r *mongoCounsellingRepository) List(ctx context.Context, search string, page Page) ([]models.OnlineCounselling, error) {
	opts := options.Find().
		SetSort(newestFirst()).
		SetLimit(int64(page.PerPage)).
		SetSkip(page.Skip())
	cur, err := r.coll.Find(ctx, r.filter(search), opts)
	if err != nil {
		return nil, err
	}
	counsellings := []models.OnlineCounselling{}
	if err := cur.All(ctx, &counsellings); err != nil {
		return nil, err
	}
	return counsellings, nil
}

func (r *mongoCounsellingRepository) Count(ctx context.Context, search string) (int64, error) {
	return r.coll.CountDocuments(ctx, r.filter(search))
}

func (r *mongoCounsellingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.OnlineCounselling, error) {
	var counselling models.OnlineCounselling
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&counselling)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &counselling, nil
}

func (r *mongoCounsellingRepository) Insert(ctx context.Context, counselling *models.OnlineCounselling) error {
	if counselling.ID.IsZero() {
		counselling.ID = primitive.NewObjectID()
	}
	if counselling.RegisteredDate.IsZero() {
		counselling.RegisteredDate = time.Now()
	}
	if counselling.Comments == nil {
		counselling.Comments = []models.Comment{}
	}
	_, err := r.coll.InsertOne(ctx, counselling)
	return err
}

func (r *mongoCounsellingRepository) Update(ctx context.Context, id primitive.ObjectID, changes bson.M) (*models.OnlineCounselling, error) {
	if len(changes) == 0 {
		return r.FindByID(ctx, id)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var counselling models.OnlineCounselling
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": changes}, opts).Decode(&counselling)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &counselling, nil
}

func (r *mongoCounsellingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// AppendComment pushes the comment onto the parent's list in a single atomic
// update and returns the new parent state. A missing parent reports ErrNotFound.
func (r *mongoCounsellingRepository) AppendComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) (*models.OnlineCounselling, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var counselling models.OnlineCounselling
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"comments": comment}}, opts).Decode(&counselling)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &counselling, nil
}
