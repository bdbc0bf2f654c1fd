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

// PostQuery is the filter set accepted by the post list operation. Search is
// matched as a case-sensitive regex against the title; Tags matches documents
// whose tag list intersects the requested set.
type PostQuery struct {
	Type   string
	Tags   []string
	Search string
}

// PostRepository is the persistence contract for blog posts.
type PostRepository interface {
	List(ctx context.Context, q PostQuery, page Page) ([]models.Post, error)
	Count(ctx context.Context, q PostQuery) (int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindByURL(ctx context.Context, url string) (*models.Post, error)
	Insert(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id primitive.ObjectID, changes bson.M) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoPostRepository struct {
	coll *mongo.Collection
}

// NewPostRepository returns a PostRepository backed by the posts collection.
func NewPostRepository(db *mongo.Database) PostRepository {
	return &mongoPostRepository{coll: db.Collection("posts")}
}

func (r *mongoPostRepository) filter(q PostQuery) bson.M {
	filter := bson.M{}
	if q.Type != "" {
		filter["type"] = q.Type
	}
	if q.Search != "" {
		filter["title"] = bson.M{"$regex": q.Search}
	}
	if len(q.Tags) > 0 {
		filter["tags"] = bson.M{"$in": q.Tags}
	}
	return filter
}

func (r *mongoPostRepository) List(ctx context.Context, q PostQuery, page Page) ([]models.Post, error) {
	opts := options.Find().
		SetSort(newestFirst()).
		SetLimit(int64(page.PerPage)).
		SetSkip(page.Skip())
	cur, err := r.coll.Find(ctx, r.filter(q), opts)
	if err != nil {
		return nil, err
	}
	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *mongoPostRepository) Count(ctx context.Context, q PostQuery) (int64, error) {
	return r.coll.CountDocuments(ctx, r.filter(q))
}

func (r *mongoPostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *mongoPostRepository) FindByURL(ctx context.Context, url string) (*models.Post, error) {
	var post models.Post
	err := r.coll.FindOne(ctx, bson.M{"url": url}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *mongoPostRepository) Insert(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.PublishedDate.IsZero() {
		post.PublishedDate = time.Now()
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	_, err := r.coll.InsertOne(ctx, post)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *mongoPostRepository) Update(ctx context.Context, id primitive.ObjectID, changes bson.M) (*models.Post, error) {
	if len(changes) == 0 {
		return r.FindByID(ctx, id)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": changes}, opts).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *mongoPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
