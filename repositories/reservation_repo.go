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

// ReservationRepository is the persistence contract for appointment requests.
type ReservationRepository interface {
	List(ctx context.Context, search string, page Page) ([]models.Reservation, error)
	Count(ctx context.Context, search string) (int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error)
	Insert(ctx context.Context, reservation *models.Reservation) error
	Update(ctx context.Context, id primitive.ObjectID, changes bson.M) (*models.Reservation, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoReservationRepository struct {
	coll *mongo.Collection
}

// NewReservationRepository returns a ReservationRepository backed by the
// reservations collection.
func NewReservationRepository(db *mongo.Database) ReservationRepository {
	return &mongoReservationRepository{coll: db.Collection("reservations")}
}

func (r *mongoReservationRepository) filter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	return bson.M{"$or": bson.A{
		bson.M{"info.name": bson.M{"$regex": search}},
		bson.M{"info.phone": bson.M{"$regex": search}},
	}}
}

func (r *mongoReservationRepository) List(ctx context.Context, search string, page Page) ([]models.Reservation, error) {
	opts := options.Find().
		SetSort(newestFirst()).
		SetLimit(int64(page.PerPage)).
		SetSkip(page.Skip())
	cur, err := r.coll.Find(ctx, r.filter(search), opts)
	if err != nil {
		return nil, err
	}
	reservations := []models.Reservation{}
	if err := cur.All(ctx, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *mongoReservationRepository) Count(ctx context.Context, search string) (int64, error) {
	return r.coll.CountDocuments(ctx, r.filter(search))
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *mongoReservationRepository) Insert(ctx context.Context, reservation *models.Reservation) error {
	if reservation.ID.IsZero() {
		reservation.ID = primitive.NewObjectID()
	}
	if reservation.PublishedDate.IsZero() {
		reservation.PublishedDate = time.Now()
	}
	if reservation.Inquiries == nil {
		reservation.Inquiries = []string{}
	}
	if reservation.Symptoms == nil {
		reservation.Symptoms = []string{}
	}
	_, err := r.coll.InsertOne(ctx, reservation)
	return err
}

func (r *mongoReservationRepository) Update(ctx context.Context, id primitive.ObjectID, changes bson.M) (*models.Reservation, error) {
	if len(changes) == 0 {
		return r.FindByID(ctx, id)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var reservation models.Reservation
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": changes}, opts).Decode(&reservation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *mongoReservationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
