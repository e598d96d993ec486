package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/evolfitness/booking-system/internal/core/domain"
)

const classesCollection = "clases"

// ClassRepository implements ports.ClassRepository on the clases collection.
// Roster mutations are single-document $addToSet / $pull updates, so they
// are atomic with respect to concurrent requests against the same class.
type ClassRepository struct {
	coll *mongo.Collection
}

func NewClassRepository(db *mongo.Database) *ClassRepository {
	return &ClassRepository{coll: db.Collection(classesCollection)}
}

type mongoClass struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty"`
	Name              string               `bson:"nombre"`
	Description       string               `bson:"descripcion"`
	ScheduledAt       time.Time            `bson:"fechaHora"`
	Capacity          int                  `bson:"plazasMaximas"`
	Image             string               `bson:"imagen"`
	Enrolled          []primitive.ObjectID `bson:"inscritos"`
	LateCancellations []primitive.ObjectID `bson:"cancelaciones"`
}

func (mc *mongoClass) toDomain() *domain.Class {
	enrolled := make([]string, 0, len(mc.Enrolled))
	for _, oid := range mc.Enrolled {
		enrolled = append(enrolled, oid.Hex())
	}
	cancellations := make([]string, 0, len(mc.LateCancellations))
	for _, oid := range mc.LateCancellations {
		cancellations = append(cancellations, oid.Hex())
	}
	return &domain.Class{
		ID:                mc.ID.Hex(),
		Name:              mc.Name,
		Description:       mc.Description,
		ScheduledAt:       mc.ScheduledAt,
		Capacity:          mc.Capacity,
		Image:             mc.Image,
		Enrolled:          enrolled,
		LateCancellations: cancellations,
	}
}

// EnsureIndexes creates the listing and roster-lookup indexes.
func (r *ClassRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "fechaHora", Value: 1}}},
		{Keys: bson.D{{Key: "inscritos", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ClassRepository) Insert(ctx context.Context, class *domain.Class) (*domain.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoClass{
		Name:              class.Name,
		Description:       class.Description,
		ScheduledAt:       class.ScheduledAt,
		Capacity:          class.Capacity,
		Image:             class.Image,
		Enrolled:          []primitive.ObjectID{},
		LateCancellations: []primitive.ObjectID{},
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, translateErr(fmt.Errorf("insert class: %w", err))
	}

	created := *class
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ClassRepository) FindByID(ctx context.Context, id string) (*domain.Class, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClass
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClassNotFound
		}
		return nil, translateErr(fmt.Errorf("find class: %w", err))
	}
	return mc.toDomain(), nil
}

func (r *ClassRepository) FindAll(ctx context.Context) ([]*domain.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "fechaHora", Value: 1}}))
	if err != nil {
		return nil, translateErr(fmt.Errorf("list classes: %w", err))
	}
	defer cursor.Close(ctx)

	classes := []*domain.Class{}
	for cursor.Next(ctx) {
		var mc mongoClass
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode class: %w", err)
		}
		classes = append(classes, mc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, translateErr(err)
	}
	return classes, nil
}

// AddEnrollment atomically inserts userID into the roster set. A modified
// count of zero on a matched document means the user was already enrolled.
func (r *ClassRepository) AddEnrollment(ctx context.Context, classID, userID string) (bool, error) {
	classOID, userOID, err := parseIDs(classID, userID)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": classOID},
		bson.M{"$addToSet": bson.M{"inscritos": userOID}},
	)
	if err != nil {
		return false, translateErr(fmt.Errorf("add enrollment: %w", err))
	}
	if res.MatchedCount == 0 {
		return false, domain.ErrClassNotFound
	}
	return res.ModifiedCount == 0, nil
}

// RemoveEnrollment atomically pulls userID from the roster set.
func (r *ClassRepository) RemoveEnrollment(ctx context.Context, classID, userID string) (bool, error) {
	classOID, userOID, err := parseIDs(classID, userID)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": classOID},
		bson.M{"$pull": bson.M{"inscritos": userOID}},
	)
	if err != nil {
		return false, translateErr(fmt.Errorf("remove enrollment: %w", err))
	}
	if res.MatchedCount == 0 {
		return false, domain.ErrClassNotFound
	}
	return res.ModifiedCount > 0, nil
}

// AddLateCancellation records the user in the late-cancellation set. The
// roster is intentionally left untouched: a late cancellation does not
// release the seat.
func (r *ClassRepository) AddLateCancellation(ctx context.Context, classID, userID string) error {
	classOID, userOID, err := parseIDs(classID, userID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": classOID},
		bson.M{"$addToSet": bson.M{"cancelaciones": userOID}},
	)
	if err != nil {
		return translateErr(fmt.Errorf("add late cancellation: %w", err))
	}
	if res.MatchedCount == 0 {
		return domain.ErrClassNotFound
	}
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

func parseIDs(classID, userID string) (primitive.ObjectID, primitive.ObjectID, error) {
	classOID, err := parseID(classID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	userOID, err := parseID(userID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return classOID, userOID, nil
}
