package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/evolfitness/booking-system/internal/core/domain"
)

const usersCollection = "usuarios"

// AccountRepository implements ports.AccountRepository on the usuarios
// collection.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(usersCollection)}
}

// mongoUser mirrors the document layout used by the original deployment:
// Spanish field names, es_admin as 0/1, the bcrypt hash stored under the
// legacy contrasena field.
type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"nombreUsuario"`
	FirstName    string             `bson:"nombre"`
	LastName     string             `bson:"apellidos"`
	PasswordHash string             `bson:"contrasena"`
	IsAdmin      int                `bson:"es_admin"`
	Role         string             `bson:"rol,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		FirstName:    mu.FirstName,
		LastName:     mu.LastName,
		PasswordHash: mu.PasswordHash,
		IsAdmin:      mu.IsAdmin == 1,
		Role:         mu.Role,
		CreatedAt:    mu.CreatedAt,
	}
}

// EnsureIndexes creates the unique username index. The index, not a
// pre-check, is what makes duplicate registration race-safe.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "nombreUsuario", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *AccountRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	isAdmin := 0
	if user.IsAdmin {
		isAdmin = 1
	}

	doc := mongoUser{
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		PasswordHash: user.PasswordHash,
		IsAdmin:      isAdmin,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, translateErr(fmt.Errorf("insert user: %w", err))
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"nombreUsuario": username}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, translateErr(fmt.Errorf("find user: %w", err))
	}
	return mu.toDomain(), nil
}

// ResolveUsernames maps roster ids to usernames. Ids that do not parse or
// that match no document are left out of the result; the caller decides how
// to render the gap.
func (r *AccountRepository) ResolveUsernames(ctx context.Context, ids []string) (map[string]string, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	names := make(map[string]string, len(oids))
	if len(oids) == 0 {
		return names, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		options.Find().SetProjection(bson.M{"nombreUsuario": 1}),
	)
	if err != nil {
		return nil, translateErr(fmt.Errorf("resolve usernames: %w", err))
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		names[mu.ID.Hex()] = mu.Username
	}
	if err := cursor.Err(); err != nil {
		return nil, translateErr(err)
	}
	return names, nil
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, translateErr(fmt.Errorf("count users: %w", err))
	}
	return n, nil
}

// FindRecent returns the newest users first. The password hash is excluded
// at the query level so it cannot leak through this path.
func (r *AccountRepository) FindRecent(ctx context.Context, limit int) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().
		SetProjection(bson.M{"contrasena": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, translateErr(fmt.Errorf("find recent users: %w", err))
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, translateErr(err)
	}
	return users, nil
}
