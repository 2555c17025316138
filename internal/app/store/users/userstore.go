package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/cardhub/internal/app/system/normalize"
	"github.com/dalemusser/cardhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for stored password hashes.
const BcryptCost = 10

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("User already registered")
	errNoPassword     = errors.New("password is required")
)

// withoutPassword keeps the hash out of every read that is not a login.
var withoutPassword = bson.M{"password": 0}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// HashPassword returns the bcrypt hash of a plain-text password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the user's stored hash.
func CheckPassword(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Create hashes password, normalizes fields and inserts the user.
// Admin rights are never granted here.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	if password == "" {
		return models.User{}, errNoPassword
	}
	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.Name = normalizeName(u.Name)
	u.Phone = normalize.Phone(u.Phone)
	u.PasswordHash = hash
	u.IsAdmin = false

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID without the password hash.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	opts := options.FindOne().SetProjection(withoutPassword)
	if err := s.c.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email, including the
// password hash. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every user, newest first, without password hashes.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetProjection(withoutPassword).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProfileUpdate holds the fields a user may change on their own profile.
// Email, password and roles are not part of it.
type ProfileUpdate struct {
	Name    models.PersonName
	Phone   string
	Image   models.Image
	Address models.Address
}

// UpdateProfile replaces the editable profile fields and returns the updated
// user. Returns mongo.ErrNoDocuments if no user has id.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	return s.findAndSet(ctx, id, bson.M{
		"name":       normalizeName(upd.Name),
		"phone":      normalize.Phone(upd.Phone),
		"image":      upd.Image,
		"address":    upd.Address,
		"updated_at": time.Now().UTC(),
	})
}

// SetRegisterUser flips the business-user flag.
func (s *Store) SetRegisterUser(ctx context.Context, id primitive.ObjectID, isRegisterUser bool) (*models.User, error) {
	return s.findAndSet(ctx, id, bson.M{
		"is_register_user": isRegisterUser,
		"updated_at":       time.Now().UTC(),
	})
}

// SetAdminByEmail grants admin rights to the user with email. Returns
// mongo.ErrNoDocuments if no user has it.
func (s *Store) SetAdminByEmail(ctx context.Context, email string) (*models.User, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)
	update := bson.M{"$set": bson.M{"is_admin": true, "updated_at": time.Now().UTC()}}
	var u models.User
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"email": normalize.Email(email)}, update, opts).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) findAndSet(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)
	var u models.User
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes a user and returns it. Returns mongo.ErrNoDocuments if no
// user has id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	opts := options.FindOneAndDelete().SetProjection(withoutPassword)
	var u models.User
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}, opts).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// EmailExistsForOther checks if an email already exists for a user other than the given ID.
func (s *Store) EmailExistsForOther(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"email": normalize.Email(email),
		"_id":   bson.M{"$ne": excludeID},
	}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

func normalizeName(n models.PersonName) models.PersonName {
	return models.PersonName{
		First:  normalize.Name(n.First),
		Middle: normalize.Name(n.Middle),
		Last:   normalize.Name(n.Last),
	}
}
