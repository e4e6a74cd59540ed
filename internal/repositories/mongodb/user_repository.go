package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripbid/internal/models"
	"tripbid/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const userCacheTTL = 10 * time.Minute

// Cache is the subset of pkg/cache.RedisCache the repositories read through.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type userRepository struct {
	collection *mongo.Collection
	cache      Cache
}

// NewUserRepository returns a user repository; cache may be nil.
func NewUserRepository(db *mongo.Database, cache Cache) interfaces.UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
		cache:      cache,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if user := r.getUserFromCache(ctx, id.Hex()); user != nil {
		return user, nil
	}

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", id.Hex(), interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	r.cacheUser(ctx, &user)

	return &user, nil
}

func (r *userRepository) cacheUser(ctx context.Context, user *models.User) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Set(ctx, userCacheKey(user.ID.Hex()), user, userCacheTTL)
}

func (r *userRepository) getUserFromCache(ctx context.Context, id string) *models.User {
	if r.cache == nil {
		return nil
	}
	var user models.User
	if err := r.cache.Get(ctx, userCacheKey(id), &user); err != nil {
		return nil
	}
	return &user
}

func userCacheKey(id string) string {
	return "user:" + id
}
