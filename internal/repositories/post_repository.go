package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelichko/pulseline/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPostNotFound is returned when a post id does not resolve to a document
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the interface for post data operations. The ordered
// queries return full sequences newest first, with equal timestamps broken by
// descending id; the feed composer slices them into pages.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByGroup(ctx context.Context, groupID uint) ([]models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
	GetPostsByAuthors(ctx context.Context, authorIDs []uint) ([]models.Post, error)
	CountPostsByAuthor(ctx context.Context, authorID uint) (int64, error)
	UpdatePost(ctx context.Context, id string, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
	UnsetGroup(ctx context.Context, groupID uint) error
}

// feedOrder sorts newest first; _id descending keeps equal timestamps in a
// stable, deterministic order.
var feedOrder = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *MongoPostRepository) findOrdered(ctx context.Context, filter interface{}) ([]models.Post, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(feedOrder))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetAllPosts retrieves every post, newest first
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	return r.findOrdered(ctx, bson.D{})
}

// GetPostsByGroup retrieves the posts published into a group, newest first
func (r *MongoPostRepository) GetPostsByGroup(ctx context.Context, groupID uint) ([]models.Post, error) {
	return r.findOrdered(ctx, bson.M{"group_id": groupID})
}

// GetPostsByAuthor retrieves a single author's posts, newest first
func (r *MongoPostRepository) GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	return r.findOrdered(ctx, bson.M{"author_id": authorID})
}

// GetPostsByAuthors merges several authors' posts into one globally
// time-ordered sequence, for the following feed.
func (r *MongoPostRepository) GetPostsByAuthors(ctx context.Context, authorIDs []uint) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	return r.findOrdered(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}})
}

// CountPostsByAuthor counts a single author's posts
func (r *MongoPostRepository) CountPostsByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"author_id": authorID})
}

// UpdatePost updates an existing post in MongoDB. CreatedAt is immutable;
// only text, group and image reference can change.
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	post.UpdatedAt = time.Now()
	set := bson.M{
		"text":       post.Text,
		"updated_at": post.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if post.GroupID != nil {
		set["group_id"] = *post.GroupID
	} else {
		update["$unset"] = bson.M{"group_id": ""}
	}
	if post.ImageRef != "" {
		set["image_ref"] = post.ImageRef
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// UnsetGroup clears the group reference on every post in the group. Called
// when a group is deleted: the posts stay, their group becomes null.
func (r *MongoPostRepository) UnsetGroup(ctx context.Context, groupID uint) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"group_id": groupID},
		bson.M{"$unset": bson.M{"group_id": ""}},
	)
	return err
}
