package feed

import (
	"context"
	"sort"

	"github.com/avelichko/pulseline/backend/internal/models"
	"github.com/avelichko/pulseline/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// In-memory repository doubles honoring the same ordering and idempotence
// contracts as the real stores.

type fakePostRepo struct {
	posts []models.Post
}

func (f *fakePostRepo) ordered(keep func(models.Post) bool) []models.Post {
	var out []models.Post
	for _, p := range f.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	for i := range f.posts {
		if f.posts[i].ID.Hex() == id {
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, repositories.ErrPostNotFound
}

func (f *fakePostRepo) GetAllPosts(_ context.Context) ([]models.Post, error) {
	return f.ordered(func(models.Post) bool { return true }), nil
}

func (f *fakePostRepo) GetPostsByGroup(_ context.Context, groupID uint) ([]models.Post, error) {
	return f.ordered(func(p models.Post) bool { return p.GroupID != nil && *p.GroupID == groupID }), nil
}

func (f *fakePostRepo) GetPostsByAuthor(_ context.Context, authorID uint) ([]models.Post, error) {
	return f.ordered(func(p models.Post) bool { return p.AuthorID == authorID }), nil
}

func (f *fakePostRepo) GetPostsByAuthors(_ context.Context, authorIDs []uint) ([]models.Post, error) {
	ids := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		ids[id] = true
	}
	return f.ordered(func(p models.Post) bool { return ids[p.AuthorID] }), nil
}

func (f *fakePostRepo) CountPostsByAuthor(_ context.Context, authorID uint) (int64, error) {
	var count int64
	for _, p := range f.posts {
		if p.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (f *fakePostRepo) UpdatePost(_ context.Context, id string, post *models.Post) error {
	for i := range f.posts {
		if f.posts[i].ID.Hex() == id {
			updated := *post
			updated.ID = f.posts[i].ID
			updated.CreatedAt = f.posts[i].CreatedAt
			f.posts[i] = updated
			return nil
		}
	}
	return repositories.ErrPostNotFound
}

func (f *fakePostRepo) DeletePost(_ context.Context, id string) error {
	for i := range f.posts {
		if f.posts[i].ID.Hex() == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return repositories.ErrPostNotFound
}

func (f *fakePostRepo) UnsetGroup(_ context.Context, groupID uint) error {
	for i := range f.posts {
		if f.posts[i].GroupID != nil && *f.posts[i].GroupID == groupID {
			f.posts[i].GroupID = nil
		}
	}
	return nil
}

type fakeUserRepo struct {
	users []models.User
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	if user.ID == 0 {
		user.ID = uint(len(f.users) + 1)
	}
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) find(match func(models.User) bool) (*models.User, error) {
	for i := range f.users {
		if match(f.users[i]) {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.ID == id })
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.Username == username })
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.Email == email })
}

func (f *fakeUserRepo) GetUserByFirebaseUID(uid string) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.FirebaseUID == uid })
}

func (f *fakeUserRepo) UpdateUser(user *models.User) error {
	for i := range f.users {
		if f.users[i].ID == user.ID {
			f.users[i] = *user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeGroupRepo struct {
	groups []models.Group
}

func (f *fakeGroupRepo) CreateGroup(group *models.Group) error {
	if group.ID == 0 {
		group.ID = uint(len(f.groups) + 1)
	}
	f.groups = append(f.groups, *group)
	return nil
}

func (f *fakeGroupRepo) GetGroupByID(id uint) (*models.Group, error) {
	for i := range f.groups {
		if f.groups[i].ID == id {
			g := f.groups[i]
			return &g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGroupRepo) GetGroupBySlug(slug string) (*models.Group, error) {
	for i := range f.groups {
		if f.groups[i].Slug == slug {
			g := f.groups[i]
			return &g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGroupRepo) GetGroups() ([]models.Group, error) {
	return f.groups, nil
}

func (f *fakeGroupRepo) UpdateGroup(group *models.Group) error {
	for i := range f.groups {
		if f.groups[i].ID == group.ID {
			f.groups[i] = *group
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeGroupRepo) DeleteGroup(id uint) error {
	for i := range f.groups {
		if f.groups[i].ID == id {
			f.groups = append(f.groups[:i], f.groups[i+1:]...)
			return nil
		}
	}
	return nil
}

type followEdge struct {
	follower uint
	followee uint
}

type fakeFollowRepo struct {
	edges []followEdge
}

func (f *fakeFollowRepo) EnsureFollow(followerID, followeeID uint) error {
	if followerID == followeeID {
		return repositories.ErrSelfFollow
	}
	for _, e := range f.edges {
		if e.follower == followerID && e.followee == followeeID {
			return nil
		}
	}
	f.edges = append(f.edges, followEdge{follower: followerID, followee: followeeID})
	return nil
}

func (f *fakeFollowRepo) DeleteFollow(followerID, followeeID uint) error {
	for i, e := range f.edges {
		if e.follower == followerID && e.followee == followeeID {
			f.edges = append(f.edges[:i], f.edges[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeFollowRepo) IsFollowing(followerID, followeeID uint) (bool, error) {
	for _, e := range f.edges {
		if e.follower == followerID && e.followee == followeeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFollowRepo) GetFolloweeIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, e := range f.edges {
		if e.follower == userID {
			ids = append(ids, e.followee)
		}
	}
	return ids, nil
}

func (f *fakeFollowRepo) GetFollowerIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, e := range f.edges {
		if e.followee == userID {
			ids = append(ids, e.follower)
		}
	}
	return ids, nil
}

func (f *fakeFollowRepo) GetFollowerCount(userID uint) (int64, error) {
	ids, _ := f.GetFollowerIDs(userID)
	return int64(len(ids)), nil
}

func (f *fakeFollowRepo) GetFolloweeCount(userID uint) (int64, error) {
	ids, _ := f.GetFolloweeIDs(userID)
	return int64(len(ids)), nil
}
