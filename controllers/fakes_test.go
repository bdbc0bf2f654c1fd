package controllers

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hanuiwon/clinic-api/config"
	"github.com/hanuiwon/clinic-api/models"
	"github.com/hanuiwon/clinic-api/repositories"
	"github.com/hanuiwon/clinic-api/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	_ = utils.InitLogger(config.AppConfig{LogLevel: "error"})
	os.Exit(m.Run())
}

// --- in-memory post repository ---

type fakePostRepo struct {
	posts []models.Post
}

func (f *fakePostRepo) matches(q repositories.PostQuery, p models.Post) bool {
	if q.Type != "" && p.Type != q.Type {
		return false
	}
	if q.Search != "" && !strings.Contains(p.Title, q.Search) {
		return false
	}
	if len(q.Tags) > 0 {
		found := false
		for _, want := range q.Tags {
			for _, have := range p.Tags {
				if want == have {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakePostRepo) matching(q repositories.PostQuery) []models.Post {
	// newest first, i.e. reverse insertion order
	out := []models.Post{}
	for i := len(f.posts) - 1; i >= 0; i-- {
		if f.matches(q, f.posts[i]) {
			out = append(out, f.posts[i])
		}
	}
	return out
}

func paginate[T any](items []T, page repositories.Page) []T {
	skip := int(page.Skip())
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if page.PerPage > 0 && len(items) > page.PerPage {
		items = items[:page.PerPage]
	}
	return items
}

func (f *fakePostRepo) List(_ context.Context, q repositories.PostQuery, page repositories.Page) ([]models.Post, error) {
	return paginate(f.matching(q), page), nil
}

func (f *fakePostRepo) Count(_ context.Context, q repositories.PostQuery) (int64, error) {
	return int64(len(f.matching(q))), nil
}

func (f *fakePostRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			post := f.posts[i]
			return &post, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePostRepo) FindByURL(_ context.Context, url string) (*models.Post, error) {
	for i := range f.posts {
		if f.posts[i].URL == url {
			post := f.posts[i]
			return &post, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePostRepo) Insert(_ context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.PublishedDate.IsZero() {
		post.PublishedDate = time.Now()
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakePostRepo) Update(_ context.Context, id primitive.ObjectID, changes bson.M) (*models.Post, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			if title, ok := changes["title"].(string); ok {
				f.posts[i].Title = title
			}
			if body, ok := changes["body"].(string); ok {
				f.posts[i].Body = body
			}
			post := f.posts[i]
			return &post, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// --- in-memory counselling repository ---

type fakeCounsellingRepo struct {
	counsellings []models.OnlineCounselling
}

func (f *fakeCounsellingRepo) matching(search string) []models.OnlineCounselling {
	out := []models.OnlineCounselling{}
	for i := len(f.counsellings) - 1; i >= 0; i-- {
		c := f.counsellings[i]
		if search == "" || strings.Contains(c.Title, search) || strings.Contains(c.Writer, search) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeCounsellingRepo) List(_ context.Context, search string, page repositories.Page) ([]models.OnlineCounselling, error) {
	return paginate(f.matching(search), page), nil
}

func (f *fakeCounsellingRepo) Count(_ context.Context, search string) (int64, error) {
	return int64(len(f.matching(search))), nil
}

func (f *fakeCounsellingRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.OnlineCounselling, error) {
	for i := range f.counsellings {
		if f.counsellings[i].ID == id {
			c := f.counsellings[i]
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCounsellingRepo) Insert(_ context.Context, c *models.OnlineCounselling) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.RegisteredDate.IsZero() {
		c.RegisteredDate = time.Now()
	}
	if c.Comments == nil {
		c.Comments = []models.Comment{}
	}
	f.counsellings = append(f.counsellings, *c)
	return nil
}

func (f *fakeCounsellingRepo) Update(_ context.Context, id primitive.ObjectID, changes bson.M) (*models.OnlineCounselling, error) {
	for i := range f.counsellings {
		if f.counsellings[i].ID == id {
			if reply, ok := changes["reply"].(bool); ok {
				f.counsellings[i].Reply = reply
			}
			if content, ok := changes["content"].(string); ok {
				f.counsellings[i].Content = content
			}
			c := f.counsellings[i]
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCounsellingRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range f.counsellings {
		if f.counsellings[i].ID == id {
			f.counsellings = append(f.counsellings[:i], f.counsellings[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeCounsellingRepo) AppendComment(_ context.Context, id primitive.ObjectID, comment models.Comment) (*models.OnlineCounselling, error) {
	for i := range f.counsellings {
		if f.counsellings[i].ID == id {
			f.counsellings[i].Comments = append(f.counsellings[i].Comments, comment)
			c := f.counsellings[i]
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// --- in-memory reservation repository ---

type fakeReservationRepo struct {
	reservations []models.Reservation
}

func (f *fakeReservationRepo) matching(search string) []models.Reservation {
	out := []models.Reservation{}
	for i := len(f.reservations) - 1; i >= 0; i-- {
		r := f.reservations[i]
		if search == "" || strings.Contains(r.Info.Name, search) || strings.Contains(r.Info.Phone, search) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeReservationRepo) List(_ context.Context, search string, page repositories.Page) ([]models.Reservation, error) {
	return paginate(f.matching(search), page), nil
}

func (f *fakeReservationRepo) Count(_ context.Context, search string) (int64, error) {
	return int64(len(f.matching(search))), nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Reservation, error) {
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			r := f.reservations[i]
			return &r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeReservationRepo) Insert(_ context.Context, r *models.Reservation) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if r.PublishedDate.IsZero() {
		r.PublishedDate = time.Now()
	}
	if r.Inquiries == nil {
		r.Inquiries = []string{}
	}
	if r.Symptoms == nil {
		r.Symptoms = []string{}
	}
	f.reservations = append(f.reservations, *r)
	return nil
}

func (f *fakeReservationRepo) Update(_ context.Context, id primitive.ObjectID, changes bson.M) (*models.Reservation, error) {
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			if state, ok := changes["state"].(int); ok {
				f.reservations[i].State = state
			}
			r := f.reservations[i]
			return &r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeReservationRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			f.reservations = append(f.reservations[:i], f.reservations[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// --- in-memory user repository and session store ---

type fakeUserRepo struct {
	users []models.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) Insert(_ context.Context, user *models.User) error {
	for i := range f.users {
		if f.users[i].Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Created.IsZero() {
		user.Created = time.Now()
	}
	f.users = append(f.users, *user)
	return nil
}

type fakeSessionStore struct {
	sessions map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]string{}}
}

func (f *fakeSessionStore) Create(_ context.Context, userID string) (string, error) {
	sid := uuid.NewString()
	f.sessions[sid] = userID
	return sid, nil
}

func (f *fakeSessionStore) Get(_ context.Context, sid string) (string, error) {
	userID, ok := f.sessions[sid]
	if !ok {
		return "", repositories.ErrNotFound
	}
	return userID, nil
}

func (f *fakeSessionStore) Destroy(_ context.Context, sid string) error {
	delete(f.sessions, sid)
	return nil
}
