package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"socialnet/internal/models"
	"socialnet/internal/repository"
	"socialnet/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) tokens(args mock.Arguments) (*service.TokenPair, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*service.TokenPair, error) {
	return m.tokens(m.Called(ctx, identifier, password))
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*service.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *service.Claims) (bool, error) {
	args := m.Called(ctx, claims)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, userID string) (*service.TokenPair, error) {
	return m.tokens(m.Called(ctx, userID))
}

func (m *MockAuthService) RefreshWithToken(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	return m.tokens(m.Called(ctx, refreshToken))
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) users(args mock.Arguments) ([]*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, req repository.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, page, limit int) ([]*models.User, error) {
	return m.users(m.Called(ctx, page, limit))
}

func (m *MockUserService) Follow(ctx context.Context, followerID, username string) (bool, error) {
	args := m.Called(ctx, followerID, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) Unfollow(ctx context.Context, followerID, username string) error {
	args := m.Called(ctx, followerID, username)
	return args.Error(0)
}

func (m *MockUserService) ListFollowers(ctx context.Context, username string, page, limit int) ([]*models.User, error) {
	return m.users(m.Called(ctx, username, page, limit))
}

func (m *MockUserService) ListFollowing(ctx context.Context, username string, page, limit int) ([]*models.User, error) {
	return m.users(m.Called(ctx, username, page, limit))
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) post(args mock.Arguments) (*models.Post, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	return m.post(m.Called(ctx, req))
}

func (m *MockPostService) ListPosts(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return m.post(m.Called(ctx, postID))
}

func (m *MockPostService) UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (*models.Post, error) {
	return m.post(m.Called(ctx, req))
}

func (m *MockPostService) DeletePost(ctx context.Context, postID string, actor service.Actor) error {
	args := m.Called(ctx, postID, actor)
	return args.Error(0)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(ctx context.Context, req repository.CreateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) ListComments(ctx context.Context, postID string, page, limit int) ([]*models.Comment, error) {
	args := m.Called(ctx, postID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID string, actor service.Actor) error {
	args := m.Called(ctx, commentID, actor)
	return args.Error(0)
}

type MockLikeService struct {
	mock.Mock
}

func (m *MockLikeService) LikePost(ctx context.Context, postID, userID string) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeService) UnlikePost(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockLikeService) ListLikers(ctx context.Context, postID string) ([]*models.User, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) GetFeed(ctx context.Context, viewerID string, page, limit int) ([]*models.Post, error) {
	args := m.Called(ctx, viewerID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

type MockTablesService struct {
	mock.Mock
}

func (m *MockTablesService) SchemaStatus(ctx context.Context) (*models.SchemaStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SchemaStatus), args.Error(1)
}

var (
	_ service.AuthService    = (*MockAuthService)(nil)
	_ service.UserService    = (*MockUserService)(nil)
	_ service.PostService    = (*MockPostService)(nil)
	_ service.CommentService = (*MockCommentService)(nil)
	_ service.LikeService    = (*MockLikeService)(nil)
	_ service.FeedService    = (*MockFeedService)(nil)
	_ service.TablesService  = (*MockTablesService)(nil)
)
