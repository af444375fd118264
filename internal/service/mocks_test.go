package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"homehub-backend/internal/domain"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockFamilyRepo struct {
	mock.Mock
}

func (m *MockFamilyRepo) CreateWithOwner(ctx context.Context, family *domain.Family, ownerID int32, now time.Time) error {
	args := m.Called(ctx, family, ownerID, now)
	return args.Error(0)
}

func (m *MockFamilyRepo) GetByID(ctx context.Context, id int32) (*domain.Family, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Family), args.Error(1)
}

func (m *MockFamilyRepo) Update(ctx context.Context, family *domain.Family) error {
	args := m.Called(ctx, family)
	return args.Error(0)
}

type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) Create(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepo) GetByUser(ctx context.Context, userID int32) (*domain.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepo) GetByUserAndFamily(ctx context.Context, userID, familyID int32) (*domain.Membership, error) {
	args := m.Called(ctx, userID, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepo) ListMembersByFamily(ctx context.Context, familyID int32) ([]domain.User, []domain.Membership, error) {
	args := m.Called(ctx, familyID)
	var users []domain.User
	var memberships []domain.Membership
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	if args.Get(1) != nil {
		memberships = args.Get(1).([]domain.Membership)
	}
	return users, memberships, args.Error(2)
}

type MockInvitationRepo struct {
	mock.Mock
}

func (m *MockInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvitationRepo) GetByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}

func (m *MockInvitationRepo) Redeem(ctx context.Context, code string, userID int32, now time.Time) (*domain.Invitation, error) {
	args := m.Called(ctx, code, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}

func (m *MockInvitationRepo) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	var notes []domain.Notification
	if args.Get(0) != nil {
		notes = args.Get(0).([]domain.Notification)
	}
	return notes, args.Get(1).(int32), args.Error(2)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendInvitation(ctx context.Context, email, name, code, familyName string) error {
	args := m.Called(ctx, email, name, code, familyName)
	return args.Error(0)
}

func (m *MockEmailService) SendJoinAnnouncement(ctx context.Context, email, name, newMemberName, familyName string) error {
	args := m.Called(ctx, email, name, newMemberName, familyName)
	return args.Error(0)
}
