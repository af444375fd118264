package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"homehub-backend/internal/domain"
	"homehub-backend/internal/invitecode"
)

func newTestInvitationService(
	inviteRepo *MockInvitationRepo,
	familyRepo *MockFamilyRepo,
	membershipRepo *MockMembershipRepo,
	userRepo *MockUserRepo,
	noteRepo *MockNotificationRepo,
	emailSvc *MockEmailService,
) InvitationService {
	return NewInvitationService(inviteRepo, familyRepo, membershipRepo, userRepo, noteRepo, emailSvc, 7)
}

func TestInvitationService_Issue_Success(t *testing.T) {
	inviteRepo := new(MockInvitationRepo)
	familyRepo := new(MockFamilyRepo)
	membershipRepo := new(MockMembershipRepo)
	emailSvc := new(MockEmailService)
	svc := newTestInvitationService(inviteRepo, familyRepo, membershipRepo, new(MockUserRepo), new(MockNotificationRepo), emailSvc)

	membershipRepo.On("GetByUserAndFamily", mock.Anything, int32(1), int32(10)).
		Return(&domain.Membership{UserID: 1, FamilyID: 10, Role: domain.MembershipRoleOwner}, nil)
	inviteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invitation")).Return(nil)

	inv, err := svc.Issue(context.Background(), 10, 1, "", "")
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Len(t, inv.Code, invitecode.Length)
	assert.True(t, invitecode.IsCanonical(inv.Code))
	assert.Equal(t, int32(10), inv.FamilyID)
	assert.Equal(t, int32(1), inv.CreatedBy)
	assert.WithinDuration(t, inv.CreatedOn.Add(7*24*time.Hour), inv.ExpiresOn, time.Second)
	assert.Nil(t, inv.UsedOn)

	inviteRepo.AssertNumberOfCalls(t, "Create", 1)
	emailSvc.AssertNotCalled(t, "SendInvitation")
}

func TestInvitationService_Issue_NotFamilyMember(t *testing.T) {
	inviteRepo := new(MockInvitationRepo)
	membershipRepo := new(MockMembershipRepo)
	svc := newTestInvitationService(inviteRepo, new(MockFamilyRepo), membershipRepo, new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

	membershipRepo.On("GetByUserAndFamily", mock.Anything, int32(2), int32(10)).
		Return(nil, domain.ErrNotFamilyMember)

	inv, err := svc.Issue(context.Background(), 10, 2, "", "")
	assert.Nil(t, inv)
	assert.ErrorIs(t, err, domain.ErrNotFamilyMember)
	inviteRepo.AssertNotCalled(t, "Create")
}

func TestInvitationService_Issue_RetriesOnCollision(t *testing.T) {
	inviteRepo := new(MockInvitationRepo)
	membershipRepo := new(MockMembershipRepo)
	svc := newTestInvitationService(inviteRepo, new(MockFamilyRepo), membershipRepo, new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

	membershipRepo.On("GetByUserAndFamily", mock.Anything, int32(1), int32(10)).
		Return(&domain.Membership{UserID: 1, FamilyID: 10}, nil)
	inviteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invitation")).
		Return(domain.ErrDuplicateCode).Twice()
	inviteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invitation")).
		Return(nil).Once()

	inv, err := svc.Issue(context.Background(), 10, 1, "", "")
	require.NoError(t, err)
	require.NotNil(t, inv)
	inviteRepo.AssertNumberOfCalls(t, "Create", 3)
}

func TestInvitationService_Issue_Exhausted(t *testing.T) {
	inviteRepo := new(MockInvitationRepo)
	membershipRepo := new(MockMembershipRepo)
	svc := newTestInvitationService(inviteRepo, new(MockFamilyRepo), membershipRepo, new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

	membershipRepo.On("GetByUserAndFamily", mock.Anything, int32(1), int32(10)).
		Return(&domain.Membership{UserID: 1, FamilyID: 10}, nil)
	inviteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invitation")).
		Return(domain.ErrDuplicateCode)

	inv, err := svc.Issue(context.Background(), 10, 1, "", "")
	assert.Nil(t, inv)
	assert.ErrorIs(t, err, domain.ErrIssuanceExhausted)
	inviteRepo.AssertNumberOfCalls(t, "Create", 5)
}

func TestInvitationService_Issue_SendsEmailWhenInviteeGiven(t *testing.T) {
	inviteRepo := new(MockInvitationRepo)
	familyRepo := new(MockFamilyRepo)
	membershipRepo := new(MockMembershipRepo)
	emailSvc := new(MockEmailService)
	svc := newTestInvitationService(inviteRepo, familyRepo, membershipRepo, new(MockUserRepo), new(MockNotificationRepo), emailSvc)

	membershipRepo.On("GetByUserAndFamily", mock.Anything, int32(1), int32(10)).
		Return(&domain.Membership{UserID: 1, FamilyID: 10}, nil)
	inviteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invitation")).Return(nil)
	familyRepo.On("GetByID", mock.Anything, int32(10)).
		Return(&domain.Family{ID: 10, Name: "The Does"}, nil)
	emailSvc.On("SendInvitation", mock.Anything, "jamie@example.com", "Jamie", mock.AnythingOfType("string"), "The Does").
		Return(nil)

	inv, err := svc.Issue(context.Background(), 10, 1, "jamie@example.com", "Jamie")
	require.NoError(t, err)
	require.NotNil(t, inv)
	emailSvc.AssertExpectations(t)
}

func TestInvitationService_Issue_EmailFailureDoesNotFailIssuance(t *testing.T) {
	inviteRepo := new(MockInvitationRepo)
	familyRepo := new(MockFamilyRepo)
	membershipRepo := new(MockMembershipRepo)
	emailSvc := new(MockEmailService)
	svc := newTestInvitationService(inviteRepo, familyRepo, membershipRepo, new(MockUserRepo), new(MockNotificationRepo), emailSvc)

	membershipRepo.On("GetByUserAndFamily", mock.Anything, int32(1), int32(10)).
		Return(&domain.Membership{UserID: 1, FamilyID: 10}, nil)
	inviteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invitation")).Return(nil)
	familyRepo.On("GetByID", mock.Anything, int32(10)).
		Return(&domain.Family{ID: 10, Name: "The Does"}, nil)
	emailSvc.On("SendInvitation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("sendgrid unavailable"))

	inv, err := svc.Issue(context.Background(), 10, 1, "jamie@example.com", "Jamie")
	require.NoError(t, err)
	require.NotNil(t, inv)
}

func TestInvitationService_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		rawCode    string
		invitation *domain.Invitation
		lookupErr  error
		wantStatus domain.ValidationStatus
		wantReason string
	}{
		{
			name:       "incomplete while typing",
			rawCode:    "AB72-CD3",
			wantStatus: domain.ValidationIndeterminate,
			wantReason: domain.ValidationReasonIncomplete,
		},
		{
			name:       "empty input",
			rawCode:    "",
			wantStatus: domain.ValidationIndeterminate,
			wantReason: domain.ValidationReasonIncomplete,
		},
		{
			name:    "valid code",
			rawCode: "ab72-cd34",
			invitation: &domain.Invitation{
				Code:      "AB72CD34",
				FamilyID:  10,
				ExpiresOn: now.Add(24 * time.Hour),
			},
			wantStatus: domain.ValidationValid,
		},
		{
			name:       "unknown code",
			rawCode:    "ZZZZ-ZZZZ",
			lookupErr:  domain.ErrInviteNotFound,
			wantStatus: domain.ValidationInvalid,
			wantReason: domain.ValidationReasonNotFound,
		},
		{
			name:    "already used",
			rawCode: "AB72CD34",
			invitation: &domain.Invitation{
				Code:      "AB72CD34",
				FamilyID:  10,
				ExpiresOn: now.Add(24 * time.Hour),
				UsedOn:    &now,
			},
			wantStatus: domain.ValidationInvalid,
			wantReason: domain.ValidationReasonAlreadyUsed,
		},
		{
			name:    "expired",
			rawCode: "AB72CD34",
			invitation: &domain.Invitation{
				Code:      "AB72CD34",
				FamilyID:  10,
				ExpiresOn: now.Add(-time.Minute),
			},
			wantStatus: domain.ValidationInvalid,
			wantReason: domain.ValidationReasonExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inviteRepo := new(MockInvitationRepo)
			svc := newTestInvitationService(inviteRepo, new(MockFamilyRepo), new(MockMembershipRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

			if tt.invitation != nil || tt.lookupErr != nil {
				if tt.invitation != nil {
					inviteRepo.On("GetByCode", mock.Anything, tt.invitation.Code).Return(tt.invitation, nil)
				} else {
					inviteRepo.On("GetByCode", mock.Anything, mock.AnythingOfType("string")).Return(nil, tt.lookupErr)
				}
			}

			result, err := svc.Validate(context.Background(), tt.rawCode)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantReason, result.Reason)

			if tt.wantStatus == domain.ValidationIndeterminate {
				inviteRepo.AssertNotCalled(t, "GetByCode")
			}
		})
	}
}

func TestInvitationService_Validate_StorageFailure(t *testing.T) {
	inviteRepo := new(MockInvitationRepo)
	svc := newTestInvitationService(inviteRepo, new(MockFamilyRepo), new(MockMembershipRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

	inviteRepo.On("GetByCode", mock.Anything, "AB72CD34").Return(nil, errors.New("connection reset"))

	result, err := svc.Validate(context.Background(), "AB72CD34")
	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestInvitationService_Redeem_IncompleteCode(t *testing.T) {
	inviteRepo := new(MockInvitationRepo)
	svc := newTestInvitationService(inviteRepo, new(MockFamilyRepo), new(MockMembershipRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

	family, err := svc.Redeem(context.Background(), "AB72", 5)
	assert.Nil(t, family)
	assert.ErrorIs(t, err, domain.ErrCodeIncomplete)
	inviteRepo.AssertNotCalled(t, "Redeem")
}

func TestInvitationService_Redeem_SentinelPassthrough(t *testing.T) {
	sentinels := []error{
		domain.ErrInviteNotFound,
		domain.ErrInviteUsed,
		domain.ErrInviteExpired,
		domain.ErrMembershipConflict,
	}
	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			inviteRepo := new(MockInvitationRepo)
			svc := newTestInvitationService(inviteRepo, new(MockFamilyRepo), new(MockMembershipRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

			inviteRepo.On("Redeem", mock.Anything, "AB72CD34", int32(5), mock.AnythingOfType("time.Time")).
				Return(nil, sentinel)

			family, err := svc.Redeem(context.Background(), "ab72-cd34", 5)
			assert.Nil(t, family)
			assert.ErrorIs(t, err, sentinel)
		})
	}
}

func TestInvitationService_Redeem_Success(t *testing.T) {
	inviteRepo := new(MockInvitationRepo)
	familyRepo := new(MockFamilyRepo)
	membershipRepo := new(MockMembershipRepo)
	userRepo := new(MockUserRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	svc := newTestInvitationService(inviteRepo, familyRepo, membershipRepo, userRepo, noteRepo, emailSvc)

	now := time.Now()
	inviteRepo.On("Redeem", mock.Anything, "AB72CD34", int32(5), mock.AnythingOfType("time.Time")).
		Return(&domain.Invitation{Code: "AB72CD34", FamilyID: 10, UsedOn: &now, UsedBy: ptrInt32(5)}, nil)
	familyRepo.On("GetByID", mock.Anything, int32(10)).
		Return(&domain.Family{ID: 10, Name: "The Does"}, nil)

	// The join announcement runs on its own goroutine after Redeem returns.
	userRepo.On("GetByID", mock.Anything, int32(5)).
		Return(&domain.User{ID: 5, Name: "Jamie", Email: "jamie@example.com"}, nil).Maybe()
	membershipRepo.On("ListMembersByFamily", mock.Anything, int32(10)).
		Return([]domain.User{}, []domain.Membership{}, nil).Maybe()

	family, err := svc.Redeem(context.Background(), " ab72-cd34 ", 5)
	require.NoError(t, err)
	require.NotNil(t, family)
	assert.Equal(t, int32(10), family.ID)
	assert.Equal(t, "The Does", family.Name)
}

func ptrInt32(v int32) *int32 { return &v }

// fakeInvitationStore is a mutex-guarded in-memory InvitationRepository whose
// Redeem performs the same conditional transition the SQL implementation does
// in one transaction. It lets the concurrency contract be exercised for real
// instead of scripting mock call order.
type fakeInvitationStore struct {
	mu          sync.Mutex
	invitations map[string]*domain.Invitation
	memberships map[int32]int32 // user id -> family id
}

func newFakeInvitationStore() *fakeInvitationStore {
	return &fakeInvitationStore{
		invitations: make(map[string]*domain.Invitation),
		memberships: make(map[int32]int32),
	}
}

func (f *fakeInvitationStore) Create(_ context.Context, inv *domain.Invitation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.invitations[inv.Code]; ok {
		return domain.ErrDuplicateCode
	}
	copied := *inv
	f.invitations[inv.Code] = &copied
	return nil
}

func (f *fakeInvitationStore) GetByCode(_ context.Context, code string) (*domain.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invitations[code]
	if !ok {
		return nil, domain.ErrInviteNotFound
	}
	copied := *inv
	return &copied, nil
}

func (f *fakeInvitationStore) Redeem(_ context.Context, code string, userID int32, now time.Time) (*domain.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invitations[code]
	if !ok {
		return nil, domain.ErrInviteNotFound
	}
	if inv.IsUsed() {
		return nil, domain.ErrInviteUsed
	}
	if inv.IsExpired(now) {
		return nil, domain.ErrInviteExpired
	}
	if _, ok := f.memberships[userID]; ok {
		return nil, domain.ErrMembershipConflict
	}
	usedOn := now
	inv.UsedOn = &usedOn
	inv.UsedBy = &userID
	f.memberships[userID] = inv.FamilyID
	copied := *inv
	return &copied, nil
}

func (f *fakeInvitationStore) DeleteExpired(_ context.Context, olderThan time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pruned int64
	for code, inv := range f.invitations {
		if inv.IsUsed() || inv.ExpiresOn.Before(olderThan) {
			delete(f.invitations, code)
			pruned++
		}
	}
	return pruned, nil
}

func (f *fakeInvitationStore) membershipCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.memberships)
}

func TestInvitationService_Redeem_ConcurrentAttempts(t *testing.T) {
	store := newFakeInvitationStore()
	familyRepo := new(MockFamilyRepo)
	membershipRepo := new(MockMembershipRepo)
	userRepo := new(MockUserRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	svc := NewInvitationService(store, familyRepo, membershipRepo, userRepo, noteRepo, emailSvc, 7)

	now := time.Now()
	require.NoError(t, store.Create(context.Background(), &domain.Invitation{
		Code:      "A2B3C4D5",
		FamilyID:  10,
		CreatedBy: 1,
		CreatedOn: now,
		ExpiresOn: now.Add(24 * time.Hour),
	}))

	familyRepo.On("GetByID", mock.Anything, int32(10)).
		Return(&domain.Family{ID: 10, Name: "The Does"}, nil)
	userRepo.On("GetByID", mock.Anything, mock.AnythingOfType("int32")).
		Return(&domain.User{ID: 5, Name: "Jamie", Email: "jamie@example.com"}, nil).Maybe()
	membershipRepo.On("ListMembersByFamily", mock.Anything, int32(10)).
		Return([]domain.User{}, []domain.Membership{}, nil).Maybe()

	contenders := []int32{5, 6}
	results := make([]error, len(contenders))
	var wg sync.WaitGroup
	for i, userID := range contenders {
		wg.Add(1)
		go func(i int, userID int32) {
			defer wg.Done()
			_, results[i] = svc.Redeem(context.Background(), "A2B3-C4D5", userID)
		}(i, userID)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrInviteUsed):
			losses++
		default:
			t.Fatalf("unexpected redemption error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one contender must win the code")
	assert.Equal(t, 1, losses, "the loser must observe the code as already used")
	assert.Equal(t, 1, store.membershipCount(), "only the winner gains a membership")

	inv, err := store.GetByCode(context.Background(), "A2B3C4D5")
	require.NoError(t, err)
	require.NotNil(t, inv.UsedOn)
	require.NotNil(t, inv.UsedBy)
}

func TestInvitationService_Redeem_ExpiredCodeStaysUnused(t *testing.T) {
	store := newFakeInvitationStore()
	svc := NewInvitationService(store, new(MockFamilyRepo), new(MockMembershipRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService), 7)

	now := time.Now()
	require.NoError(t, store.Create(context.Background(), &domain.Invitation{
		Code:      "A2B3C4D5",
		FamilyID:  10,
		CreatedBy: 1,
		CreatedOn: now.Add(-48 * time.Hour),
		ExpiresOn: now.Add(-time.Hour),
	}))

	family, err := svc.Redeem(context.Background(), "A2B3C4D5", 5)
	assert.Nil(t, family)
	assert.ErrorIs(t, err, domain.ErrInviteExpired)

	// A failed attempt must not consume the code or write anything.
	inv, getErr := store.GetByCode(context.Background(), "A2B3C4D5")
	require.NoError(t, getErr)
	assert.Nil(t, inv.UsedOn)
	assert.Nil(t, inv.UsedBy)
	assert.Zero(t, store.membershipCount())
}

func TestInvitationService_Redeem_SecondMembershipRejected(t *testing.T) {
	store := newFakeInvitationStore()
	familyRepo := new(MockFamilyRepo)
	membershipRepo := new(MockMembershipRepo)
	userRepo := new(MockUserRepo)
	svc := NewInvitationService(store, familyRepo, membershipRepo, userRepo, new(MockNotificationRepo), new(MockEmailService), 7)

	now := time.Now()
	for _, code := range []string{"A2B3C4D5", "E6F7G8H9"} {
		require.NoError(t, store.Create(context.Background(), &domain.Invitation{
			Code:      code,
			FamilyID:  10,
			CreatedBy: 1,
			CreatedOn: now,
			ExpiresOn: now.Add(24 * time.Hour),
		}))
	}

	familyRepo.On("GetByID", mock.Anything, int32(10)).
		Return(&domain.Family{ID: 10, Name: "The Does"}, nil)
	userRepo.On("GetByID", mock.Anything, mock.AnythingOfType("int32")).
		Return(&domain.User{ID: 5, Name: "Jamie"}, nil).Maybe()
	membershipRepo.On("ListMembersByFamily", mock.Anything, int32(10)).
		Return([]domain.User{}, []domain.Membership{}, nil).Maybe()

	_, err := svc.Redeem(context.Background(), "A2B3C4D5", 5)
	require.NoError(t, err)

	family, err := svc.Redeem(context.Background(), "E6F7G8H9", 5)
	assert.Nil(t, family)
	assert.ErrorIs(t, err, domain.ErrMembershipConflict)

	// The second code survives the rejected attempt.
	inv, getErr := store.GetByCode(context.Background(), "E6F7G8H9")
	require.NoError(t, getErr)
	assert.Nil(t, inv.UsedOn)
}
