package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portsrepo "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/repositories"
	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
)

// Shared repository mocks for the service tests. Each method can be driven
// either through testify expectations or, for stateful scenarios such as the
// voucher counter tests, through an optional Fn override.

// --- MockUserRepository ---

type MockUserRepository struct {
	mock.Mock
	SaveUserFn               func(ctx context.Context, user domain.User) error
	FindUserByIDFn           func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsernameFn     func(ctx context.Context, username string) (*domain.User, error)
	FindUsersFn              func(ctx context.Context) ([]domain.User, error)
	FindUsersByRoleFn        func(ctx context.Context, role domain.Role) ([]domain.User, error)
	FindUserByAfdelingNavnFn func(ctx context.Context, navn string) (*domain.User, error)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if m.SaveUserFn != nil {
		return m.SaveUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindUserByUsernameFn != nil {
		return m.FindUserByUsernameFn(ctx, username)
	}
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context) ([]domain.User, error) {
	if m.FindUsersFn != nil {
		return m.FindUsersFn(ctx)
	}
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if m.FindUsersByRoleFn != nil {
		return m.FindUsersByRoleFn(ctx, role)
	}
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByAfdelingNavn(ctx context.Context, navn string) (*domain.User, error) {
	if m.FindUserByAfdelingNavnFn != nil {
		return m.FindUserByAfdelingNavnFn(ctx, navn)
	}
	args := m.Called(ctx, navn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, passwordHash, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAfdelingNavn(ctx context.Context, userID string, navn string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, navn, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

// --- MockAfdelingRepository ---

type MockAfdelingRepository struct {
	mock.Mock
}

func (m *MockAfdelingRepository) SaveAfdeling(ctx context.Context, afdeling domain.Afdeling) error {
	args := m.Called(ctx, afdeling)
	return args.Error(0)
}

func (m *MockAfdelingRepository) FindAfdelingByID(ctx context.Context, afdelingID string) (*domain.Afdeling, error) {
	args := m.Called(ctx, afdelingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Afdeling), args.Error(1)
}

func (m *MockAfdelingRepository) FindAfdelingByNavn(ctx context.Context, navn string) (*domain.Afdeling, error) {
	args := m.Called(ctx, navn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Afdeling), args.Error(1)
}

func (m *MockAfdelingRepository) ListAfdelinger(ctx context.Context) ([]domain.Afdeling, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Afdeling), args.Error(1)
}

func (m *MockAfdelingRepository) DeleteAfdeling(ctx context.Context, afdelingID string) error {
	args := m.Called(ctx, afdelingID)
	return args.Error(0)
}

var _ portsrepo.AfdelingRepository = (*MockAfdelingRepository)(nil)

// --- MockSettingsRepository ---

type MockSettingsRepository struct {
	mock.Mock
	EnsureSettingsFn func(ctx context.Context, afdelingID string, actorUserID string) (*domain.Settings, error)
}

func (m *MockSettingsRepository) EnsureSettings(ctx context.Context, afdelingID string, actorUserID string) (*domain.Settings, error) {
	if m.EnsureSettingsFn != nil {
		return m.EnsureSettingsFn(ctx, afdelingID, actorUserID)
	}
	args := m.Called(ctx, afdelingID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) FindSettingsByAfdelingID(ctx context.Context, afdelingID string) (*domain.Settings, error) {
	args := m.Called(ctx, afdelingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) UpdateSettings(ctx context.Context, settings domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) ListRegnskabsaar(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var _ portsrepo.SettingsRepository = (*MockSettingsRepository)(nil)

// --- MockTransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
	CreateWithBilagnrFn func(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)
	SumByTypeFn         func(ctx context.Context, afdelingID string, regnskabsaar string) (domain.TransactionSums, error)
}

func (m *MockTransactionRepository) CreateWithBilagnr(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	if m.CreateWithBilagnrFn != nil {
		return m.CreateWithBilagnrFn(ctx, txn)
	}
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) SumByType(ctx context.Context, afdelingID string, regnskabsaar string) (domain.TransactionSums, error) {
	if m.SumByTypeFn != nil {
		return m.SumByTypeFn(ctx, afdelingID, regnskabsaar)
	}
	args := m.Called(ctx, afdelingID, regnskabsaar)
	return args.Get(0).(domain.TransactionSums), args.Error(1)
}

func (m *MockTransactionRepository) SetKvittering(ctx context.Context, transactionID string, fileID *string, url *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, fileID, url, updatedBy, updatedAt)
	return args.Error(0)
}

var _ portsrepo.TransactionRepository = (*MockTransactionRepository)(nil)

// --- MockDriveCredentialRepository ---

type MockDriveCredentialRepository struct {
	mock.Mock
}

func (m *MockDriveCredentialRepository) UpsertCredential(ctx context.Context, cred domain.DriveCredential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *MockDriveCredentialRepository) FindCredentialByUserID(ctx context.Context, userID string) (*domain.DriveCredential, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DriveCredential), args.Error(1)
}

func (m *MockDriveCredentialRepository) UpdateAccessToken(ctx context.Context, userID string, accessToken string, expiry *time.Time) error {
	args := m.Called(ctx, userID, accessToken, expiry)
	return args.Error(0)
}

func (m *MockDriveCredentialRepository) DeleteCredential(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

var _ portsrepo.DriveCredentialRepository = (*MockDriveCredentialRepository)(nil)

// --- MockDriveService ---

type MockDriveService struct {
	mock.Mock
}

func (m *MockDriveService) AuthorizationURL(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockDriveService) HandleCallback(ctx context.Context, code string, state string) error {
	args := m.Called(ctx, code, state)
	return args.Error(0)
}

func (m *MockDriveService) Status(ctx context.Context, userID string) (*domain.DriveCredential, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DriveCredential), args.Error(1)
}

func (m *MockDriveService) Disconnect(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDriveService) UploadFile(ctx context.Context, userID string, folder portssvc.ReceiptFolder, filename string, mimeType string, content []byte) (*domain.DriveFile, error) {
	args := m.Called(ctx, userID, folder, filename, mimeType, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DriveFile), args.Error(1)
}

func (m *MockDriveService) ListFolder(ctx context.Context, userID string, folder portssvc.ReceiptFolder) ([]domain.DriveFile, error) {
	args := m.Called(ctx, userID, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DriveFile), args.Error(1)
}

func (m *MockDriveService) DeleteFile(ctx context.Context, userID string, fileID string) error {
	args := m.Called(ctx, userID, fileID)
	return args.Error(0)
}

func (m *MockDriveService) DownloadFile(ctx context.Context, userID string, fileID string) ([]byte, *domain.DriveFile, error) {
	args := m.Called(ctx, userID, fileID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(*domain.DriveFile), args.Error(2)
}

var _ portssvc.DriveSvcFacade = (*MockDriveService)(nil)

// --- shared test helpers ---

func strPtr(s string) *string {
	return &s
}

func afdelingActor(userID, navn string) domain.User {
	return domain.User{
		UserID:       userID,
		Username:     navn,
		Role:         domain.RoleAfdeling,
		AfdelingNavn: &navn,
	}
}

func adminActor(userID string) domain.User {
	return domain.User{UserID: userID, Username: "admin", Role: domain.RoleAdmin}
}

func superbrugerActor(userID string) domain.User {
	return domain.User{UserID: userID, Username: "superbruger", Role: domain.RoleSuperbruger}
}
