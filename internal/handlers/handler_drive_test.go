package handlers_test

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
)

// --- Mock DriveService ---

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

func (suite *TransactionHandlerTestSuite) TestDownloadDriveFile_StreamsAttachment() {
	actorID := uuid.NewString()
	navn := "Hold Nord"
	actor := &domain.User{UserID: actorID, Username: "hold-nord", Role: domain.RoleAfdeling, AfdelingNavn: &navn}
	fileID := "drive-file-1"
	content := []byte("%PDF-1.4 kvittering")
	file := &domain.DriveFile{FileID: fileID, Filename: "B007_kvittering.pdf", MimeType: "application/pdf"}

	suite.mockUsers.On("GetUserByID", mock.Anything, actorID).Return(actor, nil).Once()
	suite.mockDrive.On("DownloadFile", mock.Anything, actorID, fileID).Return(content, file, nil).Once()

	w := suite.authorizedRequest(http.MethodGet, "/api/drive/files/"+fileID+"/download", nil, actorID)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(content, w.Body.Bytes())
	suite.Equal("application/pdf", w.Header().Get("Content-Type"))
	suite.Equal(`attachment; filename="B007_kvittering.pdf"`, w.Header().Get("Content-Disposition"))
	suite.mockDrive.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDownloadDriveFile_NotConnectedGets400() {
	actorID := uuid.NewString()
	navn := "Hold Nord"
	actor := &domain.User{UserID: actorID, Username: "hold-nord", Role: domain.RoleAfdeling, AfdelingNavn: &navn}

	suite.mockUsers.On("GetUserByID", mock.Anything, actorID).Return(actor, nil).Once()
	suite.mockDrive.On("DownloadFile", mock.Anything, actorID, "missing").Return(nil, nil, apperrors.ErrDriveNotConnected).Once()

	w := suite.authorizedRequest(http.MethodGet, "/api/drive/files/missing/download", nil, actorID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDrive.AssertExpectations(suite.T())
}
