package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portsrepo "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/repositories"
	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/platform/config"
)

const (
	driveFolderMimeType = "application/vnd.google-apps.folder"
	baseFolderName      = "Tour de Taxa"
	receiptsFolderName  = "Kvitteringer"
)

// DriveService archives receipts in the user's own Google Drive under
// Tour de Taxa/Kvitteringer/<afdeling>/<regnskabsår>. Each user connects
// their Drive once; stored tokens are refreshed silently.
type DriveService struct {
	BaseService
	credRepo     portsrepo.DriveCredentialRepository
	oauth2Config *oauth2.Config
}

func NewDriveService(credRepo portsrepo.DriveCredentialRepository, cfg *config.Config) *DriveService {
	return &DriveService{
		credRepo: credRepo,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleDriveRedirectURL,
			Scopes:       []string{drive.DriveFileScope},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.DriveSvcFacade = (*DriveService)(nil)

// AuthorizationURL builds the consent URL. AccessTypeOffline plus forced
// consent makes Google return a refresh token; the user id rides along as the
// state parameter and comes back in the callback.
func (s *DriveService) AuthorizationURL(ctx context.Context, userID string) (string, error) {
	if s.oauth2Config.ClientID == "" || s.oauth2Config.ClientSecret == "" {
		return "", fmt.Errorf("google drive oauth is not configured: %w", apperrors.ErrValidation)
	}
	url := s.oauth2Config.AuthCodeURL(userID,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
	s.LogInfo(ctx, "drive oauth initiated", "user_id", userID)
	return url, nil
}

func (s *DriveService) HandleCallback(ctx context.Context, code string, state string) error {
	if state == "" {
		return fmt.Errorf("missing oauth state: %w", apperrors.ErrValidation)
	}
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "drive oauth code exchange failed", "user_id", state)
		return fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	now := time.Now()
	cred := domain.DriveCredential{
		UserID:       state,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Scopes:       s.oauth2Config.Scopes,
		ConnectedAt:  now,
		UpdatedAt:    now,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		cred.Expiry = &expiry
	}
	if err := s.credRepo.UpsertCredential(ctx, cred); err != nil {
		s.LogError(ctx, err, "failed to store drive credential", "user_id", state)
		return fmt.Errorf("failed to store drive credential: %w", err)
	}

	s.LogInfo(ctx, "drive connected", "user_id", state)
	return nil
}

func (s *DriveService) Status(ctx context.Context, userID string) (*domain.DriveCredential, error) {
	cred, err := s.credRepo.FindCredentialByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrDriveNotConnected
		}
		return nil, err
	}
	return cred, nil
}

func (s *DriveService) Disconnect(ctx context.Context, userID string) (bool, error) {
	removed, err := s.credRepo.DeleteCredential(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to disconnect drive", "user_id", userID)
		return false, fmt.Errorf("failed to disconnect drive: %w", err)
	}
	if removed {
		s.LogInfo(ctx, "drive disconnected", "user_id", userID)
	}
	return removed, nil
}

// client builds a Drive API client for the user's stored credential. An
// expired access token is refreshed through the token source and the new
// token persisted; a failed refresh surfaces as ErrDriveAuthExpired.
func (s *DriveService) client(ctx context.Context, userID string) (*drive.Service, error) {
	cred, err := s.credRepo.FindCredentialByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrDriveNotConnected
		}
		return nil, err
	}

	stored := &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		TokenType:    cred.TokenType,
	}
	if cred.Expiry != nil {
		stored.Expiry = *cred.Expiry
	}

	ts := s.oauth2Config.TokenSource(ctx, stored)
	current, err := ts.Token()
	if err != nil {
		s.LogError(ctx, err, "drive token refresh failed", "user_id", userID)
		return nil, apperrors.ErrDriveAuthExpired
	}
	if current.AccessToken != cred.AccessToken {
		expiry := current.Expiry
		if err := s.credRepo.UpdateAccessToken(ctx, userID, current.AccessToken, &expiry); err != nil {
			s.LogError(ctx, err, "failed to persist refreshed drive token", "user_id", userID)
		} else {
			s.LogDebug(ctx, "drive token refreshed", "user_id", userID)
		}
	}

	svc, err := drive.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(current)))
	if err != nil {
		return nil, fmt.Errorf("failed to build drive client: %w", err)
	}
	return svc, nil
}

// escapeQueryTerm escapes a value interpolated into a Drive search query.
func escapeQueryTerm(v string) string {
	return strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `'`, `\'`)
}

func (s *DriveService) getOrCreateFolder(ctx context.Context, svc *drive.Service, name string, parentID string) (string, error) {
	query := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", escapeQueryTerm(name), driveFolderMimeType)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}
	list, err := svc.Files.List().Q(query).Spaces("drive").Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up drive folder %q: %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	meta := &drive.File{Name: name, MimeType: driveFolderMimeType}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}
	created, err := svc.Files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create drive folder %q: %w", name, err)
	}
	s.LogDebug(ctx, "drive folder created", "name", name, "folder_id", created.Id)
	return created.Id, nil
}

// ensureFolder walks Tour de Taxa/Kvitteringer/<afdeling>/<regnskabsår>,
// creating missing levels, and returns the leaf folder id.
func (s *DriveService) ensureFolder(ctx context.Context, svc *drive.Service, folder portssvc.ReceiptFolder) (string, error) {
	baseID, err := s.getOrCreateFolder(ctx, svc, baseFolderName, "")
	if err != nil {
		return "", err
	}
	receiptsID, err := s.getOrCreateFolder(ctx, svc, receiptsFolderName, baseID)
	if err != nil {
		return "", err
	}
	afdelingID, err := s.getOrCreateFolder(ctx, svc, folder.AfdelingNavn, receiptsID)
	if err != nil {
		return "", err
	}
	return s.getOrCreateFolder(ctx, svc, folder.Regnskabsaar, afdelingID)
}

func toDriveFile(f *drive.File) domain.DriveFile {
	return domain.DriveFile{
		FileID:       f.Id,
		Filename:     f.Name,
		MimeType:     f.MimeType,
		WebViewLink:  f.WebViewLink,
		DownloadLink: f.WebContentLink,
		CreatedAt:    f.CreatedTime,
		Size:         f.Size,
	}
}

func (s *DriveService) UploadFile(ctx context.Context, userID string, folder portssvc.ReceiptFolder, filename string, mimeType string, content []byte) (*domain.DriveFile, error) {
	svc, err := s.client(ctx, userID)
	if err != nil {
		return nil, err
	}
	folderID, err := s.ensureFolder(ctx, svc, folder)
	if err != nil {
		return nil, err
	}

	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	meta := &drive.File{Name: filename, Parents: []string{folderID}}
	created, err := svc.Files.Create(meta).
		Media(bytes.NewReader(content), googleapi.ContentType(mimeType)).
		Fields("id, name, mimeType, webViewLink, webContentLink, createdTime, size").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to drive: %w", err)
	}

	s.LogInfo(ctx, "drive file uploaded", "user_id", userID, "file_id", created.Id, "filename", filename)
	file := toDriveFile(created)
	return &file, nil
}

func (s *DriveService) ListFolder(ctx context.Context, userID string, folder portssvc.ReceiptFolder) ([]domain.DriveFile, error) {
	svc, err := s.client(ctx, userID)
	if err != nil {
		return nil, err
	}
	folderID, err := s.ensureFolder(ctx, svc, folder)
	if err != nil {
		return nil, err
	}

	list, err := svc.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed=false", folderID)).
		Spaces("drive").
		Fields("files(id, name, mimeType, webViewLink, webContentLink, createdTime, size)").
		OrderBy("createdTime desc").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list drive folder: %w", err)
	}

	files := make([]domain.DriveFile, 0, len(list.Files))
	for _, f := range list.Files {
		files = append(files, toDriveFile(f))
	}
	return files, nil
}

func (s *DriveService) DeleteFile(ctx context.Context, userID string, fileID string) error {
	svc, err := s.client(ctx, userID)
	if err != nil {
		return err
	}
	if err := svc.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete drive file %s: %w", fileID, err)
	}
	s.LogInfo(ctx, "drive file deleted", "user_id", userID, "file_id", fileID)
	return nil
}

func (s *DriveService) DownloadFile(ctx context.Context, userID string, fileID string) ([]byte, *domain.DriveFile, error) {
	svc, err := s.client(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	meta, err := svc.Files.Get(fileID).Fields("id, name, mimeType, size").Context(ctx).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read drive file metadata: %w", err)
	}
	resp, err := svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to download drive file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read drive file body: %w", err)
	}

	file := toDriveFile(meta)
	return content, &file, nil
}
