package service

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"rocketboost-admin/logging"
)

// maxDriveFileSize bounds slip downloads
const maxDriveFileSize = 20 << 20

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	driveService, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// DownloadFile downloads the raw content of a Drive file
func (ds *DriveService) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	logging.Sugar.Debugf("📥 Drive: Downloading file %s", fileID)

	resp, err := ds.client.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download drive file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDriveFileSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read drive file %s: %w", fileID, err)
	}
	return data, nil
}
