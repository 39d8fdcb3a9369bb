package backup

import (
	"bytes"
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	folderMimeType = "application/vnd.google-apps.folder"
	jsonMimeType   = "application/json"
)

// DriveStore is the part of Google Drive the backups use.
type DriveStore struct {
	service *drive.Service
}

func NewDriveStore(ctx context.Context, credentialsJSON []byte) (*DriveStore, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}
	return &DriveStore{service: driveService}, nil
}

// FindFolder returns the ids of non trashed folders with the given name.
func (d *DriveStore) FindFolder(ctx context.Context, name string) ([]string, error) {
	q := fmt.Sprintf("mimeType = '%s' and trashed = false and name = '%s'", folderMimeType, name)
	list, err := d.service.Files.List().Q(q).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list.Files))
	for _, f := range list.Files {
		ids = append(ids, f.Id)
	}
	return ids, nil
}

func (d *DriveStore) CreateFolder(ctx context.Context, name string) (string, error) {
	f, err := d.service.Files.
		Create(&drive.File{Name: name, MimeType: folderMimeType}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	return f.Id, nil
}

func (d *DriveStore) DeleteFile(ctx context.Context, id string) error {
	return d.service.Files.Delete(id).Context(ctx).Do()
}

func (d *DriveStore) ListFiles(ctx context.Context, folderID string) ([]File, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType != '%s' and trashed = false", folderID, folderMimeType)
	var files []File
	call := d.service.Files.List().Q(q).Fields("nextPageToken, files(id, name, createdTime)").Context(ctx)
	if err := call.Pages(ctx, func(list *drive.FileList) error {
		for _, f := range list.Files {
			files = append(files, File{ID: f.Id, Name: f.Name, CreatedTime: f.CreatedTime})
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return files, nil
}

func (d *DriveStore) Upload(ctx context.Context, folderID, name string, data []byte) (string, error) {
	f, err := d.service.Files.
		Create(&drive.File{Name: name, MimeType: jsonMimeType, Parents: []string{folderID}}).
		Fields("id, parents").
		Media(bytes.NewReader(data)).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	return f.Id, nil
}

// Share grants reader access to email.
func (d *DriveStore) Share(ctx context.Context, fileID, email string) (string, error) {
	p, err := d.service.Permissions.
		Create(fileID, &drive.Permission{EmailAddress: email, Type: "user", Role: "reader"}).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	return p.Id, nil
}
