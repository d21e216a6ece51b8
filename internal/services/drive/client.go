package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"themesync/internal/services"
)

const folderMimeType = "application/vnd.google-apps.folder"

// ErrEmptyDownload marks a completed download whose result was zero bytes.
// The file has already been removed when this is returned; the item simply
// has no usable theme.
var ErrEmptyDownload = errors.New("downloaded file is empty")

// Folder is one parsed movie folder from the drive listing. Year is the
// empty string when the folder name carries no parenthesized year.
type Folder struct {
	Title string
	Year  string
	ID    string
}

// Service defines the cloud-storage operations used by the sync engine.
type Service interface {
	ListMovieFolders(ctx context.Context) ([]Folder, error)
	FindFile(ctx context.Context, folderID, name string) (string, error)
	Download(ctx context.Context, fileID, destPath string) error
}

// Client lists and downloads from a single Google Drive folder tree.
type Client struct {
	svc       *gdrive.Service
	folderID  string
	pageSize  int64
	pageDelay time.Duration
}

var _ Service = (*Client)(nil)

// NewService builds the underlying Drive API service with an API key.
// Additional options are applied after the key, which lets tests redirect the
// endpoint.
func NewService(ctx context.Context, apiKey string, opts ...option.ClientOption) (*gdrive.Service, error) {
	all := make([]option.ClientOption, 0, len(opts)+1)
	if apiKey != "" {
		all = append(all, option.WithAPIKey(apiKey))
	}
	all = append(all, opts...)
	svc, err := gdrive.NewService(ctx, all...)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "drive", "build service", "", err)
	}
	return svc, nil
}

// NewClient wraps a Drive service for one root folder.
func NewClient(svc *gdrive.Service, folderID string, pageSize int, pageDelay time.Duration) *Client {
	if pageSize <= 0 || pageSize > 1000 {
		pageSize = 1000
	}
	return &Client{
		svc:       svc,
		folderID:  folderID,
		pageSize:  int64(pageSize),
		pageDelay: pageDelay,
	}
}

// ListMovieFolders pages through every child folder of the root, parses each
// name into (title, year), and returns the result sorted by title. A
// throttling denial on any page fails the whole listing.
func (c *Client) ListMovieFolders(ctx context.Context) ([]Folder, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType='%s'", escapeQueryValue(c.folderID), folderMimeType)

	var folders []Folder
	pageToken := ""
	for {
		call := c.svc.Files.List().
			Q(query).
			Fields("nextPageToken", "files(id, name)").
			PageSize(c.pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		res, err := call.Do()
		if err != nil {
			return nil, classify("list folders", err)
		}

		for _, file := range res.Files {
			title, year := ParseFolderName(file.Name)
			folders = append(folders, Folder{Title: title, Year: year, ID: file.Id})
		}

		pageToken = res.NextPageToken
		if pageToken == "" {
			break
		}
		// Short fixed delay between pages to reduce throttling.
		if err := sleepCtx(ctx, c.pageDelay); err != nil {
			return nil, err
		}
	}

	sort.Slice(folders, func(i, j int) bool { return folders[i].Title < folders[j].Title })
	return folders, nil
}

// FindFile looks for a file with the exact given name inside a folder and
// returns its id, or the empty string when the folder holds no such file.
func (c *Client) FindFile(ctx context.Context, folderID, name string) (string, error) {
	query := fmt.Sprintf("'%s' in parents and name='%s'", escapeQueryValue(folderID), escapeQueryValue(name))
	res, err := c.svc.Files.List().
		Q(query).
		Fields("files(id, name)").
		PageSize(10).
		Context(ctx).
		Do()
	if err != nil {
		return "", classify("find file", err)
	}
	if len(res.Files) == 0 {
		return "", nil
	}
	return res.Files[0].Id, nil
}

// Download streams a remote file to destPath. Any failure mid-stream removes
// the partial file before the error propagates; a zero-byte result is removed
// and reported as ErrEmptyDownload.
func (c *Client) Download(ctx context.Context, fileID, destPath string) error {
	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return classify("download", err)
	}
	defer resp.Body.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}

	written, copyErr := io.Copy(dest, resp.Body)
	closeErr := dest.Close()
	if copyErr != nil {
		_ = os.Remove(destPath)
		return classify("download", copyErr)
	}
	if closeErr != nil {
		_ = os.Remove(destPath)
		return fmt.Errorf("close %s: %w", destPath, closeErr)
	}
	if written == 0 {
		_ = os.Remove(destPath)
		return ErrEmptyDownload
	}
	return nil
}

// classify maps a Drive API failure to the error taxonomy: a 403 is a
// rate-limit signal that must surface to the batch runner untouched.
func classify(operation string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 403 {
		return services.Wrap(services.ErrRateLimited, "drive", operation, "quota denied", err)
	}
	return services.Wrap(services.ErrTransient, "drive", operation, "", err)
}

func escapeQueryValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `'`, `\'`)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
