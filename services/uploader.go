package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// AttachmentUploader tải giấy tờ của khách lên kho lưu trữ, trả về URL.
// Remove xóa file đã tải khi đặt phòng không thành công.
type AttachmentUploader interface {
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
	Remove(ctx context.Context, fileURL string) error
}

// CloudinaryUploader lưu file lên Cloudinary
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary, folder string) *CloudinaryUploader {
	if folder == "" {
		folder = "guest-documents"
	}
	return &CloudinaryUploader{cld: cld, folder: folder}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: u.folder})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload %s: %s", filename, resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (u *CloudinaryUploader) Remove(ctx context.Context, fileURL string) error {
	publicID, err := publicIDFromURL(fileURL)
	if err != nil {
		return err
	}
	resp, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("remove %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("remove %s: %s", publicID, resp.Error.Message)
	}
	return nil
}

// publicIDFromURL lấy public id từ secure URL:
//
//	https://res.cloudinary.com/demo/image/upload/v1712/guest-documents/abc.jpg -> guest-documents/abc
func publicIDFromURL(fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("parse attachment url: %w", err)
	}
	_, rest, ok := strings.Cut(parsed.Path, "/upload/")
	if !ok || rest == "" {
		return "", fmt.Errorf("not a cloudinary upload url: %s", fileURL)
	}
	if version, tail, found := strings.Cut(rest, "/"); found && isVersionSegment(version) {
		rest = tail
	}
	return strings.TrimSuffix(rest, path.Ext(rest)), nil
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
