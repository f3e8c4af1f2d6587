package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const resumeFolder = "resumes"

// CloudinaryUploader stores resumes in Cloudinary. PDFs go up as raw assets
// so Cloudinary does not try to run image processing on them.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// Ensure CloudinaryUploader implements Uploader
var _ Uploader = (*CloudinaryUploader)(nil)

// NewCloudinaryUploader builds an uploader from a CLOUDINARY_URL style URL.
func NewCloudinaryUploader(url string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

// Upload stores the file and returns its public ID and retrievable URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, contentType string) (*UploadResult, error) {
	params := uploader.UploadParams{Folder: resumeFolder}
	if contentType == "application/pdf" {
		params.ResourceType = "raw"
	}

	res, err := u.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}

	return &UploadResult{PublicID: res.PublicID, URL: res.SecureURL}, nil
}
