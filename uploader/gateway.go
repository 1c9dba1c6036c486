// Package uploader sends image files to external storage and hands back
// durable URLs
package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/viper"
)

// ErrUploadFailed is the single failure condition a gateway reports. A
// network error, a rejected upload and a success response without a usable
// URL all collapse into it. There is no retry and no classification, a
// failed upload fails the whole enclosing operation.
var ErrUploadFailed = errors.New("image upload failed")

// Gateway forwards one file to the configured image storage and returns the
// URL it will be served from
type Gateway interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
}

// New picks the gateway implementation from storage.type
func New() (Gateway, error) {
	switch t := viper.GetString("storage.type"); t {
	case "cloudinary":
		return NewCloudinary(), nil
	case "s3":
		return NewS3()
	default:
		return nil, fmt.Errorf("unknown storage type %q", t)
	}
}
