package uploader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Cloudinary uploads through the hosted image API using an unsigned upload
// preset, the way the dashboard frontend used to do it directly
type Cloudinary struct {
	Client    *http.Client
	UploadURL string
	Preset    string
}

func NewCloudinary() *Cloudinary {
	return &Cloudinary{
		Client: &http.Client{Timeout: 30 * time.Second},
		UploadURL: fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload",
			viper.GetString("cloudinary.cloud_name")),
		Preset: viper.GetString("cloudinary.upload_preset"),
	}
}

type cloudinaryResp struct {
	SecureURL string `json:"secure_url"`
}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("file", "upload")
		if err != nil {
			pw.CloseWithError(err)
			return
		}

		if _, err = io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}

		if err = form.WriteField("upload_preset", c.Preset); err != nil {
			pw.CloseWithError(err)
			return
		}

		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UploadURL, pr)
	if err != nil {
		// Unblock the feeding goroutine, nothing will ever read the pipe
		pr.Close()
		return "", ErrUploadFailed
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.Client.Do(req)
	if err != nil {
		zap.L().Error("Image upload request failed", zap.Error(err))
		return "", ErrUploadFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))

		zap.L().Error("Image service rejected upload",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return "", ErrUploadFailed
	}

	var result cloudinaryResp
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		zap.L().Error("Can't decode image service response", zap.Error(err))
		return "", ErrUploadFailed
	}

	// A 2xx without a durable URL is still a failed upload
	if result.SecureURL == "" {
		zap.L().Error("Image service response has no secure_url")
		return "", ErrUploadFailed
	}

	return result.SecureURL, nil
}
