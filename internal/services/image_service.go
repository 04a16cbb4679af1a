package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ImageUploader stores an image with an external host and returns its
// public URL. The implementation is picked once at startup.
type ImageUploader interface {
	Upload(filename string, data []byte) (string, error)
}

// NewImageUploader selects the image host for the given credentials.
func NewImageUploader(imgbbAPIKey string) ImageUploader {
	if imgbbAPIKey == "" {
		return &disabledImageUploader{}
	}
	return &imgbbUploader{
		apiKey: imgbbAPIKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type disabledImageUploader struct{}

func (d *disabledImageUploader) Upload(filename string, data []byte) (string, error) {
	return "", fmt.Errorf("image hosting is not configured")
}

// imgbbUploader posts images to the ImgBB upload API.
type imgbbUploader struct {
	apiKey string
	client *http.Client
}

type imgbbResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
}

func (u *imgbbUploader) Upload(filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://api.imgbb.com/1/upload?key=%s", u.apiKey)
	req, err := http.NewRequest(http.MethodPost, url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("imgbb returned status %d", resp.StatusCode)
	}

	var parsed imgbbResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if !parsed.Success || parsed.Data.URL == "" {
		return "", fmt.Errorf("imgbb upload rejected")
	}

	return parsed.Data.URL, nil
}
