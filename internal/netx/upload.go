// Package netx uploads media straight to object storage through presigned URLs.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

var httpClient = &http.Client{Timeout: 5 * time.Minute}

// PutPresigned uploads data with a PUT to a presigned URL. The content type
// is sniffed from data when contentType is empty.
func PutPresigned(ctx context.Context, url string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
