// Package netx holds small HTTP helpers shared by the object-storage code.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// PutPresigned PUTs body to a presigned object-storage URL. The content type
// must match the one the URL was signed for.
func PutPresigned(url string, body []byte, contentType string) error {
	req, err := http.NewRequest("PUT", url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
