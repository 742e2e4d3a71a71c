// Package model defines the data structures exchanged between the HTTP
// surface, the service layer, and the snippet store.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Snippet is the stored entity. It is written once at upload time and never
// mutated afterwards. ExpiryTime is a formatted display string; the
// authoritative expiry is the TTL the backing store counts down on the key.
type Snippet struct {
	Title      string `json:"title"`
	Code       string `json:"code"`
	Language   string `json:"language"`
	ExpiryTime string `json:"expiry_time"`
}

// Minutes is a duration in whole minutes that accepts both JSON numbers and
// numeric strings. Frontends have historically sent expiryTime either way.
type Minutes int

func (m *Minutes) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("model: expiry time must be a number: %w", err)
	}
	*m = Minutes(n)
	return nil
}

func (m Minutes) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(m))
}

// UploadRequest is the body of POST /temp-file-upload.
type UploadRequest struct {
	Code       string  `json:"code"`
	Language   string  `json:"language"`
	Title      string  `json:"title"`
	ExpiryTime Minutes `json:"expiryTime"`
}

// UploadResponse is returned on a successful upload.
type UploadResponse struct {
	Message    string `json:"message"`
	FileURL    string `json:"fileUrl"`
	ExpiryTime string `json:"expiry_time"`
}
