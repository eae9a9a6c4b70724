package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
)

// Profile mirrors the JSON returned by the service. Picture is nil when the
// user has no stored picture.
type Profile struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Picture  []byte `json:"profile_picture"`
}

// Registration holds the text fields of a registration form.
type Registration struct {
	FullName string
	Email    string
	Password []byte
	Phone    string
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Register uploads the form and picture and returns the created profile.
func (c *HTTPClient) Register(ctx context.Context, reg Registration, pictureName string, picture io.Reader) (*Profile, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fields := [][2]string{
		{"full_name", reg.FullName},
		{"email", reg.Email},
		{"password", string(reg.Password)},
		{"phone", reg.Phone},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, err
		}
	}

	part, err := mw.CreateFormFile(common.ProfilePictureField, pictureName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, picture); err != nil {
		return nil, fmt.Errorf("read picture: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/register", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var p Profile
	if err := c.do(req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, userID int64) (*Profile, error) {
	url := c.baseURL + "/user/" + strconv.FormatInt(userID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var p Profile
	if err := c.do(req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// do sends req and decodes a 2xx JSON body into out when out is non-nil.
func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
