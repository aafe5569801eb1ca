/*
 * This file is part of hh-records-logic.
 *
 * hh-records-logic is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * hh-records-logic is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with hh-records-logic.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"emperror.dev/errors"
	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/healthhub/hh-records-logic/pkg"
	"github.com/sirupsen/logrus"
	"github.com/thedevsaddam/gojsonq/v2"
)

// DefaultURL is the Pinata API endpoint.
const DefaultURL = "https://api.pinata.cloud"

const pageLimit = 1000

type Config struct {
	URL    string
	APIKey string
	Secret string
	// Retries is the number of retries of listing requests. Pin and unpin requests are never retried.
	Retries int
}

// Client implements pkg.PinningClient on the Pinata REST API.
type Client struct {
	config Config
	reads  *retryablehttp.Client
	writes *retryablehttp.Client
}

// APIError is a non-2xx answer of the pinning service.
type APIError struct {
	StatusCode int
	Reason     string
}

func (e APIError) Error() string {
	return fmt.Sprintf("pinning service returned %d: %s", e.StatusCode, e.Reason)
}

type pinMetadata struct {
	Name      string            `json:"name"`
	KeyValues map[string]string `json:"keyvalues,omitempty"`
}

type pinListRow struct {
	IpfsPinHash string    `json:"ipfs_pin_hash"`
	Size        int64     `json:"size"`
	DatePinned  time.Time `json:"date_pinned"`
	Metadata    struct {
		Name      string                 `json:"name"`
		KeyValues map[string]interface{} `json:"keyvalues"`
	} `json:"metadata"`
}

type pinListPage struct {
	Count int          `json:"count"`
	Rows  []pinListRow `json:"rows"`
}

func logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("module", "pinning")
}

func NewClient(config Config) *Client {
	if config.URL == "" {
		config.URL = DefaultURL
	}
	config.URL = strings.TrimRight(config.URL, "/")
	if config.Retries < 0 {
		config.Retries = 0
	}
	return &Client{
		config: config,
		reads:  newHTTPClient(config.Retries),
		writes: newHTTPClient(0),
	}
}

func newHTTPClient(retries int) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5000 * time.Millisecond
	client.RetryMax = retries
	client.Logger = leveledLogger{entry: logger()}
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return client
}

// PinFile uploads content as a single file and returns its content hash.
func (c *Client) PinFile(ctx context.Context, name string, content []byte, keyValues map[string]string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", errors.Wrap(err, "could not create multipart file")
	}
	if _, err := part.Write(content); err != nil {
		return "", errors.Wrap(err, "could not write multipart file")
	}
	metadata, err := json.Marshal(pinMetadata{Name: name, KeyValues: keyValues})
	if err != nil {
		return "", errors.Wrap(err, "could not encode pin metadata")
	}
	if err := writer.WriteField("pinataMetadata", string(metadata)); err != nil {
		return "", errors.Wrap(err, "could not write pin metadata")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "could not finish multipart body")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/pinning/pinFileToIPFS", body.Bytes())
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	response, err := c.do(c.writes, req)
	if err != nil {
		return "", err
	}
	hash, _ := gojsonq.New().JSONString(string(response)).Find("IpfsHash").(string)
	if hash == "" {
		return "", errors.New("pinning service response carries no IpfsHash")
	}
	logger().Debugf("pinned %s as %s (%d bytes)", name, hash, len(content))
	return hash, nil
}

// ListPinned returns every currently pinned file matching filter, following pagination.
func (c *Client) ListPinned(ctx context.Context, filter pkg.PinFilter) ([]pkg.PinnedFile, error) {
	query := url.Values{}
	query.Set("status", "pinned")
	query.Set("pageLimit", strconv.Itoa(pageLimit))
	if filter.PinnedBefore != nil {
		query.Set("pinEnd", filter.PinnedBefore.UTC().Format(time.RFC3339))
	}
	if len(filter.KeyValues) > 0 {
		conditions := map[string]map[string]string{}
		for key, value := range filter.KeyValues {
			conditions[key] = map[string]string{"value": value, "op": "eq"}
		}
		encoded, err := json.Marshal(conditions)
		if err != nil {
			return nil, errors.Wrap(err, "could not encode metadata filter")
		}
		query.Set("metadata[keyvalues]", string(encoded))
	}

	var pinned []pkg.PinnedFile
	for offset := 0; ; offset += pageLimit {
		query.Set("pageOffset", strconv.Itoa(offset))
		req, err := c.newRequest(ctx, http.MethodGet, "/data/pinList?"+query.Encode(), nil)
		if err != nil {
			return nil, err
		}
		response, err := c.do(c.reads, req)
		if err != nil {
			return nil, err
		}
		page := pinListPage{}
		if err := json.Unmarshal(response, &page); err != nil {
			return nil, errors.Wrap(err, "could not decode pin list")
		}
		for _, row := range page.Rows {
			pinned = append(pinned, row.toPinnedFile())
		}
		if len(page.Rows) < pageLimit {
			break
		}
	}
	logger().Debugf("listed %d pins", len(pinned))
	return pinned, nil
}

// Unpin removes the pin of contentHash.
func (c *Client) Unpin(ctx context.Context, contentHash string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/pinning/unpin/"+url.PathEscape(contentHash), nil)
	if err != nil {
		return err
	}
	if _, err := c.do(c.writes, req); err != nil {
		return err
	}
	logger().Debugf("unpinned %s", contentHash)
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*retryablehttp.Request, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.config.URL+path, body)
	if err != nil {
		return nil, errors.WrapIff(err, "error constructing %s request", method)
	}
	req.Header.Set("pinata_api_key", c.config.APIKey)
	req.Header.Set("pinata_secret_api_key", c.config.Secret)
	return req, nil
}

// do sends req and returns the body of a 2xx response.
func (c *Client) do(client *retryablehttp.Client, req *retryablehttp.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.WrapIff(err, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read pinning service response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, APIError{StatusCode: resp.StatusCode, Reason: reason(body)}
	}
	return body, nil
}

// reason extracts the error message from either {"error": "..."} or {"error": {"reason", "details"}}.
func reason(body []byte) string {
	if details, ok := gojsonq.New().JSONString(string(body)).Find("error.details").(string); ok && details != "" {
		return details
	}
	if reason, ok := gojsonq.New().JSONString(string(body)).Find("error.reason").(string); ok && reason != "" {
		return reason
	}
	if message, ok := gojsonq.New().JSONString(string(body)).Find("error").(string); ok && message != "" {
		return message
	}
	return strings.TrimSpace(string(body))
}

func (r pinListRow) toPinnedFile() pkg.PinnedFile {
	keyValues := make(map[string]string, len(r.Metadata.KeyValues))
	for key, value := range r.Metadata.KeyValues {
		if s, ok := value.(string); ok {
			keyValues[key] = s
		} else if value != nil {
			keyValues[key] = fmt.Sprint(value)
		}
	}
	return pkg.PinnedFile{
		ContentHash: r.IpfsPinHash,
		Name:        r.Metadata.Name,
		KeyValues:   keyValues,
		PinnedAt:    r.DatePinned,
		Size:        r.Size,
	}
}

// leveledLogger routes retryablehttp logging to logrus.
type leveledLogger struct {
	entry *logrus.Entry
}

func (l leveledLogger) with(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.entry.WithFields(fields)
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Error(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Info(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Warn(msg)
}
