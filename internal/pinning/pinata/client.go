// Package pinata publishes files to IPFS through the Pinata pinning API.
package pinata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/mandalnilabja/artgen/internal/pinning"
	"go.uber.org/zap"
)

const (
	// DefaultURL is the pinFileToIPFS endpoint.
	DefaultURL = "https://api.pinata.cloud/pinning/pinFileToIPFS"

	// DefaultGatewayURL prefixes content addresses to build public links.
	DefaultGatewayURL = "https://gateway.pinata.cloud/ipfs/"

	defaultTimeout = 60 * time.Second
)

// Options configures a Client.
type Options struct {
	JWT        string
	URL        string
	GatewayURL string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client implements pinning.Publisher for Pinata.
type Client struct {
	jwt        string
	url        string
	gatewayURL string
	client     *http.Client
	logger     *zap.Logger
}

// New creates a Pinata client, filling unset options with defaults.
func New(opts Options) *Client {
	c := &Client{
		jwt:        opts.JWT,
		url:        opts.URL,
		gatewayURL: opts.GatewayURL,
		client:     opts.HTTPClient,
		logger:     opts.Logger,
	}
	if c.url == "" {
		c.url = DefaultURL
	}
	if c.gatewayURL == "" {
		c.gatewayURL = DefaultGatewayURL
	}
	if !strings.HasSuffix(c.gatewayURL, "/") {
		c.gatewayURL += "/"
	}
	if c.client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.client = &http.Client{Timeout: timeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.logger = c.logger.Named("pinata")
	return c
}

// Configured reports whether a JWT is set.
func (c *Client) Configured() bool {
	return c.jwt != ""
}

// GatewayURL returns the public gateway link for a content address.
func (c *Client) GatewayURL(contentAddress string) string {
	return c.gatewayURL + contentAddress
}

// pinataMetadata is the JSON block sent alongside the file.
type pinataMetadata struct {
	Name      string           `json:"name"`
	KeyValues pinning.Metadata `json:"keyvalues"`
}

// pinResponse is the subset of the pinFileToIPFS response we use.
type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// Publish uploads image as a multipart file and returns its IPFS hash.
func (c *Client) Publish(ctx context.Context, image []byte, filename string, meta pinning.Metadata) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("pinata JWT not configured")
	}

	body, contentType, err := encodeUpload(image, filename, meta)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.jwt)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("upload rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return "", &pinning.StatusError{StatusCode: resp.StatusCode}
	}

	var result pinResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.IpfsHash == "" {
		return "", fmt.Errorf("IpfsHash missing from response: %s", string(respBody))
	}

	c.logger.Info("uploaded to IPFS",
		zap.String("ipfs_hash", result.IpfsHash),
		zap.String("filename", filename),
	)
	return result.IpfsHash, nil
}

// filenameEscaper matches multipart.Writer's quoting and drops line breaks
// so a caller-chosen token cannot break out of the part header.
var filenameEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"", "\r", "", "\n", "")

func escapeFilename(name string) string {
	return filenameEscaper.Replace(name)
}

// encodeUpload writes the file part and the pinataMetadata field.
func encodeUpload(image []byte, filename string, meta pinning.Metadata) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeFilename(filename)))
	header.Set("Content-Type", "image/png")

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}

	metaJSON, err := json.Marshal(pinataMetadata{Name: filename, KeyValues: meta})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := writer.WriteField("pinataMetadata", string(metaJSON)); err != nil {
		return nil, "", fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
