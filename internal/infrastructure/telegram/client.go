package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/invoicebot/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the Telegram Bot API
type Client struct {
	httpClient  *http.Client
	token       string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Telegram Bot API client.
// baseURL is normally https://api.telegram.org; tests point it at a local server.
func NewClient(token, baseURL string) *Client {
	// Telegram allows roughly 30 outgoing messages per second per bot
	limiter := rate.NewLimiter(rate.Limit(30), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		token:       token,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables or disables request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// methodURL builds the endpoint URL for a Bot API method
func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

// exponentialBackoff returns the wait duration before the given retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(250*(1<<attempt)) * time.Millisecond
}

// apiResponse is the envelope every Bot API method returns
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// SendMessage sends a plain-text message to a chat.
// Transient failures are retried up to 3 times with backoff.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("%w: encode payload: %v", domain.ErrDeliveryFailed, err)
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %v", domain.ErrDeliveryFailed, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendMessage"), bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("%w: build request: %v", domain.ErrDeliveryFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")

		if err := c.do(req); err != nil {
			log.Printf("[TELEGRAM] sendMessage attempt %d failed for chat %d: %v", attempt, chatID, err)
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		if c.debug {
			log.Printf("[TELEGRAM] Message sent to chat %d (%d chars)", chatID, len(text))
		}
		return nil
	}

	return lastErr
}

// SendDocument uploads a file to a chat as a document attachment
func (c *Client) SendDocument(ctx context.Context, chatID int64, path string) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", domain.ErrDeliveryFailed, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open document: %v", domain.ErrDeliveryFailed, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return fmt.Errorf("%w: write field: %v", domain.ErrDeliveryFailed, err)
	}
	part, err := writer.CreateFormFile("document", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("%w: create form file: %v", domain.ErrDeliveryFailed, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("%w: copy document: %v", domain.ErrDeliveryFailed, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("%w: finish form: %v", domain.ErrDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendDocument"), &body)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	if err := c.do(req); err != nil {
		return err
	}

	if c.debug {
		log.Printf("[TELEGRAM] Document %s sent to chat %d", filepath.Base(path), chatID)
	}
	return nil
}

// do executes a request and decodes the Bot API envelope, treating both
// transport errors and ok=false responses as delivery failures
func (c *Client) do(req *http.Request) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", domain.ErrDeliveryFailed, resp.StatusCode, string(respBody))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrDeliveryFailed, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("%w: %s", domain.ErrDeliveryFailed, apiResp.Description)
	}

	return nil
}
