// Package comments is a client for the remote comments HTTP/JSON API.
package comments

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/samvad-hq/samvad-comments/pkg/httpclient"
	"github.com/samvad-hq/samvad-comments/pkg/jsonutil"
)

const (
	listPath    = "/comments"
	commentPath = "/comment"

	contentTypeJSON = "application/json"
)

// Client lists, creates and updates comments through an injected transport.
// It holds no per-call state; concurrent use is as safe as the transport.
type Client struct {
	http    httpclient.Client
	baseURI string
	log     Logger
}

// Option customises a Client.
type Option func(*Client)

// WithLogger attaches a logger for request tracing.
func WithLogger(log Logger) Option {
	return func(c *Client) {
		c.log = ensureLogger(log)
	}
}

// NewClient returns a Client sending requests to baseURI through transport.
// Leading and trailing slashes are trimmed from baseURI.
func NewClient(transport httpclient.Client, baseURI string, opts ...Option) *Client {
	c := &Client{
		http:    transport,
		baseURI: strings.Trim(baseURI, "/"),
		log:     noopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURI returns the normalised base URI.
func (c *Client) BaseURI() string { return c.baseURI }

// List returns every comment in server order.
func (c *Client) List(ctx context.Context) ([]Comment, error) {
	var payloads []commentPayload
	if err := c.sendRequest(ctx, http.MethodGet, listPath, nil, &payloads); err != nil {
		return nil, err
	}
	if payloads == nil {
		return nil, &InvalidDataError{Message: "invalid response data: expected a JSON array"}
	}

	out := make([]Comment, 0, len(payloads))
	for i, p := range payloads {
		comment, err := p.toComment()
		if err != nil {
			return nil, invalidData(err, "invalid response data: comments[%d]: %s", i, err)
		}
		out = append(out, comment)
	}
	return out, nil
}

// Create posts name and text and returns the stored comment with its new id.
// Any id already set on comment is not sent.
func (c *Client) Create(ctx context.Context, comment Comment) (Comment, error) {
	body, err := c.encodeBodyContent(comment)
	if err != nil {
		return Comment{}, err
	}
	return c.sendComment(ctx, http.MethodPost, commentPath, body)
}

// Update replaces name and text of the comment identified by comment's id.
func (c *Client) Update(ctx context.Context, comment Comment) (Comment, error) {
	id, ok := comment.ID()
	if !ok {
		return Comment{}, &InvalidDataError{Message: "comment id is required for update"}
	}
	body, err := c.encodeBodyContent(comment)
	if err != nil {
		return Comment{}, err
	}
	return c.sendComment(ctx, http.MethodPut, commentPath+"/"+strconv.FormatInt(id, 10), body)
}

func (c *Client) sendComment(ctx context.Context, method, path string, body []byte) (Comment, error) {
	var payload commentPayload
	if err := c.sendRequest(ctx, method, path, body, &payload); err != nil {
		return Comment{}, err
	}
	comment, err := payload.toComment()
	if err != nil {
		return Comment{}, invalidData(err, "invalid response data: %s", err)
	}
	return comment, nil
}

// sendRequest dispatches one request and decodes a 200 response into out.
// Transport errors are returned untouched.
func (c *Client) sendRequest(ctx context.Context, method, path string, body []byte, out any) error {
	req := httpclient.Request{
		Method:  method,
		URL:     c.baseURI + path,
		Headers: map[string]string{"Content-Type": contentTypeJSON},
		Body:    body,
	}

	c.log.DebugObj("comments request", "comments_request", map[string]any{
		"method": req.Method,
		"url":    req.URL,
	})

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return err
	}
	content := string(resp.Body())

	if resp.StatusCode() != http.StatusOK {
		c.log.WarnObj("comments request rejected", "comments_response", map[string]any{
			"method": req.Method,
			"url":    req.URL,
			"status": resp.StatusCode(),
		})
		return &BadResponseError{Body: content, StatusCode: resp.StatusCode()}
	}

	return decodeBodyContent(content, out)
}

func decodeBodyContent(content string, out any) error {
	if content == "" {
		return &InvalidDataError{Message: "response data is empty"}
	}
	if err := jsonutil.DecodeInto([]byte(content), out); err != nil {
		return invalidData(err, "invalid response data: %s", err)
	}
	return nil
}

func (c *Client) encodeBodyContent(comment Comment) ([]byte, error) {
	data, err := jsonutil.Encode(map[string]string{
		"name": comment.Name(),
		"text": comment.Text(),
	})
	if err != nil {
		return nil, invalidData(err, "invalid request data: %s", err)
	}
	return data, nil
}
