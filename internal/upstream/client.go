// Package upstream is the typed client for the third-party booking
// API. It owns envelope unwrapping, response-shape normalization and
// the candidate-path retry for endpoints whose exact route is not
// reliably known. It performs no caching.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"roomstay-admin/internal/pkg/config"
	"roomstay-admin/internal/pkg/errs"
	"roomstay-admin/internal/pkg/session"
)

const apiKeyHeader = "X-Api-Key"

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	session session.Provider
	logger  *slog.Logger
}

func New(cfg config.UpstreamConfig, sess session.Provider, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		session: sess,
		logger:  logger,
	}
}

// envelope is the upstream's uniform response wrapper. content may be
// an object, an array, or a paged object depending on the endpoint.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Content    json.RawMessage `json:"content"`
}

// pagedContent is the shape the paged-search endpoints use inside the
// envelope.
type pagedContent struct {
	PageIndex int             `json:"pageIndex"`
	PageSize  int             `json:"pageSize"`
	TotalRow  int             `json:"totalRow"`
	Data      json.RawMessage `json:"data"`
}

// Page is the single canonical list shape every caller sees.
type Page[T any] struct {
	Records    []T
	TotalCount int
}

// ListParams are forwarded to list endpoints as query parameters.
type ListParams struct {
	PageIndex int
	PageSize  int
	Keyword   string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.PageIndex > 0 {
		q.Set("pageIndex", strconv.Itoa(p.PageIndex))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
	}
	return q
}

type call struct {
	method string
	path   string
	query  url.Values
	body   any
	authed bool
}

func (c *Client) do(ctx context.Context, cl call) (json.RawMessage, error) {
	var reqBody io.Reader
	if cl.body != nil {
		raw, err := json.Marshal(cl.body)
		if err != nil {
			return nil, WrapAPIErr(c.logger, KindValidation, "failed to encode request body", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, cl.method, cl.path, cl.query, reqBody, cl.authed)
	if err != nil {
		return nil, err
	}
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req)
}

// upload posts a multipart body with a single file part, for the
// avatar/room-image endpoints.
func (c *Client) upload(ctx context.Context, path string, query url.Values, field, filename string, content io.Reader) (json.RawMessage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, WrapAPIErr(c.logger, KindValidation, "failed to build multipart body", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, WrapAPIErr(c.logger, KindValidation, "failed to read upload content", err)
	}
	if err := mw.Close(); err != nil {
		return nil, WrapAPIErr(c.logger, KindValidation, "failed to finalize multipart body", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, query, &buf, true)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.send(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, authed bool) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, WrapAPIErr(c.logger, KindUnavailable, "failed to build request", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)

	if authed {
		id, err := c.session.Current(ctx)
		if err != nil {
			// No round trip for a call that can only bounce with 401.
			return nil, WrapAPIErr(c.logger, KindUnauthorized, "no valid session", err)
		}
		req.Header.Set("Authorization", "Bearer "+id.AccessToken)
	}
	return req, nil
}

func (c *Client) send(req *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, WrapAPIErr(c.logger, KindUnavailable, "upstream request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapAPIErr(c.logger, KindUnavailable, "failed to read upstream response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := kindForStatus(resp.StatusCode)
		msg := upstreamMessage(raw)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, WrapAPIErr(c.logger, kind, msg,
			errs.Newf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode))
	}

	return unwrap(raw), nil
}

// unwrap extracts the content of the {statusCode, content} envelope.
// Some endpoints answer with a bare body; those pass through as-is.
func unwrap(raw []byte) json.RawMessage {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Content != nil {
		return env.Content
	}
	return raw
}

// upstreamMessage digs the human-readable message out of an error
// response. The upstream puts it in content (as a string) or message,
// depending on the endpoint.
func upstreamMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	var s string
	if len(env.Content) > 0 && json.Unmarshal(env.Content, &s) == nil && s != "" {
		return s
	}
	return env.Message
}

// decodePage normalizes the two list shapes the upstream answers with
// (a bare array, or {data, totalRow}) into one canonical Page.
func decodePage[T any](raw json.RawMessage) (Page[T], error) {
	var records []T
	if err := json.Unmarshal(raw, &records); err == nil {
		return Page[T]{Records: records, TotalCount: len(records)}, nil
	}

	var paged pagedContent
	if err := json.Unmarshal(raw, &paged); err != nil || paged.Data == nil {
		return Page[T]{}, errs.New("unrecognized list response shape")
	}
	if err := json.Unmarshal(paged.Data, &records); err != nil {
		return Page[T]{}, errs.Wrap(err, "failed to decode list rows")
	}
	total := paged.TotalRow
	if total < len(records) {
		total = len(records)
	}
	return Page[T]{Records: records, TotalCount: total}, nil
}

// list issues a GET against each candidate path in order until one
// answers, then normalizes the body. Exhausting every candidate is a
// connectivity-class failure.
func list[T any](ctx context.Context, c *Client, paths []string, p ListParams, authed bool) (Page[T], error) {
	var lastErr error
	for _, path := range paths {
		raw, err := c.do(ctx, call{method: http.MethodGet, path: path, query: p.values(), authed: authed})
		if err != nil {
			c.logger.Debug("candidate path failed", slog.String("path", path), slog.String("error", err.Error()))
			lastErr = err
			continue
		}
		page, err := decodePage[T](raw)
		if err != nil {
			lastErr = err
			continue
		}
		return page, nil
	}
	return Page[T]{}, WrapAPIErr(c.logger, KindUnavailable, "all candidate endpoints failed", lastErr)
}

// getOne fetches a single record, trying candidate paths. A 404 from
// the last candidate stays a 404: the id genuinely does not exist.
func getOne[T any](ctx context.Context, c *Client, paths []string, authed bool) (T, error) {
	var zero T
	var lastErr error
	for _, path := range paths {
		raw, err := c.do(ctx, call{method: http.MethodGet, path: path, authed: authed})
		if err != nil {
			lastErr = err
			continue
		}
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			lastErr = errs.Wrap(err, "failed to decode record")
			continue
		}
		return rec, nil
	}
	if IsKind(lastErr, KindNotFound) {
		return zero, lastErr
	}
	return zero, WrapAPIErr(c.logger, KindUnavailable, "all candidate endpoints failed", lastErr)
}

// createOne posts the payload against candidate paths. Permission and
// validation answers are authoritative and short-circuit the loop;
// wrong-path symptoms (404/405, transport noise) move on to the next
// candidate.
func createOne[T any](ctx context.Context, c *Client, paths []string, body any, authed bool) (T, error) {
	var zero T
	var lastErr error
	for _, path := range paths {
		raw, err := c.do(ctx, call{method: http.MethodPost, path: path, body: body, authed: authed})
		if err != nil {
			if authoritative(err) {
				return zero, err
			}
			lastErr = err
			continue
		}
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			lastErr = errs.Wrap(err, "failed to decode created record")
			continue
		}
		return rec, nil
	}
	return zero, WrapAPIErr(c.logger, KindUnavailable, "all candidate endpoints failed", lastErr)
}

func putOne[T any](ctx context.Context, c *Client, path string, body any, authed bool) (T, error) {
	var zero T
	raw, err := c.do(ctx, call{method: http.MethodPut, path: path, body: body, authed: authed})
	if err != nil {
		return zero, err
	}
	var rec T
	if err := json.Unmarshal(raw, &rec); err != nil {
		return zero, WrapAPIErr(c.logger, KindValidation, "failed to decode updated record", err)
	}
	return rec, nil
}

func uploadOne[T any](ctx context.Context, c *Client, path string, query url.Values, field, filename string, content io.Reader) (T, error) {
	var zero T
	raw, err := c.upload(ctx, path, query, field, filename, content)
	if err != nil {
		return zero, err
	}
	var rec T
	if err := json.Unmarshal(raw, &rec); err != nil {
		return zero, WrapAPIErr(c.logger, KindValidation, "failed to decode upload response", err)
	}
	return rec, nil
}
