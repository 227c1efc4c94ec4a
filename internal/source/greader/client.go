// Package greader talks to a synchronization service implementing the
// Google Reader API: it reads feed streams carrying read, starred and label
// state, and pushes local changes back with edit-tag.
package greader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"news_reconciler/internal/domain"
)

const (
	stateRead    = "user/-/state/com.google/read"
	stateStarred = "user/-/state/com.google/starred"
	labelPrefix  = "user/-/label/"
	userPrefix   = "user/"
)

type Config struct {
	BaseURL   string
	AuthToken string
	Timeout   time.Duration
	MaxItems  int
}

type Client struct {
	baseURL  string
	token    string
	maxItems int
	http     *http.Client
	logger   *slog.Logger
}

func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	maxItems := cfg.MaxItems
	if maxItems < 1 {
		maxItems = 200
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.AuthToken,
		maxItems: maxItems,
		http:     httpClient,
		logger:   logger,
	}
}

type link struct {
	Href string `json:"href"`
	Type string `json:"type,omitempty"`
}

type content struct {
	Content string `json:"content"`
}

type enclosure struct {
	Href   string `json:"href"`
	Type   string `json:"type"`
	Length string `json:"length"`
}

type streamItem struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Published  int64       `json:"published"`
	Updated    int64       `json:"updated"`
	Author     string      `json:"author"`
	Canonical  []link      `json:"canonical"`
	Alternate  []link      `json:"alternate"`
	Summary    *content    `json:"summary"`
	Content    *content    `json:"content"`
	Categories []string    `json:"categories"`
	Enclosure  []enclosure `json:"enclosure"`
}

type streamContents struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Updated     int64        `json:"updated"`
	Alternate   []link       `json:"alternate"`
	Items       []streamItem `json:"items"`
}

// FetchAndParse reads the stream of the feed at link. Every news carries the
// remote read, starred and label state as markers for reconciliation. The
// service has no conditional GET, so cg is ignored.
func (c *Client) FetchAndParse(ctx context.Context, link string, _ *domain.ConditionalGetInfo) (*domain.FetchResult, error) {
	q := make(url.Values)
	q.Set("n", strconv.Itoa(c.maxItems))
	q.Set("output", "json")

	path := "/reader/api/0/stream/contents/" + url.PathEscape("feed/"+link) + "?" + q.Encode()
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stream contents request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "stream contents"); err != nil {
		return nil, err
	}

	var stream streamContents
	if err := json.NewDecoder(resp.Body).Decode(&stream); err != nil {
		return nil, fmt.Errorf("decode stream contents response: %w", err)
	}

	return &domain.FetchResult{
		Feed:      transform(link, &stream),
		FinalLink: link,
	}, nil
}

// SendBatch applies each delta with one edit-tag call. Failures of single
// items are reported in the status; only an authentication failure or a
// cancelled context abort the batch.
func (c *Client) SendBatch(ctx context.Context, items []*domain.SyncItem) (domain.SyncStatus, error) {
	status := domain.SyncStatus{Total: len(items)}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return status, err
		}

		err := c.editTag(ctx, item)
		switch {
		case err == nil:
			status.Applied++
		case errors.Is(err, domain.ErrAuthRequired):
			return status, err
		default:
			if status.Errors == nil {
				status.Errors = make(map[string]error)
			}
			status.Errors[item.ID] = err
			c.logger.Warn("sync item rejected", "item", item.ID, "error", err)
		}
	}
	return status, nil
}

func (c *Client) editTag(ctx context.Context, item *domain.SyncItem) error {
	form := make(url.Values)
	form.Set("i", item.ID)

	add := func(tag string) { form.Add("a", tag) }
	remove := func(tag string) { form.Add("r", tag) }

	if item.MarkedRead {
		add(stateRead)
	}
	if item.MarkedUnread {
		remove(stateRead)
	}
	if item.Starred {
		add(stateStarred)
	}
	if item.Unstarred {
		remove(stateStarred)
	}
	for _, name := range item.AddedLabels {
		add(labelPrefix + name)
	}
	for _, name := range item.RemovedLabels {
		remove(labelPrefix + name)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/reader/api/0/edit-tag", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("edit tag request failed: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp, "edit tag")
}

func checkStatus(resp *http.Response, resource string) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%s failed with status %d: %w", resource, resp.StatusCode, domain.ErrAuthRequired)
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%s failed with status %d: %s", resource, resp.StatusCode, strings.TrimSpace(string(body)))
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "GoogleLogin auth="+c.token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func transform(feedLink string, stream *streamContents) *domain.Feed {
	feed := &domain.Feed{
		Link:        feedLink,
		Title:       stream.Title,
		Description: stream.Description,
	}
	if len(stream.Alternate) > 0 {
		feed.HomePage = stream.Alternate[0].Href
	}
	if stream.Updated > 0 {
		feed.PublishDate = time.Unix(stream.Updated, 0).UTC()
	}

	for i := range stream.Items {
		feed.News = append(feed.News, transformItem(&stream.Items[i]))
	}
	return feed
}

func transformItem(item *streamItem) *domain.News {
	n := &domain.News{
		GUID:   item.ID,
		Title:  item.Title,
		Author: item.Author,
	}
	switch {
	case len(item.Canonical) > 0:
		n.Link = item.Canonical[0].Href
	case len(item.Alternate) > 0:
		n.Link = item.Alternate[0].Href
	}
	switch {
	case item.Content != nil && item.Content.Content != "":
		n.Description = item.Content.Content
	case item.Summary != nil:
		n.Description = item.Summary.Content
	}
	if item.Published > 0 {
		n.PublishDate = time.Unix(item.Published, 0).UTC()
	}
	if item.Updated > 0 && item.Updated != item.Published {
		n.ModifiedDate = time.Unix(item.Updated, 0).UTC()
	}
	for _, enc := range item.Enclosure {
		if enc.Href == "" {
			continue
		}
		length, _ := strconv.ParseInt(enc.Length, 10, 64)
		n.Attachments = append(n.Attachments, domain.Attachment{Link: enc.Href, Type: enc.Type, Length: length})
	}

	read, starred := false, false
	labels := []string{}
	for _, category := range item.Categories {
		switch {
		case category == stateRead:
			read = true
		case category == stateStarred:
			starred = true
		case strings.HasPrefix(category, labelPrefix):
			labels = append(labels, strings.TrimPrefix(category, labelPrefix))
		case strings.HasPrefix(category, userPrefix):
			// other service state such as reading-list
		default:
			n.Categories = append(n.Categories, domain.Category{Name: category})
		}
	}

	if read {
		n.SetProperty(domain.PropRemoteRead, true)
	} else {
		n.SetProperty(domain.PropRemoteUnread, true)
	}
	n.SetProperty(domain.PropRemoteStarred, starred)
	n.SetProperty(domain.PropRemoteLabels, labels)
	return n
}
