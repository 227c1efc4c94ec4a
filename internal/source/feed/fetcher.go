// Package feed fetches and parses RSS, Atom and JSON feeds over HTTP.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"news_reconciler/internal/domain"
)

type Config struct {
	Timeout        time.Duration
	UserAgent      string
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Fetcher retrieves feeds with conditional GET and parses them with gofeed.
type Fetcher struct {
	httpClient     *http.Client
	userAgent      string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func NewFetcher(cfg Config, logger *slog.Logger) *Fetcher {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent:      cfg.UserAgent,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger,
	}
}

// permanentError marks a failure that retrying cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// FetchAndParse downloads link, sending the validators of cg, and parses the
// response. It returns domain.ErrNotModified on 304 and domain.ErrAuthRequired
// on 401 and 403.
func (f *Fetcher) FetchAndParse(ctx context.Context, link string, cg *domain.ConditionalGetInfo) (*domain.FetchResult, error) {
	var result *domain.FetchResult
	var err error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		result, err = f.fetch(ctx, link, cg)
		if err == nil {
			return result, nil
		}

		var permanent *permanentError
		if errors.As(err, &permanent) {
			return nil, permanent.err
		}
		if attempt == f.maxAttempts {
			break
		}

		backoff := f.calculateBackoff(attempt)
		f.logger.Warn("feed request failed, retrying",
			"feed", link,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", f.maxAttempts, err)
}

func (f *Fetcher) fetch(ctx context.Context, link string, cg *domain.ConditionalGetInfo) (*domain.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, &permanentError{fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/feed+json, application/xml;q=0.9, */*;q=0.8")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	if !cg.IsEmpty() {
		if cg.IfNoneMatch != "" {
			req.Header.Set("If-None-Match", cg.IfNoneMatch)
		}
		if cg.IfModifiedSince != "" {
			req.Header.Set("If-Modified-Since", cg.IfModifiedSince)
		}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &permanentError{ctx.Err()}
		}
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified:
		return nil, &permanentError{domain.ErrNotModified}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &permanentError{fmt.Errorf("status %d: %w", resp.StatusCode, domain.ErrAuthRequired)}
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &permanentError{fmt.Errorf("unexpected status: %d", resp.StatusCode)}
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, &permanentError{fmt.Errorf("parse feed: %w", err)}
	}

	finalLink := link
	if resp.Request != nil && resp.Request.URL != nil {
		finalLink = resp.Request.URL.String()
	}

	return &domain.FetchResult{
		Feed: f.transform(link, parsed),
		ConditionalGet: &domain.ConditionalGetInfo{
			Link:            link,
			IfModifiedSince: resp.Header.Get("Last-Modified"),
			IfNoneMatch:     resp.Header.Get("ETag"),
		},
		FinalLink: finalLink,
	}, nil
}

func (f *Fetcher) calculateBackoff(attempt int) time.Duration {
	backoff := f.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if f.maxBackoff > 0 && backoff > f.maxBackoff {
		backoff = f.maxBackoff
	}
	return backoff
}

func (f *Fetcher) transform(link string, parsed *gofeed.Feed) *domain.Feed {
	feed := &domain.Feed{
		Link:        link,
		Title:       strings.TrimSpace(parsed.Title),
		Description: strings.TrimSpace(parsed.Description),
		HomePage:    parsed.Link,
	}
	if parsed.UpdatedParsed != nil {
		feed.PublishDate = *parsed.UpdatedParsed
	} else if parsed.PublishedParsed != nil {
		feed.PublishDate = *parsed.PublishedParsed
	}

	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		feed.News = append(feed.News, transformItem(item))
	}
	return feed
}

// transformItem maps a parsed item. Dates present in the document but not
// understood by the parser are recorded so that merging treats the item as changed.
func transformItem(item *gofeed.Item) *domain.News {
	n := &domain.News{
		GUID:        strings.TrimSpace(item.GUID),
		Link:        strings.TrimSpace(item.Link),
		Title:       strings.TrimSpace(item.Title),
		Description: item.Description,
	}
	if item.Content != "" {
		n.Description = item.Content
	}

	if item.Author != nil {
		n.Author = item.Author.Name
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		n.Author = item.Authors[0].Name
	}

	switch {
	case item.PublishedParsed != nil:
		n.PublishDate = item.PublishedParsed.UTC()
	case item.Published != "":
		n.SetProperty(domain.PropMalformedDate, item.Published)
	}
	switch {
	case item.UpdatedParsed != nil:
		n.ModifiedDate = item.UpdatedParsed.UTC()
	case item.Updated != "":
		n.SetProperty(domain.PropMalformedDate, item.Updated)
	}

	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		length, _ := strconv.ParseInt(enc.Length, 10, 64)
		n.Attachments = append(n.Attachments, domain.Attachment{
			Link:   enc.URL,
			Type:   enc.Type,
			Length: length,
		})
	}
	for _, name := range item.Categories {
		if name = strings.TrimSpace(name); name != "" {
			n.Categories = append(n.Categories, domain.Category{Name: name})
		}
	}
	return n
}
