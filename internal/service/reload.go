package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"news_reconciler/internal/config"
	"news_reconciler/internal/domain"
	"news_reconciler/internal/filter"
	"news_reconciler/internal/locking"
	"news_reconciler/internal/merge"
	"news_reconciler/internal/remotesync"
	"news_reconciler/internal/retention"
)

// Stores groups the persistence collaborators of a ReloadService.
type Stores struct {
	Feeds         FeedStore
	News          NewsStore
	Labels        LabelStore
	Preferences   PreferenceStore
	SyncItems     SyncItemStore
	Subscriptions SubscriptionStore
	Index         NewsIndex
}

// Engines groups the computation stages a reload runs through.
type Engines struct {
	Merge      *merge.Engine
	Reconciler *remotesync.Reconciler
	Retention  *retention.Enforcer
	Filters    *filter.Engine
}

type ReloadService struct {
	fetcher     Fetcher
	syncFetcher Fetcher
	stores      Stores
	engines     Engines
	txManager   TransactionManager
	publisher   Publisher
	syncQueue   SyncQueue
	listeners   []Listener
	commitLock  *locking.CommitLock
	newsLocks   *locking.NewsLocks
	logger      *slog.Logger
	config      config.ReloadConfig
	now         func() time.Time
}

func NewReloadService(
	fetcher Fetcher,
	stores Stores,
	engines Engines,
	txManager TransactionManager,
	commitLock *locking.CommitLock,
	newsLocks *locking.NewsLocks,
	logger *slog.Logger,
	cfg config.ReloadConfig,
) *ReloadService {
	return &ReloadService{
		fetcher:    fetcher,
		stores:     stores,
		engines:    engines,
		txManager:  txManager,
		commitLock: commitLock,
		newsLocks:  newsLocks,
		logger:     logger,
		config:     cfg,
		now:        time.Now,
	}
}

// WithSync enables reloading sync-enabled subscriptions through fetcher and
// forwarding filter decisions on their news to queue.
func (s *ReloadService) WithSync(fetcher Fetcher, queue SyncQueue) *ReloadService {
	s.syncFetcher = fetcher
	s.syncQueue = queue
	return s
}

func (s *ReloadService) WithPublisher(p Publisher) *ReloadService {
	s.publisher = p
	return s
}

// AddListener registers l to receive the events of every committed reload.
func (s *ReloadService) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

// reload carries the state of one Reload call between its steps.
type reload struct {
	sub          domain.Subscription
	runRetention bool
	logger       *slog.Logger
	stats        *domain.ReloadStats

	fetched   *domain.FetchResult
	storedCG  *domain.ConditionalGetInfo
	result    *domain.MergeResult
	moved     []*domain.News
	filterEvt domain.EventBuffer
	claimed   []*domain.News
}

// Reload fetches the feed of sub and commits whatever changed. Cancelling ctx
// before the commit starts abandons the reload without writing anything; a
// commit that has started always completes. Failures are recorded as the
// subscription's error state.
func (s *ReloadService) Reload(ctx context.Context, sub domain.Subscription, runRetention bool) (*domain.ReloadStats, error) {
	startTime := time.Now()
	r := &reload{
		sub:          sub,
		runRetention: runRetention,
		logger:       s.logger.With("feed", sub.FeedLink),
		stats:        &domain.ReloadStats{FeedLink: sub.FeedLink},
	}

	err := s.reload(ctx, r)
	r.stats.Duration = time.Since(startTime)

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		r.stats.Cancelled = true
		r.logger.Info("reload cancelled", "duration", r.stats.Duration)
		return r.stats, nil
	case errors.Is(err, domain.ErrNotFound):
		r.logger.Info("feed deleted during reload")
		return r.stats, nil
	default:
		r.logger.Error("reload failed", "error", err)
		if markErr := s.stores.Subscriptions.MarkError(context.WithoutCancel(ctx), sub.FeedLink, err.Error()); markErr != nil {
			r.logger.Error("failed to record reload error", "error", markErr)
		}
		return r.stats, err
	}

	if err := s.stores.Subscriptions.MarkSuccess(context.WithoutCancel(ctx), sub.FeedLink); err != nil {
		r.logger.Warn("failed to record reload success", "error", err)
	}

	r.logger.Info("reload completed",
		"fetched", r.stats.Fetched,
		"new", r.stats.New,
		"updated", r.stats.Updated,
		"deleted", r.stats.Deleted,
		"filtered", r.stats.Filtered,
		"not_modified", r.stats.NotModified,
		"duration", r.stats.Duration,
	)
	return r.stats, nil
}

func (s *ReloadService) reload(ctx context.Context, r *reload) error {
	done, err := s.fetch(ctx, r)
	if err != nil || done {
		return err
	}

	steps := []func(context.Context, *reload) error{
		s.mergeFeed,
		s.reconcile,
		s.detectDuplicates,
		s.enforceRetention,
		s.applyFilters,
		s.assignIDs,
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(ctx, r); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.commit(context.WithoutCancel(ctx), r)
}

// fetch retrieves the feed. It reports done when there is nothing to merge.
func (s *ReloadService) fetch(ctx context.Context, r *reload) (bool, error) {
	cg, err := s.stores.Preferences.ConditionalGet(ctx, r.sub.FeedLink)
	if err != nil {
		return false, fmt.Errorf("load conditional get: %w", err)
	}
	r.storedCG = cg

	fetcher := s.fetcher
	if r.sub.SyncEnabled && s.syncFetcher != nil {
		fetcher = s.syncFetcher
	}

	fetched, err := fetcher.FetchAndParse(ctx, r.sub.FeedLink, cg)
	if errors.Is(err, domain.ErrNotModified) {
		r.stats.NotModified = true
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("fetch feed: %w", err)
	}
	if fetched.FinalLink != "" && fetched.FinalLink != r.sub.FeedLink {
		r.logger.Debug("feed served from another location", "final_link", fetched.FinalLink)
	}

	r.fetched = fetched
	r.stats.Fetched = len(fetched.Feed.News)
	return false, nil
}

func (s *ReloadService) syncing(r *reload) bool {
	return r.sub.SyncEnabled && s.engines.Reconciler != nil
}

func (s *ReloadService) mergeFeed(ctx context.Context, r *reload) error {
	persisted, err := s.stores.Feeds.LoadByLink(ctx, r.sub.FeedLink)
	if err != nil {
		return fmt.Errorf("load feed: %w", err)
	}
	incoming := r.fetched.Feed

	merge.CopyProperties(persisted, incoming)

	if s.syncing(r) {
		uncommitted, err := s.stores.SyncItems.LoadUncommitted(ctx)
		if err != nil {
			return fmt.Errorf("load uncommitted sync items: %w", err)
		}
		if marked := s.engines.Reconciler.PreMerge(incoming, uncommitted); marked > 0 {
			r.logger.Debug("pending sync items attached", "count", marked)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	r.result = s.engines.Merge.Merge(persisted, incoming)
	return nil
}

func (s *ReloadService) reconcile(ctx context.Context, r *reload) error {
	if !s.syncing(r) {
		r.result.Touched = nil
		return nil
	}
	if err := s.engines.Reconciler.PostMerge(ctx, r.result); err != nil {
		return fmt.Errorf("reconcile sync state: %w", err)
	}
	return nil
}

// detectDuplicates copies the state of an equivalent news of another feed
// onto each new item.
func (s *ReloadService) detectDuplicates(ctx context.Context, r *reload) error {
	if !s.config.DetectDuplicates || s.stores.Index == nil {
		return nil
	}

	for _, n := range r.result.Added {
		var (
			id    int64
			other *domain.News
		)
		err := s.commitLock.View(func() error {
			var err error
			if id, err = s.findEquivalent(ctx, n); err != nil || id == 0 {
				return err
			}
			other, err = s.loadCommitted(ctx, id)
			return err
		})
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn("search index references deleted news", "news_id", id, "identity", n.Identity())
			if err := s.stores.Preferences.FlagIndexRepair(ctx); err != nil {
				r.logger.Warn("failed to flag index repair", "error", err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("find equivalent news: %w", err)
		}
		if other != nil && other.State.Visible() {
			n.State = other.State
		}
	}
	return nil
}

// loadCommitted reads a news of another feed under its read lock, so a
// concurrent commit writing it is never observed halfway.
func (s *ReloadService) loadCommitted(ctx context.Context, id int64) (*domain.News, error) {
	unlock := s.newsLocks.RLock(id)
	defer unlock()
	return s.stores.News.GetNews(ctx, id)
}

func (s *ReloadService) findEquivalent(ctx context.Context, n *domain.News) (int64, error) {
	if n.GUID != "" {
		id, err := s.stores.Index.FindByGUID(ctx, n.GUID, n.FeedLink)
		if err != nil || id != 0 {
			return id, err
		}
	}
	if n.Link != "" {
		return s.stores.Index.FindByLink(ctx, n.Link, n.FeedLink)
	}
	return 0, nil
}

func (s *ReloadService) enforceRetention(ctx context.Context, r *reload) error {
	if !r.runRetention {
		return nil
	}
	pref, err := s.stores.Preferences.Retention(ctx, r.sub.FeedLink)
	if err != nil {
		return fmt.Errorf("load retention preference: %w", err)
	}
	deleted := s.engines.Retention.Enforce(r.result, pref)
	if len(deleted) > 0 {
		r.logger.Debug("retention selected news", "count", len(deleted))
	}
	return nil
}

func (s *ReloadService) applyFilters(ctx context.Context, r *reload) error {
	if s.engines.Filters == nil || len(r.result.Added) == 0 {
		return nil
	}

	res, err := s.engines.Filters.Apply(ctx, r.result.Added, r.sub.FeedLink, &r.filterEvt)
	if err != nil {
		return fmt.Errorf("apply filters: %w", err)
	}
	r.claimed = res.Claimed
	r.stats.Filtered = res.Filtered

	for _, moved := range res.Replacements {
		exists, err := s.stores.Feeds.FeedExists(ctx, moved.FeedLink)
		if err != nil {
			return fmt.Errorf("check move target: %w", err)
		}
		if !exists {
			r.logger.Warn("move target feed does not exist", "target", moved.FeedLink, "identity", moved.Identity())
			continue
		}
		r.moved = append(r.moved, moved)
	}

	for _, n := range slices.Clone(r.result.Added) {
		if !n.State.Visible() {
			r.result.Drop(n)
		}
	}
	return nil
}

// assignIDs gives persistence IDs to the news that survived filtering.
func (s *ReloadService) assignIDs(ctx context.Context, r *reload) error {
	pending := append(slices.Clone(r.result.Added), r.moved...)
	if len(pending) == 0 {
		return nil
	}
	ids, err := s.stores.News.NextIDs(ctx, len(pending))
	if err != nil {
		return fmt.Errorf("allocate news ids: %w", err)
	}
	if len(ids) != len(pending) {
		return fmt.Errorf("allocate news ids: got %d, want %d", len(ids), len(pending))
	}
	for i, n := range pending {
		n.ID = ids[i]
	}
	return nil
}

func (s *ReloadService) commit(ctx context.Context, r *reload) error {
	result := r.result
	cg := r.fetched.ConditionalGet
	cgChanged := !cg.IsEmpty() && (r.storedCG == nil ||
		cg.IfModifiedSince != r.storedCG.IfModifiedSince || cg.IfNoneMatch != r.storedCG.IfNoneMatch)

	r.stats.New = len(result.Added) + len(r.moved)
	r.stats.Updated = len(result.Updated)
	r.stats.Deleted = len(result.Deleted)

	if result.IsEmpty() && len(r.moved) == 0 && !cgChanged && r.filterEvt.Len() == 0 {
		return nil
	}

	s.commitLock.Lock()
	defer s.commitLock.Unlock()

	if err := s.write(ctx, r, cg, cgChanged); err != nil {
		return fmt.Errorf("commit reload: %w", err)
	}

	events := s.events(r)
	s.fire(ctx, r, events)
	s.forwardFilterDecisions(ctx, r)
	return nil
}

// write persists the change-set while holding the locks of every persisted
// news it touches.
func (s *ReloadService) write(ctx context.Context, r *reload, cg *domain.ConditionalGetInfo, cgChanged bool) error {
	result := r.result

	var locked []int64
	for _, n := range result.Updated {
		locked = append(locked, n.ID)
	}
	for _, n := range result.Deleted {
		locked = append(locked, n.ID)
	}
	unlock := s.newsLocks.LockAll(locked)
	defer unlock()

	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if result.FeedChanged {
			if err := s.stores.Feeds.SaveFeed(txCtx, result.Feed); err != nil {
				return fmt.Errorf("save feed: %w", err)
			}
		}

		if len(result.Labels) > 0 {
			if err := s.stores.Labels.SaveLabels(txCtx, result.Labels); err != nil {
				return fmt.Errorf("save labels: %w", err)
			}
		}

		upserts := make([]*domain.News, 0, len(result.Added)+len(result.Updated)+len(r.moved))
		upserts = append(upserts, result.Added...)
		upserts = append(upserts, result.Updated...)
		upserts = append(upserts, r.moved...)
		for _, n := range upserts {
			n.ClearTransientProperties()
		}
		if len(upserts) > 0 {
			if err := s.stores.News.UpsertNews(txCtx, upserts); err != nil {
				return fmt.Errorf("upsert news: %w", err)
			}
		}

		if len(result.Deleted) > 0 {
			ids := make([]int64, len(result.Deleted))
			for i, n := range result.Deleted {
				ids[i] = n.ID
			}
			if err := s.stores.News.DeleteNews(txCtx, ids); err != nil {
				return fmt.Errorf("delete news: %w", err)
			}
		}

		if cgChanged {
			info := *cg
			info.Link = r.sub.FeedLink
			if err := s.stores.Preferences.SaveConditionalGet(txCtx, &info); err != nil {
				return fmt.Errorf("save conditional get: %w", err)
			}
		}
		return nil
	})
}

func (s *ReloadService) events(r *reload) []domain.Event {
	result := r.result
	now := s.now().UTC()
	var events []domain.Event

	add := func(e domain.Event) {
		e.ID = uuid.New().String()
		e.Timestamp = now
		events = append(events, e)
	}

	for _, l := range result.Labels {
		add(domain.Event{Type: domain.EventLabelAdded, LabelName: l.Name})
	}
	if result.FeedChanged {
		add(domain.Event{Type: domain.EventFeedUpdated, FeedLink: result.Feed.Link})
	}
	for _, n := range result.Added {
		add(domain.Event{Type: domain.EventNewsAdded, FeedLink: n.FeedLink, NewsID: n.ID, Identity: n.Identity()})
	}
	for _, n := range r.moved {
		add(domain.Event{Type: domain.EventNewsAdded, FeedLink: n.FeedLink, NewsID: n.ID, Identity: n.Identity()})
	}
	for _, n := range result.Updated {
		add(domain.Event{Type: domain.EventNewsUpdated, FeedLink: n.FeedLink, NewsID: n.ID, Identity: n.Identity()})
	}
	for _, n := range result.Deleted {
		add(domain.Event{Type: domain.EventNewsDeleted, FeedLink: n.FeedLink, NewsID: n.ID, Identity: n.Identity()})
	}
	for _, e := range r.filterEvt.Events() {
		add(e)
	}
	return events
}

// fire delivers events to the listeners and the publisher. The commit has
// already happened, so delivery failures are only logged.
func (s *ReloadService) fire(ctx context.Context, r *reload, events []domain.Event) {
	if len(events) == 0 {
		return
	}
	for _, l := range s.listeners {
		l.OnEvents(events)
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events); err != nil {
			r.logger.Error("failed to publish events", "count", len(events), "error", err)
		}
	}
}

// forwardFilterDecisions queues the state filters gave to new news of a
// synchronized feed so the sync service learns about it. Only news a filter
// claimed are sent; state that came from the service is not echoed back.
func (s *ReloadService) forwardFilterDecisions(ctx context.Context, r *reload) {
	if len(r.claimed) == 0 || !r.sub.SyncEnabled || s.syncQueue == nil {
		return
	}
	var items []*domain.SyncItem
	for _, n := range r.claimed {
		if !slices.Contains(r.result.Added, n) {
			continue
		}
		if n.State == domain.StateRead || n.Flagged || len(n.Labels) > 0 {
			items = append(items, remotesync.ToSyncItem(n))
		}
	}
	if len(items) == 0 {
		return
	}
	if err := s.syncQueue.Queue(ctx, items...); err != nil {
		r.logger.Warn("failed to queue sync items", "count", len(items), "error", err)
	}
}
