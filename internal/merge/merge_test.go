package merge

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"news_reconciler/internal/domain"
)

type MergeEngineTestSuite struct {
	suite.Suite
	engine *Engine
	now    time.Time
}

func (s *MergeEngineTestSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.engine = NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.engine.now = func() time.Time { return s.now }
}

func TestMergeEngineTestSuite(t *testing.T) {
	suite.Run(t, new(MergeEngineTestSuite))
}

func item(guid, title string) *domain.News {
	return &domain.News{
		GUID:        guid,
		Link:        "https://example.com/" + guid,
		Title:       title,
		PublishDate: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func persistedFeed(news ...*domain.News) *domain.Feed {
	for i, n := range news {
		n.ID = int64(i + 1)
		n.FeedLink = "https://example.com/feed"
	}
	return &domain.Feed{ID: 1, Link: "https://example.com/feed", Title: "Feed", News: news}
}

func incomingFeed(news ...*domain.News) *domain.Feed {
	return &domain.Feed{Link: "https://example.com/feed", Title: "Feed", News: news}
}

func (s *MergeEngineTestSuite) TestMerge_UnchangedPlusNew() {
	a := item("a", "A")
	a.State = domain.StateRead
	persisted := persistedFeed(a)

	result := s.engine.Merge(persisted, incomingFeed(item("a", "A"), item("b", "B")))

	s.Require().Len(result.Added, 1)
	s.Equal("b", result.Added[0].GUID)
	s.Equal(domain.StateNew, result.Added[0].State)
	s.Equal(s.now, result.Added[0].ReceiveDate)
	s.Zero(result.Added[0].ID)
	s.Empty(result.Updated)
	s.Empty(result.Deleted)
	s.Empty(result.Touched)
	s.False(result.FeedChanged)
	s.Equal(domain.StateRead, a.State)
}

func (s *MergeEngineTestSuite) TestMerge_Idempotent() {
	persisted := persistedFeed(item("a", "A"))

	first := s.engine.Merge(persisted, incomingFeed(item("a", "A"), item("b", "B")))
	s.Require().Len(first.Added, 1)
	first.Added[0].ID = 2

	second := s.engine.Merge(first.Feed, incomingFeed(item("a", "A"), item("b", "B")))
	s.True(second.IsEmpty())
	s.Len(second.Feed.News, 2)
}

func (s *MergeEngineTestSuite) TestMerge_ChangedItemPreservesIdentityAndMarks() {
	label := &domain.Label{ID: 7, Name: "Foo"}
	a := item("a", "A")
	a.State = domain.StateRead
	a.Flagged = true
	a.Labels = []*domain.Label{label}
	persisted := persistedFeed(a)

	result := s.engine.Merge(persisted, incomingFeed(item("a", "A (edited)")))

	s.Require().Len(result.Updated, 1)
	updated := result.Updated[0]
	s.Same(a, updated)
	s.Equal(int64(1), updated.ID)
	s.Equal("A (edited)", updated.Title)
	s.Equal(domain.StateUpdated, updated.State)
	s.True(updated.Flagged)
	s.Equal([]*domain.Label{label}, updated.Labels)
	s.Empty(result.Added)
}

func (s *MergeEngineTestSuite) TestMerge_DuplicateIncomingKeepsFirst() {
	persisted := persistedFeed()

	result := s.engine.Merge(persisted, incomingFeed(item("x", "first"), item("x", "second")))

	s.Require().Len(result.Added, 1)
	s.Equal("first", result.Added[0].Title)
	s.Len(result.Feed.News, 1)
}

func (s *MergeEngineTestSuite) TestMerge_IdentityUnique() {
	noGUID := &domain.News{Link: "https://example.com/a", Title: "by link"}
	persisted := persistedFeed(item("a", "A"))

	result := s.engine.Merge(persisted, incomingFeed(
		item("b", "B"), item("b", "B again"), noGUID, item("a", "A"),
		&domain.News{Title: "no identity"},
	))

	ids := map[string]int{}
	for _, n := range result.Feed.News {
		ids[n.Identity()]++
	}
	for id, count := range ids {
		s.Equal(1, count, "identity %s", id)
	}
	s.Len(result.Added, 2)
}

func (s *MergeEngineTestSuite) TestMerge_AbsentPersistedUntouched() {
	old := item("old", "Old")
	persisted := persistedFeed(old)

	result := s.engine.Merge(persisted, incomingFeed(item("new", "New")))

	s.Contains(result.Feed.News, old)
	s.Empty(result.Deleted)
	s.Empty(result.Updated)
}

func (s *MergeEngineTestSuite) TestMerge_HiddenResurrectedWhenChanged() {
	a := item("a", "A")
	a.State = domain.StateHidden
	persisted := persistedFeed(a)

	result := s.engine.Merge(persisted, incomingFeed(item("a", "A v2")))

	s.Require().Len(result.Updated, 1)
	s.Equal(domain.StateUpdated, a.State)
}

func (s *MergeEngineTestSuite) TestMerge_HiddenUnchangedStaysHidden() {
	a := item("a", "A")
	a.State = domain.StateHidden
	persisted := persistedFeed(a)

	in := item("a", "A")
	in.SetProperty(domain.PropRemoteRead, true)
	result := s.engine.Merge(persisted, incomingFeed(in))

	s.True(result.IsEmpty())
	s.Empty(result.Touched)
	s.Equal(domain.StateHidden, a.State)
}

func (s *MergeEngineTestSuite) TestMerge_MalformedDateTreatedAsChanged() {
	persisted := persistedFeed(item("a", "A"))

	in := item("a", "A")
	in.SetProperty(domain.PropMalformedDate, "31/31/2026")
	result := s.engine.Merge(persisted, incomingFeed(in, item("b", "B")))

	s.Len(result.Updated, 1)
	s.Len(result.Added, 1)
}

func (s *MergeEngineTestSuite) TestMerge_UnparseableLinkTreatedAsChanged() {
	persisted := persistedFeed(item("a", "A"))

	in := item("a", "A")
	in.Link = "https://example.com/\x7f"
	result := s.engine.Merge(persisted, incomingFeed(in))

	s.Require().Len(result.Updated, 1)
	s.Equal("https://example.com/\x7f", result.Updated[0].Link)
}

func (s *MergeEngineTestSuite) TestMerge_LinkCaseOfHostIgnored() {
	persisted := persistedFeed(item("a", "A"))

	in := item("a", "A")
	in.Link = "HTTPS://EXAMPLE.com/a"
	result := s.engine.Merge(persisted, incomingFeed(in))

	s.True(result.IsEmpty())
}

func (s *MergeEngineTestSuite) TestMerge_AttachmentAndCategoryChanges() {
	a := item("a", "A")
	a.Attachments = []domain.Attachment{{Link: "https://example.com/a.mp3", Type: "audio/mpeg", Length: 10}}
	a.Categories = []domain.Category{{Name: "go"}}
	persisted := persistedFeed(a)

	same := item("a", "A")
	same.Attachments = []domain.Attachment{{Link: "https://example.com/a.mp3", Type: "audio/mpeg", Length: 10}}
	same.Categories = []domain.Category{{Name: "go"}}
	s.True(s.engine.Merge(persisted, incomingFeed(same)).IsEmpty())

	resized := item("a", "A")
	resized.Attachments = []domain.Attachment{{Link: "https://example.com/a.mp3", Type: "audio/mpeg", Length: 11}}
	resized.Categories = []domain.Category{{Name: "go"}}
	s.Len(s.engine.Merge(persisted, incomingFeed(resized)).Updated, 1)
}

func (s *MergeEngineTestSuite) TestMerge_SyncMarkersTouchUnchangedItem() {
	a := item("a", "A")
	a.State = domain.StateUnread
	persisted := persistedFeed(a)

	in := item("a", "A")
	in.SetProperty(domain.PropRemoteRead, true)
	result := s.engine.Merge(persisted, incomingFeed(in))

	s.Empty(result.Updated)
	s.Require().Len(result.Touched, 1)
	v, ok := a.Property(domain.PropRemoteRead)
	s.True(ok)
	s.Equal(true, v)
	s.Equal(domain.StateUnread, a.State)
}

func (s *MergeEngineTestSuite) TestMerge_FeedMetadataChange() {
	persisted := persistedFeed()

	incoming := incomingFeed()
	incoming.Title = "Renamed"
	result := s.engine.Merge(persisted, incoming)

	s.True(result.FeedChanged)
	s.Equal("Renamed", persisted.Title)
}

func (s *MergeEngineTestSuite) TestCopyProperties() {
	persisted := &domain.Feed{Properties: map[string]any{"color": "red", "sort": "date"}}
	incoming := &domain.Feed{Properties: map[string]any{"sort": "title"}}

	CopyProperties(persisted, incoming)

	s.Equal(map[string]any{"color": "red", "sort": "title"}, incoming.Properties)
}
