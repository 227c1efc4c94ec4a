package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news_reconciler/internal/domain"
)

func buildIndex() *Index {
	ix := NewIndex()
	ix.Add(0, &domain.News{
		Title:       "Go 1.26 released",
		Description: "<p>The <b>Go</b> team is happy to announce</p><script>var x = 'hidden'</script>",
		Author:      "Gopher",
		Link:        "https://go.dev/blog/go1.26",
		Categories:  []domain.Category{{Name: "Releases"}},
	})
	ix.Add(1, &domain.News{
		Title:       "Café culture in Lisbon",
		Description: "Coffee &amp; pastries",
		Author:      "Ana",
		Link:        "https://example.com/cafe",
	})
	ix.Add(2, &domain.News{
		Title:       "Rust and Go compared",
		Author:      "gopher",
		Link:        "https://example.com/compare",
		Attachments: []domain.Attachment{{Link: "https://example.com/talk.mp3"}},
	})
	return ix
}

func query(t *testing.T, ix *Index, s *domain.Search) []int {
	t.Helper()
	got, err := ix.Query(s)
	require.NoError(t, err)
	return got
}

func cond(field domain.SearchField, spec domain.Specifier, value string) domain.SearchCondition {
	return domain.SearchCondition{Field: field, Specifier: spec, Value: value}
}

func TestQuery_Contains(t *testing.T) {
	ix := buildIndex()

	assert.Equal(t, []int{0, 2}, query(t, ix, &domain.Search{
		Conditions: []domain.SearchCondition{cond(domain.FieldTitle, domain.SpecContains, "go")},
	}))
	assert.Equal(t, []int{1}, query(t, ix, &domain.Search{
		Conditions: []domain.SearchCondition{cond(domain.FieldTitle, domain.SpecContains, "CAFE")},
	}))
	assert.Equal(t, []int{0, 2}, query(t, ix, &domain.Search{
		Conditions: []domain.SearchCondition{cond(domain.FieldTitle, domain.SpecContains, "releas* rust")},
	}))
	assert.Equal(t, []int{2}, query(t, ix, &domain.Search{
		Conditions: []domain.SearchCondition{cond(domain.FieldTitle, domain.SpecContainsAll, "rust go")},
	}))
	assert.Equal(t, []int{1}, query(t, ix, &domain.Search{
		Conditions: []domain.SearchCondition{cond(domain.FieldTitle, domain.SpecContainsNot, "go")},
	}))
}

func TestQuery_DescriptionIsPlainText(t *testing.T) {
	ix := buildIndex()

	assert.Equal(t, []int{0}, query(t, ix, &domain.Search{
		Conditions: []domain.SearchCondition{cond(domain.FieldDescription, domain.SpecContains, "announce")},
	}))
	assert.Empty(t, query(t, ix, &domain.Search{
		Conditions: []domain.SearchCondition{cond(domain.FieldDescription, domain.SpecContains, "hidden")},
	}))
	assert.Empty(t, query(t, ix, &domain.Search{
		Conditions: []domain.SearchCondition{cond(domain.FieldDescription, domain.SpecContains, "p")},
	}))
}

func TestQuery_ValueSpecifiers(t *testing.T) {
	ix := buildIndex()

	assert.Equal(t, []int{0, 2}, query(t, ix, &domain.Search{
		Conditions: []domain.SearchCondition{cond(domain.FieldAuthor, domain.SpecIs, "GOPHER")},
	}))
	assert.Equal(t, []int{1}, query(t, ix, &domain.Search{
		Conditions: []domain.SearchCondition{cond(domain.FieldAuthor, domain.SpecIsNot, "gopher")},
	}))
	assert.Equal(t, []int{1, 2}, query(t, ix, &domain.Search{
		Conditions: []domain.SearchCondition{cond(domain.FieldLink, domain.SpecBeginsWith, "https://example.com")},
	}))
	assert.Equal(t, []int{2}, query(t, ix, &domain.Search{
		Conditions: []domain.SearchCondition{cond(domain.FieldAttachment, domain.SpecEndsWith, ".mp3")},
	}))
	assert.Equal(t, []int{0}, query(t, ix, &domain.Search{
		Conditions: []domain.SearchCondition{cond(domain.FieldCategory, domain.SpecIs, "releases")},
	}))
}

func TestQuery_BooleanCombination(t *testing.T) {
	ix := buildIndex()
	conditions := []domain.SearchCondition{
		cond(domain.FieldAllText, domain.SpecContains, "gopher"),
		cond(domain.FieldTitle, domain.SpecContains, "rust"),
	}

	assert.Equal(t, []int{2}, query(t, ix, &domain.Search{MatchAll: true, Conditions: conditions}))
	assert.Equal(t, []int{0, 2}, query(t, ix, &domain.Search{MatchAll: false, Conditions: conditions}))
}

func TestQuery_EmptyConditions(t *testing.T) {
	ix := buildIndex()

	assert.Equal(t, []int{0, 1, 2}, query(t, ix, &domain.Search{MatchAll: true}))
	assert.Empty(t, query(t, ix, &domain.Search{}))
}

func TestQuery_Errors(t *testing.T) {
	ix := buildIndex()

	_, err := ix.Query(&domain.Search{Conditions: []domain.SearchCondition{cond("rating", domain.SpecIs, "5")}})
	assert.Error(t, err)

	_, err = ix.Query(&domain.Search{Conditions: []domain.SearchCondition{cond(domain.FieldTitle, "sounds_like", "go")}})
	assert.Error(t, err)
}
