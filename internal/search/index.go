// Package search provides the ephemeral full-text index filters run against.
package search

import (
	"fmt"
	"slices"
	"strings"

	"news_reconciler/internal/domain"
)

var textFields = []domain.SearchField{
	domain.FieldTitle,
	domain.FieldDescription,
	domain.FieldAuthor,
	domain.FieldLink,
	domain.FieldCategory,
	domain.FieldAttachment,
}

type document struct {
	pos int
	// values holds the normalized full values of each field; multi-valued
	// fields such as categories keep one entry per value.
	values map[domain.SearchField][]string
}

// Index is an in-memory inverted index over a handful of news. It lives for a
// single filter run and is not safe for concurrent use.
type Index struct {
	docs     []*document
	postings map[domain.SearchField]map[string][]int
}

func NewIndex() *Index {
	return &Index{postings: make(map[domain.SearchField]map[string][]int)}
}

func (ix *Index) Len() int {
	return len(ix.docs)
}

// Add indexes n under pos. Query results are reported as positions.
func (ix *Index) Add(pos int, n *domain.News) {
	doc := &document{pos: pos, values: make(map[domain.SearchField][]string)}

	doc.add(domain.FieldTitle, n.Title)
	doc.add(domain.FieldDescription, plainText(n.Description))
	doc.add(domain.FieldAuthor, n.Author)
	doc.add(domain.FieldLink, n.Link)
	for _, c := range n.Categories {
		doc.add(domain.FieldCategory, c.Name)
	}
	for _, a := range n.Attachments {
		doc.add(domain.FieldAttachment, a.Link)
	}

	for field, values := range doc.values {
		terms := ix.postings[field]
		if terms == nil {
			terms = make(map[string][]int)
			ix.postings[field] = terms
		}
		for _, v := range values {
			for _, term := range tokenize(v) {
				if list := terms[term]; len(list) == 0 || list[len(list)-1] != pos {
					terms[term] = append(list, pos)
				}
			}
		}
	}

	ix.docs = append(ix.docs, doc)
}

func (d *document) add(field domain.SearchField, value string) {
	if value = normalize(value); value != "" {
		d.values[field] = append(d.values[field], value)
	}
}

// Query evaluates s and returns the matching positions in ascending order.
func (ix *Index) Query(s *domain.Search) ([]int, error) {
	if len(s.Conditions) == 0 {
		if s.MatchAll {
			return ix.all(), nil
		}
		return nil, nil
	}

	var acc map[int]struct{}
	for i, c := range s.Conditions {
		matched, err := ix.evaluate(c)
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		switch {
		case acc == nil:
			acc = matched
		case s.MatchAll:
			for pos := range acc {
				if _, ok := matched[pos]; !ok {
					delete(acc, pos)
				}
			}
		default:
			for pos := range matched {
				acc[pos] = struct{}{}
			}
		}
	}

	out := make([]int, 0, len(acc))
	for pos := range acc {
		out = append(out, pos)
	}
	slices.Sort(out)
	return out, nil
}

func (ix *Index) evaluate(c domain.SearchCondition) (map[int]struct{}, error) {
	fields, err := fieldsOf(c.Field)
	if err != nil {
		return nil, err
	}

	switch c.Specifier {
	case domain.SpecContains:
		return ix.terms(fields, tokenizeQuery(c.Value), false), nil
	case domain.SpecContainsAll:
		return ix.terms(fields, tokenizeQuery(c.Value), true), nil
	case domain.SpecContainsNot:
		return ix.complement(ix.terms(fields, tokenizeQuery(c.Value), false)), nil
	case domain.SpecIs:
		return ix.values(fields, c.Value, func(v, want string) bool { return v == want }), nil
	case domain.SpecIsNot:
		return ix.complement(ix.values(fields, c.Value, func(v, want string) bool { return v == want })), nil
	case domain.SpecBeginsWith:
		return ix.values(fields, c.Value, strings.HasPrefix), nil
	case domain.SpecEndsWith:
		return ix.values(fields, c.Value, strings.HasSuffix), nil
	}
	return nil, fmt.Errorf("unsupported specifier %q", c.Specifier)
}

// terms matches documents containing any (or, with all set, every) term.
// A trailing '*' in the query turns a term into a prefix match.
func (ix *Index) terms(fields []domain.SearchField, query []string, all bool) map[int]struct{} {
	var acc map[int]struct{}
	for _, q := range query {
		hits := make(map[int]struct{})
		for _, field := range fields {
			for term, positions := range ix.postings[field] {
				if !termMatches(term, q) {
					continue
				}
				for _, pos := range positions {
					hits[pos] = struct{}{}
				}
			}
		}
		switch {
		case acc == nil:
			acc = hits
		case all:
			for pos := range acc {
				if _, ok := hits[pos]; !ok {
					delete(acc, pos)
				}
			}
		default:
			for pos := range hits {
				acc[pos] = struct{}{}
			}
		}
	}
	if acc == nil {
		acc = make(map[int]struct{})
	}
	return acc
}

func termMatches(term, query string) bool {
	if prefix, ok := strings.CutSuffix(query, "*"); ok {
		return strings.HasPrefix(term, prefix)
	}
	return term == query
}

func (ix *Index) values(fields []domain.SearchField, want string, match func(v, want string) bool) map[int]struct{} {
	want = normalize(want)
	out := make(map[int]struct{})
	for _, doc := range ix.docs {
		for _, field := range fields {
			if slices.ContainsFunc(doc.values[field], func(v string) bool { return match(v, want) }) {
				out[doc.pos] = struct{}{}
				break
			}
		}
	}
	return out
}

func (ix *Index) complement(matched map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{})
	for _, doc := range ix.docs {
		if _, ok := matched[doc.pos]; !ok {
			out[doc.pos] = struct{}{}
		}
	}
	return out
}

func (ix *Index) all() []int {
	out := make([]int, 0, len(ix.docs))
	for _, doc := range ix.docs {
		out = append(out, doc.pos)
	}
	slices.Sort(out)
	return out
}

func fieldsOf(field domain.SearchField) ([]domain.SearchField, error) {
	if field == domain.FieldAllText {
		return textFields, nil
	}
	if slices.Contains(textFields, field) {
		return []domain.SearchField{field}, nil
	}
	return nil, fmt.Errorf("unsupported field %q", field)
}
