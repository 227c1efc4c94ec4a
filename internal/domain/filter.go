package domain

// SearchField names a news field a search condition can address.
type SearchField string

const (
	FieldTitle       SearchField = "title"
	FieldDescription SearchField = "description"
	FieldAuthor      SearchField = "author"
	FieldLink        SearchField = "link"
	FieldCategory    SearchField = "category"
	FieldAttachment  SearchField = "attachment"
	FieldAllText     SearchField = "all"
)

// Specifier is the comparison a search condition applies.
type Specifier string

const (
	SpecContains    Specifier = "contains"
	SpecContainsNot Specifier = "contains_not"
	SpecContainsAll Specifier = "contains_all"
	SpecIs          Specifier = "is"
	SpecIsNot       Specifier = "is_not"
	SpecBeginsWith  Specifier = "begins_with"
	SpecEndsWith    Specifier = "ends_with"
)

type SearchCondition struct {
	Field     SearchField `json:"field"`
	Specifier Specifier   `json:"specifier"`
	Value     string      `json:"value"`
}

// Search is a boolean combination of conditions. An empty Scope means every feed.
type Search struct {
	MatchAll   bool              `json:"match_all"`
	Conditions []SearchCondition `json:"conditions"`
	Scope      []string          `json:"scope,omitempty"`
}

// InScope reports whether the search applies to news of feedLink.
func (s *Search) InScope(feedLink string) bool {
	if len(s.Scope) == 0 {
		return true
	}
	for _, link := range s.Scope {
		if link == feedLink {
			return true
		}
	}
	return false
}

type FilterAction struct {
	ActionID string `json:"action_id"`
	Data     string `json:"data,omitempty"`
}

// SearchFilter applies its actions to new news matching its search.
// A nil Search matches everything.
type SearchFilter struct {
	ID      int64
	Name    string
	Order   int
	Enabled bool
	Search  *Search
	Actions []FilterAction
}

// Unconditional reports whether the filter matches all news.
func (f *SearchFilter) Unconditional() bool {
	return f.Search == nil
}
