package domain

// RetentionPreference holds the per-subscription retention settings.
type RetentionPreference struct {
	DeleteByCount      bool `yaml:"delete_by_count" json:"delete_by_count"`
	MaxCount           int  `yaml:"max_count" json:"max_count"`
	DeleteByAge        bool `yaml:"delete_by_age" json:"delete_by_age"`
	MaxAgeDays         int  `yaml:"max_age_days" json:"max_age_days"`
	DeleteRead         bool `yaml:"delete_read" json:"delete_read"`
	NeverDeleteUnread  bool `yaml:"never_delete_unread" json:"never_delete_unread"`
	NeverDeleteLabeled bool `yaml:"never_delete_labeled" json:"never_delete_labeled"`
}

// Enabled reports whether any deletion policy is active.
func (p RetentionPreference) Enabled() bool {
	return p.DeleteByCount || p.DeleteByAge || p.DeleteRead
}
