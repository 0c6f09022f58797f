package reader

import "sync"

// DefaultTranslationWarnAfter is how many translation expansions trigger
// the reliance warning.
const DefaultTranslationWarnAfter = 3

// PrefTranslationWarningDismissed is the preference that silences the
// translation reliance warning for good.
const PrefTranslationWarningDismissed = "translation_warning_dismissed"

// Preferences is the persisted per-user preference store.
type Preferences interface {
	Bool(key string) bool
	SetBool(key string, v bool) error
}

// MemoryPreferences keeps preferences in memory.
type MemoryPreferences struct {
	mu   sync.Mutex
	vals map[string]bool
}

func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{vals: map[string]bool{}}
}

func (p *MemoryPreferences) Bool(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vals[key]
}

func (p *MemoryPreferences) SetBool(key string, v bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vals[key] = v
	return nil
}

// Translations tracks which Korean paragraphs are shown and how often the
// reader has expanded one.
type Translations struct {
	threshold int
	prefs     Preferences

	mu         sync.Mutex
	visible    map[int]bool
	expansions int
	warned     bool
}

func NewTranslations(threshold int, prefs Preferences) *Translations {
	if threshold <= 0 {
		threshold = DefaultTranslationWarnAfter
	}
	if prefs == nil {
		prefs = NewMemoryPreferences()
	}
	return &Translations{threshold: threshold, prefs: prefs, visible: map[int]bool{}}
}

// Toggle flips paragraph p and reports whether this toggle should show the
// reliance warning. Only expansions count; the warning shows at most once
// per session and never once dismissed.
func (t *Translations) Toggle(p int) (visible, warn bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.visible[p] {
		delete(t.visible, p)
		return false, false
	}
	t.visible[p] = true
	t.expansions++
	if t.warned || t.expansions < t.threshold || t.prefs.Bool(PrefTranslationWarningDismissed) {
		return true, false
	}
	t.warned = true
	return true, true
}

// Dismiss silences the warning permanently.
func (t *Translations) Dismiss() error {
	return t.prefs.SetBool(PrefTranslationWarningDismissed, true)
}

func (t *Translations) Visible(p int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible[p]
}

func (t *Translations) Expansions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expansions
}

// Reset hides every paragraph and clears the counter for a new article.
func (t *Translations) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visible = map[int]bool{}
	t.expansions = 0
	t.warned = false
}
