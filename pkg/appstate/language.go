package appstate

import "sync"

// DefaultLanguage is used until the user picks another one
const DefaultLanguage = "en"

// LanguageState holds the UI language preference for the session
type LanguageState struct {
	mu        sync.RWMutex
	language  string
	supported map[string]struct{}
}

// NewLanguageState creates a language state supporting the given tags.
// The default language is always supported.
func NewLanguageState(supported ...string) *LanguageState {
	tags := map[string]struct{}{DefaultLanguage: {}}
	for _, tag := range supported {
		tags[tag] = struct{}{}
	}
	return &LanguageState{
		language:  DefaultLanguage,
		supported: tags,
	}
}

// Language returns the current language tag
func (l *LanguageState) Language() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.language
}

// Set switches the language. Unsupported tags are rejected and the current
// language is kept.
func (l *LanguageState) Set(tag string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.supported[tag]; !ok {
		return false
	}
	l.language = tag
	return true
}

// Close resets the language to the default
func (l *LanguageState) Close() {
	l.mu.Lock()
	l.language = DefaultLanguage
	l.mu.Unlock()
}
