package models

// DictionaryEntry is one entry returned by the dictionary lookup endpoint.
type DictionaryEntry struct {
	Word     string              `json:"word"`
	Phonetic string              `json:"phonetic,omitempty"`
	Meanings []DictionaryMeaning `json:"meanings"`
}

// DictionaryMeaning groups definitions sharing a part of speech.
type DictionaryMeaning struct {
	PartOfSpeech string                 `json:"partOfSpeech"`
	Definitions  []DictionaryDefinition `json:"definitions"`
	Synonyms     []string               `json:"synonyms,omitempty"`
	Antonyms     []string               `json:"antonyms,omitempty"`
}

// DictionaryDefinition is a single definition with optional usage data.
type DictionaryDefinition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example,omitempty"`
	Synonyms   []string `json:"synonyms,omitempty"`
	Antonyms   []string `json:"antonyms,omitempty"`
}

// DefinitionResult is what a word lookup resolves to. A nil DictionaryEntries
// means the dictionary had nothing for the word.
type DefinitionResult struct {
	Word              string            `json:"word"`
	SentenceContext   string            `json:"sentenceContext"`
	AIDefinition      string            `json:"aiDefinition"`
	DictionaryEntries []DictionaryEntry `json:"dictionaryEntry"`
}

// Meaning is a cached AI definition row keyed by article and lower-cased word.
type Meaning struct {
	ArticleID  string `json:"article_id"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
}
