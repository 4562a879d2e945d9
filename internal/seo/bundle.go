package seo

// Heading is one heading element in document order.
type Heading struct {
	Level    int    `json:"level"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// Image is one img element with the attributes scoring cares about.
type Image struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Link is one anchor element with its classification.
type Link struct {
	Href     string `json:"href"`
	Text     string `json:"text"`
	Internal bool   `json:"internal"`
	NoFollow bool   `json:"nofollow"`
}

// StructuredBlock is one parsed structured-data block found on the page.
type StructuredBlock struct {
	// Format is "json-ld" or "microdata".
	Format string `json:"format"`
	// Type is the schema.org type when it could be determined.
	Type string `json:"type,omitempty"`
	Raw  string `json:"raw,omitempty"`
}

// ReadabilityMetrics are precomputed by the extractor from the visible text.
type ReadabilityMetrics struct {
	FleschReadingEase   float64 `json:"flesch_reading_ease"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
	ComplexWordPercent  float64 `json:"complex_words_percentage"`
}

// TechnicalSignals are static-markup proxies for speed/mobile/technical
// checks. None of these are measured from a live browser.
type TechnicalSignals struct {
	HasViewportMeta     bool   `json:"has_viewport_meta"`
	ViewportContent     string `json:"viewport_content,omitempty"`
	HasMediaQueries     bool   `json:"has_media_queries"`
	TouchElements       int    `json:"touch_elements"`
	InlineStyles        int    `json:"inline_styles"`
	InlineScripts       int    `json:"inline_scripts"`
	ExternalStylesheets int    `json:"external_stylesheets"`
	ExternalScripts     int    `json:"external_scripts"`
	HasRobotsMeta       bool   `json:"has_robots_meta"`
	RobotsContent       string `json:"robots_content,omitempty"`
	HasHreflang         bool   `json:"has_hreflang"`
	IsHTTPS             bool   `json:"is_https"`
}

// SignalBundle is the normalized, read-only input to the scoring pipeline.
// Title and MetaDescription are nil when the page has no such element, so
// scorers can distinguish "missing" from "empty". After normalization every
// sequence is capped at the configured maxima; scorers never re-truncate.
type SignalBundle struct {
	URL    string `json:"url"`
	Domain string `json:"domain"`
	// TargetKeyword is copied from the analysis request so scorers stay pure
	// functions of (bundle, thresholds).
	TargetKeyword   string             `json:"target_keyword,omitempty"`
	Title           *string            `json:"title,omitempty"`
	MetaDescription *string            `json:"meta_description,omitempty"`
	MetaKeywords    string             `json:"meta_keywords,omitempty"`
	CanonicalURL    string             `json:"canonical_url,omitempty"`
	Language        string             `json:"language,omitempty"`
	Charset         string             `json:"charset,omitempty"`
	Headings        []Heading          `json:"headings"`
	Images          []Image            `json:"images"`
	Links           []Link             `json:"links"`
	Social          map[string]string  `json:"social_tags"`
	Structured      []StructuredBlock  `json:"structured_data"`
	Text            string             `json:"-"`
	WordCount       int                `json:"word_count"`
	SentenceCount   int                `json:"sentence_count"`
	ParagraphCount  int                `json:"paragraph_count"`
	Readability     ReadabilityMetrics `json:"readability"`
	Technical       TechnicalSignals   `json:"technical"`
}
