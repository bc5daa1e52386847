package models

// Label is a semantic tag returned by the classification provider,
// with the provider's own confidence in [0,1].
type Label struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// TextSpan is an OCR-detected text fragment. The provider gives no
// confidence for spans; the engine assigns fixed confidences to
// text-derived matches.
type TextSpan struct {
	Text string `json:"text"`
}

// MatchType identifies the strategy that produced a match.
type MatchType string

const (
	MatchExact       MatchType = "exact"
	MatchSemantic    MatchType = "semantic"
	MatchPartial     MatchType = "partial"
	MatchText        MatchType = "text"
	MatchTextPartial MatchType = "text-partial"
)

// Match is a candidate association between an observed label or text span
// and a dictionary keyword. Points are already adjusted by confidence and
// match score. Matches are ephemeral; they exist only within one scoring call.
type Match struct {
	Keyword    string    `json:"keyword"`
	Type       MatchType `json:"match_type"`
	MatchScore float64   `json:"match_score"`
	Confidence float64   `json:"confidence"`
	Points     int       `json:"points"`
}

// DetectedItem is a Match enriched with the source text that produced it.
// Items appear in the result in discovery order: OCR matches first, then
// label matches in input order.
type DetectedItem struct {
	Keyword       string    `json:"item"`
	MatchType     MatchType `json:"match_type"`
	MatchScore    float64   `json:"match_score"`
	Confidence    float64   `json:"confidence"`
	Points        int       `json:"points"`
	OriginalLabel string    `json:"original_label,omitempty"`
}

// RatingMetadata carries diagnostics alongside the score. RawScore is the
// pre-clamp sum and may exceed 100 or go negative under heavy penalties.
type RatingMetadata struct {
	RawScore         int    `json:"raw_score"`
	ItemsDetected    int    `json:"items_detected"`
	LabelCount       int    `json:"label_count"`
	TextSpanCount    int    `json:"text_span_count"`
	ProcessingTimeMs int64  `json:"processing_time_ms,omitempty"`
	AdjustmentReason string `json:"adjustment_reason,omitempty"`
}

// RatingResult is the final outcome of one scoring call. It is constructed
// fresh per request and never mutated after construction.
type RatingResult struct {
	Score         int            `json:"score"`
	Message       string         `json:"message"`
	DetectedItems []DetectedItem `json:"detected_items"`
	Metadata      RatingMetadata `json:"metadata"`
}

// BreakerStatus is a point-in-time snapshot of the classification client's
// circuit breaker, exposed for health introspection only.
type BreakerStatus struct {
	State               string `json:"state"`
	Requests            uint32 `json:"requests"`
	TotalSuccesses      uint32 `json:"total_successes"`
	TotalFailures       uint32 `json:"total_failures"`
	ConsecutiveFailures uint32 `json:"consecutive_failures"`
}

// HealthStatus is the readiness report returned by the health endpoint.
type HealthStatus struct {
	Ready          bool          `json:"ready"`
	Breaker        BreakerStatus `json:"circuit_breaker"`
	DictionarySize int           `json:"dictionary_size"`
	Time           string        `json:"time"`
}
