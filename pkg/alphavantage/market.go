package alphavantage

// NewsSentiment is the NEWS_SENTIMENT payload.
type NewsSentiment struct {
	Items                    Int        `json:"items"`
	SentimentScoreDefinition string     `json:"sentiment_score_definition"`
	RelevanceScoreDefinition string     `json:"relevance_score_definition"`
	Feed                     []NewsItem `json:"feed" validate:"dive"`
}

// NewsItem is one article of a news feed.
type NewsItem struct {
	Title                 string            `json:"title"`
	URL                   string            `json:"url"`
	TimePublished         Timestamp         `json:"time_published"`
	Authors               []string          `json:"authors"`
	Summary               string            `json:"summary"`
	BannerImage           string            `json:"banner_image"`
	Source                string            `json:"source"`
	CategoryWithinSource  string            `json:"category_within_source"`
	SourceDomain          string            `json:"source_domain"`
	Topics                []TopicRelevance  `json:"topics"`
	OverallSentimentScore Float             `json:"overall_sentiment_score"`
	OverallSentimentLabel string            `json:"overall_sentiment_label"`
	TickerSentiment       []TickerSentiment `json:"ticker_sentiment" validate:"dive"`
}

// TopicRelevance scores how relevant an article is to a topic.
type TopicRelevance struct {
	Topic          string `json:"topic"`
	RelevanceScore Float  `json:"relevance_score"`
}

// TickerSentiment is the per-ticker sentiment attached to an article.
type TickerSentiment struct {
	Ticker         string `json:"ticker" validate:"required"`
	RelevanceScore Float  `json:"relevance_score"`
	SentimentScore Float  `json:"ticker_sentiment_score"`
	SentimentLabel string `json:"ticker_sentiment_label"`
}

// SentimentFor returns the sentiment record for ticker, if the article
// mentions it.
func (n NewsItem) SentimentFor(ticker string) (TickerSentiment, bool) {
	for _, ts := range n.TickerSentiment {
		if ts.Ticker == ticker {
			return ts, true
		}
	}
	return TickerSentiment{}, false
}

// MarketMovers is the TOP_GAINERS_LOSERS payload.
type MarketMovers struct {
	Metadata           string       `json:"metadata"`
	LastUpdated        string       `json:"last_updated"`
	TopGainers         []MoverEntry `json:"top_gainers" validate:"dive"`
	TopLosers          []MoverEntry `json:"top_losers" validate:"dive"`
	MostActivelyTraded []MoverEntry `json:"most_actively_traded" validate:"dive"`
}

// MoverEntry is one ticker in a movers list.
type MoverEntry struct {
	Ticker           string  `json:"ticker" validate:"required"`
	Price            Float   `json:"price"`
	ChangeAmount     Float   `json:"change_amount"`
	ChangePercentage Percent `json:"change_percentage"`
	Volume           Int     `json:"volume"`
}
