package models

// FeedConfig describes one upstream GBFS feed.
type FeedConfig struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ConfigModel is the public, non-secret view of the running configuration.
type ConfigModel struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Environment      string       `json:"environment"`
	ClientIdentifier string       `json:"clientIdentifier"`
	RequestTimeoutMs int64        `json:"requestTimeoutMs"`
	Feeds            []FeedConfig `json:"feeds"`
}
