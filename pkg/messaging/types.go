package messaging

// ChangeTopic names one broadcast channel, prefixed per deployment.
type ChangeTopic string

const (
	// FeedUpdatedTopic announces that the upstream feed changed and the
	// catalog should be reloaded.
	FeedUpdatedTopic = ChangeTopic("feed_updated")
	// CatalogReloadedTopic is emitted after a successful dataset swap.
	CatalogReloadedTopic = ChangeTopic("catalog_reloaded")
)

type RabbitConfig struct {
	Url    string
	VHost  string
	Prefix string
}

// FeedUpdated is the payload of FeedUpdatedTopic.
type FeedUpdated struct {
	FeedUrl   string `json:"feedUrl,omitempty"`
	UpdatedAt int64  `json:"updatedAt"`
}

// CatalogReloaded is the payload of CatalogReloadedTopic.
type CatalogReloaded struct {
	Products   int    `json:"products"`
	ReloadedAt int64  `json:"reloadedAt"`
	Node       string `json:"node,omitempty"`
}
