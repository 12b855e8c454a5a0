package domain

import "time"

type CachedDataset struct {
	URL       string    `db:"url" json:"url"`
	Body      []byte    `db:"body" json:"-"`
	FetchedAt time.Time `db:"fetched_at" json:"fetched_at"`
}
