package constants

const (
	ViperServerAddrKey        = "server.addr"
	ViperServerCORSOriginsKey = "server.cors_origins"
	ViperLogModeKey           = "log.mode"

	ViperSourceGlobalKey     = "sources.global.url"
	ViperSourceFatalitiesKey = "sources.fatalities.url"
	ViperSourceIndiaKey      = "sources.india.url"
	ViperSourceIndiaGeoKey   = "sources.india.geojson"

	ViperFetchTimeoutKey       = "fetch.timeout"
	ViperFetchRetriesKey       = "fetch.retries"
	ViperFetchRetryIntervalKey = "fetch.retry_interval"

	ViperCacheBackendKey = "cache.backend"
	ViperCacheTTLKey     = "cache.ttl"
	ViperRedisAddrKey    = "redis.addr"
	ViperPostgresDSNKey  = "postgres.dsn"

	ViperSecretKey     = "auth.secret"
	ViperSigningKeyKey = "auth.signing_key"
)

const (
	CookieKeySecretToken = "covidboard_admin"
	CtxKeyRequestID      = "request_id"
)
