package consts

const (
	CredentialCacheKey = "threads:credential:"
)

const (
	TokenExchangeLock = "lock:token:exchange:"
)
