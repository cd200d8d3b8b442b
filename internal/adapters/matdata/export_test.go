package matdata

// NewClientWithCache exposes the internal constructor for tests.
var NewClientWithCache = newClientWithCache
