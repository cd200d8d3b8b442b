package cache

// NewStoreWithClock exposes the clock-injecting constructor to tests.
var NewStoreWithClock = newStoreWithClock
