package domain

// KeyPrefix is prepended to every key written to the KV store.
const KeyPrefix = "partpilot:"
