package constant

const (
	ContextKeyRequestID = "requestid"

	RequestIDHeader = "X-Mergington-Request-ID"

	IdempotencyHeader    = "X-Mergington-Idempotency"
	IdempotencyKeyHeader = "Idempotency-Key"

	IdempotencyKeyLengthLimit = 128

	// IdempotencyStorePrefix namespaces saved idempotent responses in redis.
	IdempotencyStorePrefix = "mergington:idempotency"
)
