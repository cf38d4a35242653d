// File: utils/constants.go
package utils

import "time"

// RegistrationCachePrefix is the prefix used for Redis registration lookup cache keys.
const RegistrationCachePrefix = "reg:lookup:"

// RegistrationCacheTTL is the time-to-live for cached registry lookups.
const RegistrationCacheTTL = 24 * time.Hour
