// File: utils/constants.go
package utils

import "time"

// OTPCachePrefix is the prefix used for Redis password-reset OTP keys.
const OTPCachePrefix = "otp:reset:"

// OTPTTL is how long an admin password-reset OTP stays valid.
const OTPTTL = 10 * time.Minute

// Context keys set by the auth middleware.
const (
	CtxUserID     = "userID"
	CtxRole       = "role"
	CtxDepartment = "department"
)
