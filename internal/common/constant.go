package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on inbound requests.
const AccessTokenHeaderName = "access_token"

// TemporaryPasswordLength is the length of passwords generated for accounts
// created on someone's behalf.
const TemporaryPasswordLength = 12

// temporaryPasswordAlphabet is the character set used for temporary passwords.
const temporaryPasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"
