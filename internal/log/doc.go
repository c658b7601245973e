// Package log builds the slog loggers used by hockeyscrape.
//
// Every logger wraps its handler in a SecureHandler, which masks values
// that look like secrets:
//   - HTTP headers (Authorization, Cookie, Proxy-Authorization)
//   - attributes whose key names mention a password, token or credential
//   - values shaped like bearer tokens, JWTs or long API keys
//   - user information inside connection URIs, for example a MongoDB URI
//     or an authenticated proxy address
//
// Usage:
//
//	logger := log.New(os.Stderr, "text", verbose)
//	logger.Info("connecting", "uri", "mongodb://user:pass@db:27017")
//	// uri=mongodb://***REDACTED***@db:27017
package log
