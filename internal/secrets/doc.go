// Package secrets scans the generated context document for credentials
// using the Gitleaks SDK before it is written.
//
// A Guard runs in one of two modes. In warn mode findings are logged (rule
// and line only, never the secret) and the document is left unchanged. In
// redact mode every detected secret is replaced with a [REDACTED:rule-id]
// marker.
//
// Known-safe values can be allowlisted in a TOML file:
//
//	[allowlist]
//	regexes = ['''EXAMPLE_[A-Z]+''']
//	stopwords = ["placeholder"]
package secrets
