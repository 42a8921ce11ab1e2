// Package config loads the statectx demo server configuration.
//
// Values come from, in increasing priority: built-in defaults, an
// optional statectx.json in the working directory, and STATECTX_*
// environment variables. Nested keys map to env names with underscores:
//
//	{
//	  "server": {"host": "localhost", "port": 8080},
//	  "demo":   {"quote_url": "https://example.com/quote"},
//	  "log":    {"level": "debug", "format": "json"}
//	}
//
//	STATECTX_SERVER_PORT=9090 statectx serve
//
// The loaded Config is validated with go-playground/validator struct
// tags. Failures are reported as S010 errors listing each field.
package config
