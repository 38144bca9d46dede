// Package config provides configuration parsing for feather projects.
//
// The configuration lives at the project root in feather.json or, if that
// does not exist, feather.toml. Both formats share one schema:
//
//	{
//	  "name": "todos",
//	  "server": {"host": "localhost", "port": 3000, "shutdownTimeout": "30s"},
//	  "static": {"dir": "public", "prefix": "/", "cacheControl": "production"},
//	  "render": {"placeholderPrefix": "feather-", "clientScript": "/index.mjs", "lang": "en"},
//	  "export": {"output": "dist", "bucket": "", "region": "us-east-1"},
//	  "log": {"level": "info", "format": "text"},
//	  "metrics": {"enabled": true, "path": "/metrics"},
//	  "tracing": {"enabled": false, "tracerName": "feather"}
//	}
//
// The same file in TOML:
//
//	name = "todos"
//
//	[server]
//	port = 3000
//
//	[export]
//	bucket = "my-site"
//
// Unknown keys are rejected in both formats.
package config
