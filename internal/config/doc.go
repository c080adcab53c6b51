// Package config loads widgetkit project configuration.
//
// Configuration lives in widgetkit.json or widgetkit.yaml at the project
// root. Missing fields take their defaults; command line flags override
// whatever the file says.
//
// # Configuration File Structure
//
//	{
//	  "name": "storefront",
//	  "frameRate": 60,
//	  "log": {"level": "info", "format": "text"},
//	  "preview": {"host": "localhost", "port": 7070},
//	  "metrics": {"enabled": true, "namespace": "widgetkit"},
//	  "publish": {
//	    "bucket": "widgets",
//	    "prefix": "embed/",
//	    "region": "us-east-1"
//	  },
//	  "catalog": "catalog.yaml"
//	}
package config
