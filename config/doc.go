// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads restcore client configuration.
//
// Values are layered, lowest priority first: built-in defaults, an
// optional YAML file, then environment variables with the RESTCORE_
// prefix. Environment keys map onto configuration keys by lower-casing
// them and turning underscores into dots, so RESTCORE_IMAGE_MAXATTEMPTS
// sets image.maxattempts.
//
//	endpoint: https://api.example.com/v1
//	authorization: Bearer abc123
//	headers:
//	  X-Client: demo
//	timeout: 10s
//	image:
//	  maxattempts: 3
//	  backoff:
//	    base: 100ms
//	    max: 2s
//	log:
//	  level: debug
//	  pretty: true
package config
