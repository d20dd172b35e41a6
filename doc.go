// Package pixcache implements a URI-keyed image decode cache. A loader
// obtains encoded bytes from a pluggable byte source, decodes them once
// with a pluggable image codec, and serves every later request for the
// same URI from an in-memory outcome cache.
//
// Components:
//   - bytesrc.Source: non-blocking byte acquisition (memory, file, HTTP).
//   - codec.Codec: header parse + full decode to RGBA8 (PNG, JPEG, GIF).
//   - host.Host: registry where format loaders coexist on one byte source.
//
// Outcomes (the only thing the cache stores):
//
//	decoded image  - shared *Image, accounted at width*height*4 bytes
//	decode failure - permanent message, accounted at len(message)
//
// Routing rejections (extension, MIME, header) and pending/source errors
// are never cached; only completed decode attempts are. Eviction is
// caller-driven via Forget/ForgetAll; the loader enforces no budget of
// its own.
//
// Concurrent first requests for the same URI are collapsed into a single
// byte acquisition and decode (singleflight); the result is inserted once.
package pixcache
