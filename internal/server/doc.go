// Package server publishes a beer catalog directory over HTTP.
//
// The layout matches what catalog.Client fetches:
//
//	GET /data/beers/beers.json          catalog array
//	GET /data/beers/details/{id}.json   one beer's detail record
//	GET /data/...                       images and other static files
//	GET /img/...                        site images, when ImgDir is set
//	GET /health                         {"status":"ok","beers":N}
//	GET /metrics                        prometheus exposition
//
// Every request passes through CORS, proxy header handling, a combined
// access log, panic recovery, a request id and a per-client token bucket
// that answers 429 once exhausted. Metrics use a registry private to the
// Server, so several servers can coexist in one process.
package server
