// Package pipeline scrapes target URLs one at a time.
//
// Each URL runs through three steps executed by a Pipeline:
//
//	FetchStep  -> PARSING  ParseStep -> STORING  StoreStep -> DONE
//
// A failing step ends the scrape at its stage; nothing later runs, so a
// fetch or parse failure never reaches the store. The Dispatcher wraps the
// pipeline, turns its outcome into a model.Result and stalls afterwards
// on every path. The Runner walks a targets.Plan sequentially and collects
// a model.Summary.
//
// Execution is strictly sequential. There are no retries, no worker pools
// and no shared state between URLs other than the injected store.
package pipeline
