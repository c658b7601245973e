// Package fetcher retrieves statistics pages over HTTP.
//
// A Fetcher issues exactly one GET per URL. Any HTTP response, whatever
// its status code, is returned as a model.Page with the body decoded to
// UTF-8. Transport failures are returned as *model.FetchError and are
// never retried.
//
// After every reachable response the Fetcher appends a line to the
// request log. Failed fetches are not logged there; they are reported by
// the caller through slog instead.
//
// # Usage
//
//	client, err := fetcher.NewHTTPClient(0, "")
//	f := fetcher.New(client, fetcher.WithRequestLog(reqLog))
//	page, err := f.Fetch(ctx, "https://www.hockey-reference.com/leagues/NHL_1990.html")
package fetcher
