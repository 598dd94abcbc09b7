// Package resilience groups the fault tolerance pieces of the portal's
// outbound calls. Today that is the circuitbreaker package, which wraps the
// news API, the auth service and the image host. Calls are never retried: a
// failed page load is reported and the visitor reloads.
//
//	cb := circuitbreaker.New(circuitbreaker.NewsAPIConfig())
//	err := cb.Do(func() error {
//	    return fetchNews(ctx)
//	})
//	if circuitbreaker.IsBreakerError(err) {
//	    // the news API is known to be down; render the error page at once
//	}
package resilience
