// Package httputil provides retry support for outbound API calls.
//
// Only failures the caller marks as transient are retried. Wrap them with
// [Retryable] (or construct a [RetryableError]) and pass the operation to
// [Retry]:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    ...
//	})
//
// The delay doubles after every failed attempt. Cancelling ctx stops the
// wait immediately.
package httputil
