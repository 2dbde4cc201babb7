// Package github submits dependency snapshots to GitHub's dependency
// submission API.
//
// # Usage
//
//	client, err := github.NewClient("https://github.com", token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := client.Submit(ctx, doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("snapshot", res.ID, res.Result)
//
// # Servers
//
// A server URL of https://github.com (or an empty one) targets the public API
// at api.github.com. Any other server URL is treated as GitHub Enterprise
// Server and requests go to <server>/api/v3/.
//
// # Authentication
//
// Submission needs a token with contents:write on the target repository. A
// 401 or 403 response is reported as UNAUTHORIZED and not retried.
//
// # Retries
//
// Transport failures and 5xx responses are retried with exponential backoff
// via package httputil. Other 4xx responses fail immediately.
package github
