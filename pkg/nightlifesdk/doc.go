/*
Package nightlifesdk is a client for the nightlife HTTP API.

The Client keeps the session cookie in a cookie jar, so after Login every
call is made as the logged-in user until Logout:

	c, err := nightlifesdk.NewClient("http://localhost:3001")
	if err != nil {
		return err
	}

	if _, err := c.Register(ctx, "alice", "hunter2"); err != nil {
		return err
	}
	if _, err := c.Login(ctx, "alice", "hunter2"); err != nil {
		return err
	}

	// Search proxies to the business directory; the body is the directory's JSON.
	raw, err := c.Search(ctx, "London", nightlifesdk.SearchRequest{Price: 2, OpenNow: true})

	_, err = c.AddVenue(ctx, "some-yelp-id")
	count, err := c.NumberAttending(ctx, "some-yelp-id")

Non-2xx responses are returned as *APIError carrying the status code and the
error string from the body.
*/
package nightlifesdk
