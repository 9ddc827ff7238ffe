// Package vesselfinder provides a Go client for the VesselFinder vessel
// tracking API.
//
// Parameters are validated before anything is sent: IMO numbers must be
// 7-digit integers, MMSI numbers 9-digit integers in the assigned range,
// dates must use DateLayout and coordinates must be "lat,lon" pairs.
//
// Basic usage:
//
//	client, err := vesselfinder.New("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Vessels(ctx, []int{9228801, 9441271}, []int{227441980})
//	switch {
//	case errors.Is(err, vesselfinder.ErrInvalidArguments):
//	    // rejected locally, nothing was sent
//	case errors.Is(err, vesselfinder.ErrRequestError):
//	    // rejected by the server
//	case err != nil:
//	    log.Fatal(err)
//	}
//
//	fmt.Println(resp.Body, resp.Info["credits"])
package vesselfinder
