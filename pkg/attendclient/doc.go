// Package attendclient reports fingerprint capture events to the remote
// attendance service over HTTP and maps its numeric response status to an
// outcome category and a short operator message.
//
// The client is deliberately simple: one synchronous request per call, no
// retries, and a connectivity gate checked before any request is built.
//
// Example Usage:
//
//	client := attendclient.New(attendclient.Config{
//	    BaseURL:     "http://192.168.1.10:5000",
//	    DeleteToken: "secret",
//	    Timeout:     5 * time.Second,
//	}, monitor)
//
//	res := client.Report(ctx, attendclient.CaptureEvent{Slot: 3, CapturedAt: time.Now()})
//	fmt.Println(res.Outcome, res.Message) // OnTime Attendance Marked
//
// Classify is a pure function of the status code and can be used on its own.
package attendclient
