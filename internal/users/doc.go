// Package users provides an HTTP client for the remote users REST resource.
//
// # Overview
//
// The package defines the Record model and the Client used to read and
// mutate the collection. Records are arbitrary JSON objects (identifier,
// name, contact fields, nested address and company objects), so Record keeps
// the server's key order and decodes nested objects into *Record values
// instead of mapping them onto fixed structs.
//
// # Endpoints
//
//   - GET {base}/users: the full collection as a JSON array
//   - PUT {base}/users/{id}: full replacement, JSON body
//   - DELETE {base}/users/{id}
//
// Success is the response's ok status (2xx) for every call.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept: application/json and User-Agent: roster/0.1
//   - Carry a fresh X-Request-ID, which is also written to the log
//   - Have no timeout unless WithTimeout is given
//
// # Error Handling
//
// Transport failures, non-2xx responses and undecodable bodies all surface
// as *NetworkError. StatusCode is set for non-2xx responses; Err is set for
// transport and decode failures.
//
//	client, err := users.NewClient("https://jsonplaceholder.typicode.com")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//	records, err := client.FetchUsers(ctx)
//	if err != nil {
//		log.Printf("users fetch failed: %v", err)
//	}
package users
