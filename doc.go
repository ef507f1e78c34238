// Package mess implements a hostel mess feedback service. Students rate meals
// as good, average or poor and read the running totals; everyone can fetch a
// day's menu and administrators can overwrite individual menu entries.
//
// # Key Concepts
//
//   - [Vote] is a meal rating. Each vote maps to one counter slot.
//   - [store.Store] is the counter backend. The production backend is a
//     12-byte memory-mapped file shared by every process on the host; an
//     in-memory store is used by default.
//   - [catalog.Catalog] holds the weekly menu.
//   - [Service] ties both together and is what the HTTP layer calls.
//
// # Quick Start
//
//	svc := mess.New(mess.WithStore(store.NewFileStore("mess_stats.dat")))
//	if err := svc.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer svc.Close()
//
//	svc.Vote(ctx, mess.Good)
//	stats, err := svc.Stats(ctx)
//
// See the [Service] documentation for the full API and the server package for
// the HTTP endpoints.
package mess
