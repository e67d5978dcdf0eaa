// Package store is the client's single state container.
//
// State is split into four slices (auth, packages, shipments, quotes). It
// changes only through Store.Dispatch, which applies one Action at a time
// under a lock and then notifies subscribers with a snapshot.
//
// Asynchronous operations go through Thunks. Each one dispatches Pending,
// calls the backend, then dispatches Fulfilled or Rejected. Every operation
// key carries a generation counter. Starting a request cancels the previous
// in-flight request for the same key, and a settlement whose generation is
// no longer current is dropped, so only the latest request can change
// state.
package store
