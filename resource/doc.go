// Package resource provides handle tables for values owned by foreign callers.
//
// A foreign caller, such as a WebAssembly guest, cannot hold Go pointers. It
// holds a Handle instead, and the host maps that Handle to the live value:
//
//	table := resource.NewTable[*pixbuf.Buffer]()
//
//	// Insert a value, get a handle
//	h := table.Insert(buf)
//
//	// Retrieve value by handle
//	buf, ok := table.Get(h)
//
//	// Remove transfers the value back to the host
//	buf, ok := table.Remove(h)
//
// Handle 0 is reserved and always invalid, so it can signal failure across
// an ABI. Freed handles are reused.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("handle %d: %s", e.Handle, e.Type)
//	}))
//
// # Cleanup
//
// Values implementing Dropper have Drop called when removed. Close drops
// every remaining value and makes the table reject further inserts.
package resource
