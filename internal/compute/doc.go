// Package compute provides data-parallel execution backends.
//
// A backend runs one independent kernel invocation per output slot and
// returns only after every invocation has finished:
//
//	backend := compute.GetBackend()
//	backend.Dispatch(len(bodies), func(i int) {
//	    out[i] = reduce(i)
//	})
//
// Kernels must write only to their own slot; there is no other
// synchronisation between invocations.
package compute
