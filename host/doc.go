// Package host exposes a device table and a current-device slot to
// WebAssembly guests as a wazero host module.
//
//	rt := wazero.NewRuntime(ctx)
//	defer rt.Close(ctx)
//
//	devices := host.New(tbl, slot, host.DefaultOptions())
//	if _, err := devices.Instantiate(ctx, rt); err != nil {
//	    return err
//	}
//
//	guest, err := rt.Instantiate(ctx, wasmBytes)
//
// Guests import the functions from the "devtable" module. Every function
// except get_current returns an i32 errno, zero on success:
//
//	allocate(id i64) -> i32
//	get(id i64, type i32) -> i32
//	find(name_ptr i32, name_len i32, type i32, id_out i32) -> i32
//	remove(id i64) -> i32
//	release(id i64) -> i32
//	set_current(id i64) -> i32
//	clear_current() -> i32
//	get_current() -> i64        ; -1 when no device is current
//
// find writes the matching id as a little-endian u64 at id_out.
//
// The current-device functions act on the context the guest call runs on.
// Bind it before calling into the guest so each calling goroutine has its own
// cell:
//
//	ctx = slot.Bind(ctx)
//	_, err = guest.ExportedFunction("run").Call(ctx)
package host
