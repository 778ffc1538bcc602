// Package devtable provides a process-wide device registry: a fixed-capacity
// table mapping small integer device ids to device handles, and a per-thread
// "current device" slot.
//
// # Architecture Overview
//
//	devtable/
//	├── device/   Device id, type tags and the handle contract
//	├── table/    Fixed-capacity device table (allocate, set, get, find, remove, release)
//	├── current/  Current-device slot scoped to a bound context
//	├── errors/   Structured error types and errno translation
//	└── host/     wazero host module exposing the registry to WebAssembly guests
//
// # Quick Start
//
//	tbl := table.NewWithDefaults()
//	defer tbl.Close()
//
//	if _, err := tbl.Allocate(3); err != nil {
//	    log.Fatal(err)
//	}
//	if err := tbl.Set(3, sock); err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx = current.Bind(ctx)
//	_ = current.Set(ctx, 3)
//
//	id, _ := current.Get(ctx)
//	dev, err := tbl.Get(id, device.TypeSocket)
//
// # Errors
//
// Every operation returns a structured *errors.Error. Match on kind with
// the sentinels and translate to POSIX codes with errors.Errno:
//
//	if errors.Is(err, errors.ErrAddressInUse) {
//	    return errors.Errno(err) // EADDRINUSE
//	}
//
// # Thread Safety
//
// Table is safe for concurrent use; one mutex guards all slots. A bound
// context's current-device cell is private to the goroutines using that
// context and needs no locking.
//
// # Known Limitation
//
// Table.Remove shuts a device down but leaves it registered. Use
// Table.Release to free the slot, or create the table with
// table.Options.ReleaseOnRemove.
package devtable
