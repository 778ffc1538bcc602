// Package table implements the device table: a fixed-capacity map from small
// integer device ids to device handles.
//
// # Usage
//
//	tbl := table.NewWithDefaults() // 128 slots
//
//	// Check the id is free, then publish the device
//	id, err := tbl.Allocate(3)
//	if err != nil {
//	    return err
//	}
//	if err := tbl.Set(id, sock); err != nil {
//	    return err
//	}
//
//	// Look it up by id or by name
//	dev, err := tbl.Get(id, device.TypeSocket)
//	dev, err = tbl.Find("hostsock", device.TypeAny)
//
// Set never overwrites an occupied slot; concurrent Set calls on the same free
// id succeed for exactly one caller, the rest get AddressInUse.
//
// # Removal
//
// Remove calls the device's Shutdown and, by default, leaves the slot
// occupied. The device remains discoverable and a second Remove shuts it down
// again. Release is the primitive that frees a slot:
//
//	if err := tbl.Remove(id); err != nil {
//	    return err
//	}
//	return tbl.Release(id)
//
// Tables created with Options.ReleaseOnRemove clear the slot after a
// successful shutdown, as long as the slot still holds the same device.
//
// # Ownership
//
// The table owns only the mapping. Devices belong to their creators, must
// outlive their registration and are never shut down by Close.
//
// # Observers
//
// Register observers to track slot lifecycle events:
//
//	tbl.Subscribe(observer) // receives EventSet, EventShutdown, EventReleased
package table
