// Package device defines the contract a device implementation satisfies to be
// registered in a device table.
//
// A device is an opaque handle owned by its creator. The table only maps a
// small integer id to it:
//
//	type hostSocket struct {
//	    device.Base
//	    conn net.Conn
//	}
//
//	func (s *hostSocket) Shutdown() int {
//	    if err := s.conn.Close(); err != nil {
//	        return -1
//	    }
//	    return 0
//	}
//
//	sock := &hostSocket{Base: device.NewBase(device.TypeSocket, "hostsock")}
//
// # Types
//
// Every device carries a type tag from a closed set. [TypeAny] is a wildcard
// used only when querying and is never stored.
//
// # Shutdown
//
// Devices that can be shut down implement [Shutdowner]. Shutdown returns an
// integer status where zero means success; the status is preserved in the
// error reported when removal fails.
package device
