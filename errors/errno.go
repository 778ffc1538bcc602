package errors

import (
	stderrors "errors"
	"syscall"
)

// Errno translates err to the POSIX error code a syscall layer reports for it.
// A nil err maps to 0. Errors that are not *Error map to EINVAL.
func Errno(err error) syscall.Errno {
	if err == nil {
		return 0
	}

	var e *Error
	if !stderrors.As(err, &e) {
		return syscall.EINVAL
	}

	switch e.Kind {
	case KindOutOfRange:
		return syscall.ENOMEM
	case KindInvalidArgument:
		return syscall.EINVAL
	case KindAddressInUse:
		return syscall.EADDRINUSE
	case KindNotFound:
		return syscall.ENOENT
	case KindShutdownFailed:
		return syscall.EIO
	case KindClosed:
		return syscall.EBADF
	case KindFailure:
		return syscall.EFAULT
	default:
		return syscall.EINVAL
	}
}
