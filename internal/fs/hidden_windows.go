//go:build windows

package fs

import (
	"os"
	"syscall"
)

const (
	fileAttributeHidden       = 0x02
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

// IsHidden checks if a file is hidden on this platform (Windows)
func IsHidden(fullPath string, name string) bool {
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	return attrs&fileAttributeHidden != 0
}

// isSystemEntry reports entries that should never appear in the library even
// when hidden files would (e.g. Windows compatibility junctions).
func isSystemEntry(fullPath, name string) bool {
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protectedMask == protectedMask
}

// fileAttributes resolves Windows file attributes for the provided path/name.
func fileAttributes(fullPath, name string) (uint32, error) {
	target := fullPath
	if target == "" {
		target = name
	}
	if target == "" {
		return 0, os.ErrInvalid
	}

	ptr, err := syscall.UTF16PtrFromString(target)
	if err != nil {
		return 0, err
	}

	attrs, err := syscall.GetFileAttributes(ptr)
	if err == nil {
		return attrs, nil
	}

	if os.IsNotExist(err) && fullPath != "" && fullPath != name {
		ptrAlt, convErr := syscall.UTF16PtrFromString(name)
		if convErr == nil {
			if attrsAlt, errAlt := syscall.GetFileAttributes(ptrAlt); errAlt == nil {
				return attrsAlt, nil
			}
		}
	}

	return 0, err
}
