//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package main

import "syscall"

func reusePort(network, address string, c syscall.RawConn) error {
	return nil
}
