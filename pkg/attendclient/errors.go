package attendclient

import "errors"

var (
	ErrOffline     = errors.New("attendclient: no network connectivity")
	ErrUnreachable = errors.New("attendclient: service unreachable")
	ErrBadConfig   = errors.New("attendclient: invalid configuration")
)
