package main

import "errors"

var (
	errNegativeConfigNumber  = errors.New("negative config number")
	errInvalidWritePercentage = errors.New("invalid write percentage value")
	errUnknownBalancer        = errors.New("unknown balancer")
)
