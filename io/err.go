package io

import (
	"errors"

	"github.com/ezrec/sigma16/translate"
)

var f = translate.From

var (
	// Tape errors
	ErrTapeMissing = errors.New(f("no tape loaded"))
)
