// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package dcos

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput the document is null or empty.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingField a required key is absent from the document.
	ErrMissingField = errors.New("missing field")

	// ErrUnexpectedShape a value has the wrong type or an unrecognized value.
	ErrUnexpectedShape = errors.New("unexpected shape")
)

// MissingField returns an ErrMissingField for the field at loc.
func MissingField(loc string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, loc)
}

// UnexpectedShape returns an ErrUnexpectedShape for the value at loc.
func UnexpectedShape(loc string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrUnexpectedShape, loc)
	}
	return fmt.Errorf("%w: %s: %s", ErrUnexpectedShape, loc, err.Error())
}
