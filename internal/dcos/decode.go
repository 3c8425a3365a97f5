// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package dcos

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var jsonNull = []byte("null")

// Object is a JSON object whose members are decoded on demand, so that
// absent members can be told apart from zero values.
type Object map[string]jsoniter.RawMessage

// IsEmptyDocument reports whether data is blank, null or an empty object,
// i.e. the endpoint returned nothing worth extracting.
func IsEmptyDocument(data []byte) bool {
	d := bytes.TrimSpace(data)
	if len(d) == 0 || bytes.Equal(d, jsonNull) {
		return true
	}
	if d[0] != '{' {
		return false
	}
	var o Object
	if err := json.Unmarshal(d, &o); err != nil {
		return false
	}
	return len(o) == 0
}

// DecodeDocument decodes the top level object of a document.
func DecodeDocument(data []byte) (Object, error) {
	if IsEmptyDocument(data) {
		return nil, ErrInvalidInput
	}
	var o Object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, UnexpectedShape("document", err)
	}
	return o, nil
}

// Has reports whether member name is present and not null.
func (o Object) Has(name string) bool {
	raw, ok := o[name]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}

// Field decodes member name into target. loc locates o in the document
// and is only used to build error messages.
func (o Object) Field(loc, name string, target interface{}) error {
	if !o.Has(name) {
		return MissingField(Locate(loc, name))
	}
	if err := json.Unmarshal(o[name], target); err != nil {
		return UnexpectedShape(Locate(loc, name), err)
	}
	return nil
}

// OptionalField decodes member name into target when it is present.
func (o Object) OptionalField(loc, name string, target interface{}) error {
	if !o.Has(name) {
		return nil
	}
	return o.Field(loc, name, target)
}

// Locate joins a location and a member name for error messages.
func Locate(loc, name string) string {
	if loc == "" {
		return name
	}
	return loc + "." + name
}
