// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reference builds and parses encoded GoodData object references.
//
// An encoded reference has the literal form
//
//	[/gdc/md/<pid>/obj/<objectId>]
//
// and is what ends up on the clipboard in place of a shortcut's display name.
package reference

import (
	"errors"
	"strings"
)

const (
	prefix = "[/gdc/md/"
	infix  = "/obj/"
	suffix = "]"
)

// ErrMalformed is returned by Decode when the input is not an encoded reference.
var ErrMalformed = errors.New("malformed object reference")

// Encode returns the encoded reference for objectID inside project pid.
func Encode(pid, objectID string) string {
	return prefix + pid + infix + objectID + suffix
}

// Decode splits an encoded reference into its project id and object id.
func Decode(ref string) (pid, objectID string, err error) {
	if !strings.HasPrefix(ref, prefix) || !strings.HasSuffix(ref, suffix) {
		return "", "", ErrMalformed
	}
	body := strings.TrimSuffix(strings.TrimPrefix(ref, prefix), suffix)

	// The object id never contains "/obj/", the pid might in theory, so split on the last one.
	i := strings.LastIndex(body, infix)
	if i < 0 {
		return "", "", ErrMalformed
	}
	return body[:i], body[i+len(infix):], nil
}
