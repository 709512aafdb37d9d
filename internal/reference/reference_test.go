// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reference

import (
	"errors"
	"testing"
)

func TestEncode(t *testing.T) {
	got := Encode("abc", "123")
	if got != "[/gdc/md/abc/obj/123]" {
		t.Errorf("Encode() = %q, want %q", got, "[/gdc/md/abc/obj/123]")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantPID string
		wantObj string
		wantErr bool
	}{
		{name: "valid", input: "[/gdc/md/abc/obj/123]", wantPID: "abc", wantObj: "123"},
		{name: "empty pid", input: "[/gdc/md//obj/9]", wantPID: "", wantObj: "9"},
		{name: "missing brackets", input: "/gdc/md/abc/obj/123", wantErr: true},
		{name: "missing obj", input: "[/gdc/md/abc/123]", wantErr: true},
		{name: "plain text", input: "Revenue", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pid, obj, err := Decode(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("Decode(%q) error = %v, want ErrMalformed", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%q) unexpected error: %v", tt.input, err)
			}
			if pid != tt.wantPID || obj != tt.wantObj {
				t.Errorf("Decode(%q) = (%q, %q), want (%q, %q)", tt.input, pid, obj, tt.wantPID, tt.wantObj)
			}
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	pid, obj, err := Decode(Encode("x7kq2", "4410"))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if pid != "x7kq2" || obj != "4410" {
		t.Errorf("round trip = (%q, %q)", pid, obj)
	}
}
