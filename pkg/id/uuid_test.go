package id

import (
	"strings"
	"testing"
)

func TestGetUUID(t *testing.T) {
	a := GetUUID()
	b := GetUUID()
	if a == b {
		t.Error("expected two distinct UUIDs")
	}
	if len(a) != 36 {
		t.Errorf("expected canonical UUID length, got %d", len(a))
	}
}

func TestGetUUIDWithoutDashes(t *testing.T) {
	v := GetUUIDWithoutDashes()
	if strings.Contains(v, "-") {
		t.Errorf("expected no dashes, got %s", v)
	}
	if len(v) != 32 {
		t.Errorf("expected 32 chars, got %d", len(v))
	}
}

func TestXID(t *testing.T) {
	if XID() == XID() {
		t.Error("expected two distinct xids")
	}
}
