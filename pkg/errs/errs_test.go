// Copyright 2025 Caseflow Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"conflict", Conflict("duplicate manager"), KindConflict},
		{"not found", NotFound("team not found"), KindNotFound},
		{"validation", Validation("invalid role"), KindValidation},
		{"forbidden", Forbidden("cases", "view"), KindForbidden},
		{"unauthenticated", Unauthenticated("no actor"), KindUnauthenticated},
		{"plain error", errors.New("boom"), KindInternal},
		{"wrapped business error", fmt.Errorf("outer: %w", Conflict("inner")), KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForbidden_CarriesPermission(t *testing.T) {
	err := Forbidden("teams", "edit")

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("expected *Error")
	}
	if e.Module != "teams" || e.Action != "edit" {
		t.Errorf("expected module/action teams/edit, got %s/%s", e.Module, e.Action)
	}
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := Wrap(KindInternal, cause, "query members")

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
	if KindOf(err) != KindInternal {
		t.Errorf("expected KindInternal, got %v", KindOf(err))
	}
}

func TestIs_ComparesByKind(t *testing.T) {
	if !errors.Is(Conflict("a"), Conflict("b")) {
		t.Error("expected two conflicts to match by kind")
	}
	if errors.Is(Conflict("a"), NotFound("b")) {
		t.Error("expected conflict not to match not found")
	}
}
