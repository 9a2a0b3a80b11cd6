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

package authz

import "testing"

func TestScopeOrder(t *testing.T) {
	if !(ScopeNone < ScopeOwn && ScopeOwn < ScopeTeam && ScopeTeam < ScopeAll) {
		t.Fatal("expected total order none < own < team < all")
	}
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		raw     string
		want    Scope
		wantErr bool
	}{
		{"own", ScopeOwn, false},
		{"team", ScopeTeam, false},
		{"all", ScopeAll, false},
		{" ALL ", ScopeAll, false},
		{"none", ScopeNone, true},
		{"", ScopeNone, true},
		{"global", ScopeNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseScope(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScope(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseScope(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCode(t *testing.T) {
	if got := Code("cases", "view", ScopeOwn); got != "cases.view.own" {
		t.Errorf("Code() = %q, want %q", got, "cases.view.own")
	}
}

func TestSplitCode(t *testing.T) {
	module, action, scope, err := SplitCode("teams.edit.team")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if module != "teams" || action != "edit" || scope != ScopeTeam {
		t.Errorf("SplitCode() = %s/%s/%v", module, action, scope)
	}

	if _, _, _, err := SplitCode("teams.edit"); err == nil {
		t.Error("expected error for two-part code")
	}
	if _, _, _, err := SplitCode("teams.edit.none"); err == nil {
		t.Error("expected error for none scope")
	}
}
