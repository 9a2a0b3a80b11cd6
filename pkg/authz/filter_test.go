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

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/caseflow/caseflow/pkg/errs"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newDryRunDB 构造只生成 SQL 而不执行的 gorm 会话
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("mysql", "dryrun:dryrun@tcp(127.0.0.1:0)/dryrun")
	if err != nil {
		t.Fatalf("open sql stub: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	return db
}

func buildListSQL(t *testing.T, db *gorm.DB, r Restriction) string {
	t.Helper()

	var rows []map[string]interface{}
	tx := r.Apply(db.Table("t_case"), "owner_id", "team_id").Find(&rows)
	if tx.Statement.SQL.Len() == 0 {
		t.Fatal("no SQL generated")
	}
	return tx.Statement.SQL.String()
}

func TestRestrictionApply(t *testing.T) {
	db := newDryRunDB(t)

	tests := []struct {
		name        string
		restriction Restriction
		wantClause  string
		wantNoWhere bool
	}{
		{"all scope has no filter", Restriction{Scope: ScopeAll}, "", true},
		{"own scope filters by owner", Restriction{Scope: ScopeOwn, OwnerId: "u-1"}, "owner_id = ?", false},
		{"team scope filters by team set", Restriction{Scope: ScopeTeam, TeamIds: []string{"t-1", "t-2"}}, "team_id IN ?", false},
		{"team scope with no teams matches nothing", Restriction{Scope: ScopeTeam}, "1 = 0", false},
		{"unresolved scope matches nothing", Restriction{Scope: ScopeNone}, "1 = 0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildListSQL(t, db, tt.restriction)
			if tt.wantNoWhere {
				if strings.Contains(got, "WHERE") {
					t.Errorf("Apply() = %q, want no WHERE clause", got)
				}
				return
			}
			if !strings.Contains(got, tt.wantClause) {
				t.Errorf("Apply() = %q, want clause %q", got, tt.wantClause)
			}
		})
	}
}

func TestCheckResourceUnresolvedScope(t *testing.T) {
	r := Restriction{Scope: ScopeNone}

	loc := &stubLocator{owners: map[string]string{"c-1": "u-1"}}
	err := r.CheckResource(context.Background(), loc, "c-1")
	if !errs.IsKind(err, errs.KindForbidden) {
		t.Fatalf("CheckResource() error = %v, want Forbidden", err)
	}
}
