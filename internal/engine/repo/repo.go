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

package repo

import "gorm.io/gorm"

// txSource 把事务句柄包装成 database.IDatabase，供 WithTx 复用仓储方法
type txSource struct {
	tx *gorm.DB
}

func (t txSource) Database() *gorm.DB {
	return t.tx
}
