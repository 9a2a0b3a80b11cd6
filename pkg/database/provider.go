package database

import "github.com/google/wire"

// ProviderSet 提供数据库相关依赖
var ProviderSet = wire.NewSet(
	NewDatabase,
	NewGormDB,
	wire.Bind(new(IDatabase), new(*GormDB)),
	wire.Bind(new(TxRunner), new(*GormDB)),
)
