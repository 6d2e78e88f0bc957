package logic

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate 对查询行加排他锁，把同一父记录上的并发读-校验-写串行化。
// sqlite 不支持 FOR UPDATE，但其写入本身是串行的，直接跳过。
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
