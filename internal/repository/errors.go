package repository

import "errors"

// 仓储层公共错误，两套实现（gorm / memstore）共用
var (
	// ErrInsufficientStock 库存不足，扣减被拒绝（库存不允许为负）
	ErrInsufficientStock = errors.New("库存不足")

	// ErrNotFound 写操作的目标记录不存在
	// 查询类接口查不到时返回 (nil, nil)，只有写操作用这个错误
	ErrNotFound = errors.New("记录不存在")
)
