package cache

import (
	"context"
	"time"
)

const storageListKey = "catalog:storages"

// StorageList 去重后的存储容量列表，nil 元素表示未指定容量
type StorageList struct {
	Values []*int `json:"values"`
}

// GetStorageList 读取存储容量缓存
func GetStorageList(ctx context.Context) ([]*int, bool, error) {
	var list StorageList
	hit, err := GetJSON(ctx, storageListKey, &list)
	if err != nil || !hit {
		return nil, hit, err
	}
	return list.Values, true, nil
}

// SetStorageList 写入存储容量缓存
func SetStorageList(ctx context.Context, values []*int, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, storageListKey, StorageList{Values: values}, ttl)
}

// InvalidateStorageList 商品写操作后清除存储容量缓存
func InvalidateStorageList(ctx context.Context) error {
	return Del(ctx, storageListKey)
}
