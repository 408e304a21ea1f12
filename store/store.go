package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.Store（缓存后端）与 core.ProductStore / core.InteractionStore
// （目录与行为存储）接口。
//
// 示例：
//   var cache core.Store = store.NewMemoryStore()
//   catalog := store.NewMemoryCatalog()   // 同时实现 ProductStore 与 InteractionStore
