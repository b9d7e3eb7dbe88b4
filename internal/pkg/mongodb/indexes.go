package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"protetor/internal/model/generation"
)

// EnsureIndexes 创建所有模型的索引，在应用启动时调用
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	models := []Model{
		&generation.Generation{},
	}

	return EnsureAllIndexes(ctx, db, models...)
}
