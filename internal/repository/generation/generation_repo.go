package generation

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"protetor/internal/model/generation"
)

// GenerationRepo 生成记录仓库
type GenerationRepo struct {
	collection *mongo.Collection
}

// NewGenerationRepo 创建生成记录仓库
func NewGenerationRepo(db *mongo.Database) *GenerationRepo {
	var g generation.Generation
	return &GenerationRepo{
		collection: db.Collection(g.Collection()),
	}
}

// Create 保存生成记录
func (r *GenerationRepo) Create(ctx context.Context, g *generation.Generation) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, g)
	return err
}

// FindRecent 按创建时间倒序查询最近的记录
func (r *GenerationRepo) FindRecent(ctx context.Context, limit int) ([]*generation.Generation, error) {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	generations := []*generation.Generation{}
	if err := cursor.All(ctx, &generations); err != nil {
		return nil, err
	}

	return generations, nil
}
