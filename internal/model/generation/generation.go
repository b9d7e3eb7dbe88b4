package generation

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Generation 一次"mundo perfeito"图片生成记录
// 只追加，不修改不删除；图片文件本身仍以存储目录为准
type Generation struct {
	ID             string    `bson:"id" json:"id"`                           // 记录ID（与图片文件名同一个UUID）
	Nome           string    `bson:"nome" json:"nome"`                       // 访客名字
	MundoPerfeito  string    `bson:"mundo_perfeito" json:"mundo_perfeito"`   // 访客描述
	EnrichedPrompt string    `bson:"enriched_prompt" json:"enriched_prompt"` // 增强后的提示词
	ImageKey       string    `bson:"image_key" json:"image_key"`             // 存储 key
	ImageURL       string    `bson:"image_url" json:"imagem_url"`            // 对外链接
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Collection 返回集合名称
func (g *Generation) Collection() string {
	return "generations"
}

// EnsureIndexes 创建和维护索引
func (g *Generation) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(g.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_id").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
