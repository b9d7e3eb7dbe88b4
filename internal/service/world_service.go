package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"protetor/internal/model/generation"
	"protetor/internal/pkg/id"
	"protetor/internal/pkg/storage"
	"protetor/internal/pkg/worldtools"
)

// 请求参数校验错误，文案直接返回给访客
var (
	ErrMissingName  = errors.New("Informe o nome")
	ErrMissingWorld = errors.New("Informe como você imagina o mundo perfeito")
)

// GenerationRecorder 生成记录的持久化（Mongo 实现）
type GenerationRecorder interface {
	Create(ctx context.Context, g *generation.Generation) error
	FindRecent(ctx context.Context, limit int) ([]*generation.Generation, error)
}

// GenerateWorldRequest 生成图片请求
type GenerateWorldRequest struct {
	Nome          string
	MundoPerfeito string
}

// GenerateWorldResult 生成图片结果
type GenerateWorldResult struct {
	Nome          string `json:"nome"`
	MundoPerfeito string `json:"mundo_perfeito"`
	ImagemURL     string `json:"imagem_url"`
}

// ImageEntry 已生成图片列表中的一项
type ImageEntry struct {
	Nome string `json:"nome"`
	URL  string `json:"url"`
}

// WorldService "mundo perfeito" 图片生成服务接口
type WorldService interface {
	// Generate 增强描述、生成图片并保存，返回图片链接
	Generate(ctx context.Context, req *GenerateWorldRequest) (*GenerateWorldResult, error)
	// ListImages 列出已生成的所有图片
	ListImages(ctx context.Context) ([]ImageEntry, error)
	// ListGenerations 最近的生成记录，未配置记录存储时返回 ErrHistoryDisabled
	ListGenerations(ctx context.Context, limit int) ([]*generation.Generation, error)
}

// ErrHistoryDisabled 未配置生成记录存储
var ErrHistoryDisabled = errors.New("generation history is disabled")

// worldService "mundo perfeito" 图片生成服务实现
type worldService struct {
	storage  storage.Storage
	llm      worldtools.LLMProvider
	image    worldtools.ImageProvider
	recorder GenerationRecorder // 可为 nil
	baseURL  string
}

// NewWorldService 创建图片生成服务
// baseURL 为对外访问地址，用于拼接图片链接
func NewWorldService(st storage.Storage, llm worldtools.LLMProvider, image worldtools.ImageProvider, recorder GenerationRecorder, baseURL string) WorldService {
	return &worldService{
		storage:  st,
		llm:      llm,
		image:    image,
		recorder: recorder,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// Generate 生成图片
func (s *worldService) Generate(ctx context.Context, req *GenerateWorldRequest) (*GenerateWorldResult, error) {
	if req.Nome == "" {
		return nil, ErrMissingName
	}
	if req.MundoPerfeito == "" {
		return nil, ErrMissingWorld
	}

	start := time.Now()

	// 1. 增强描述
	enriched, err := s.llm.Generate(ctx, worldtools.EnrichmentSystemPrompt, worldtools.EnrichmentPrompt(req.MundoPerfeito))
	if err != nil {
		log.Error().Err(err).Str("kind", string(worldtools.KindOf(err))).Msg("描述增强失败")
		return nil, err
	}
	enriched = strings.TrimSpace(enriched)
	log.Debug().Str("nome", req.Nome).Str("enriched", enriched).Msg("描述增强完成")

	// 2. 生成图片
	imageData, err := s.image.GenerateImage(ctx, worldtools.ImagePrompt(enriched))
	if err != nil {
		log.Error().Err(err).Str("kind", string(worldtools.KindOf(err))).Msg("图片生成失败")
		return nil, err
	}
	format := worldtools.DetectImageFormat(imageData)
	if format == "" {
		return nil, worldtools.NewProviderError("image", worldtools.KindInvalidResponse,
			fmt.Errorf("unrecognized image data (%d bytes)", len(imageData)))
	}

	// 3. 保存，扩展名跟随实际格式
	ext := worldtools.ImageExt(format)
	filename := id.NewFilename(ext)
	key := ImageDir + "/" + filename
	if err := s.storage.Upload(ctx, key, bytes.NewReader(imageData), storage.ContentTypeByExt(filename)); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	result := &GenerateWorldResult{
		Nome:          req.Nome,
		MundoPerfeito: req.MundoPerfeito,
		ImagemURL:     s.imageURL(filename),
	}

	log.Info().
		Str("nome", req.Nome).
		Str("key", key).
		Str("format", format).
		Str("size", humanize.Bytes(uint64(len(imageData)))).
		Dur("elapsed", time.Since(start)).
		Msg("图片生成完成")

	s.record(ctx, &generation.Generation{
		ID:             strings.TrimSuffix(filename, ext),
		Nome:           req.Nome,
		MundoPerfeito:  req.MundoPerfeito,
		EnrichedPrompt: enriched,
		ImageKey:       key,
		ImageURL:       result.ImagemURL,
		CreatedAt:      time.Now(),
	})

	return result, nil
}

// record 保存生成记录，失败只记日志
func (s *worldService) record(ctx context.Context, g *generation.Generation) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Create(ctx, g); err != nil {
		log.Warn().Err(err).Str("id", g.ID).Msg("保存生成记录失败")
	}
}

// ListImages 列出所有图片
func (s *worldService) ListImages(ctx context.Context) ([]ImageEntry, error) {
	files, err := s.storage.List(ctx, ImageDir+"/")
	if err != nil {
		return nil, err
	}

	images := make([]ImageEntry, 0, len(files))
	for _, f := range files {
		name := f.Name()
		if !worldtools.IsImageExt(path.Ext(name)) {
			continue
		}
		images = append(images, ImageEntry{
			Nome: name,
			URL:  s.imageURL(name),
		})
	}
	return images, nil
}

// ListGenerations 最近的生成记录
func (s *worldService) ListGenerations(ctx context.Context, limit int) ([]*generation.Generation, error) {
	if s.recorder == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.recorder.FindRecent(ctx, limit)
}

func (s *worldService) imageURL(filename string) string {
	return s.baseURL + "/imagem/" + filename
}
