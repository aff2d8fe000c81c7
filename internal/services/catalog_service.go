package services

import (
	"context"
	"strings"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	errFishNotFound    = apperror.NotFound("fish not found")
	errArticleNotFound = apperror.NotFound("article not found")
)

type FishService struct {
	db *gorm.DB
}

func NewFishService(db *gorm.DB) *FishService {
	return &FishService{db: db}
}

func (s *FishService) List(ctx context.Context) ([]models.FishReference, error) {
	var fish []models.FishReference
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&fish).Error; err != nil {
		return nil, apperror.Internal("failed to list fish", err)
	}
	return fish, nil
}

func (s *FishService) GetByID(ctx context.Context, rawID string) (*models.FishReference, error) {
	id, err := parseID(rawID, errFishNotFound)
	if err != nil {
		return nil, err
	}
	var fish models.FishReference
	if err := s.db.WithContext(ctx).First(&fish, "id = ?", id).Error; err != nil {
		return nil, translateLookup(err, errFishNotFound, "failed to load fish")
	}
	return &fish, nil
}

func (s *FishService) Create(ctx context.Context, req *dto.CreateFishRequest) (*models.FishReference, error) {
	req.DangerLevel = models.DangerLevel(strings.ToUpper(strings.TrimSpace(string(req.DangerLevel))))
	if err := validateInput(req); err != nil {
		return nil, err
	}
	fish := models.FishReference{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(req.Name),
		ScientificName: strings.TrimSpace(req.ScientificName),
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		DangerLevel:    req.DangerLevel,
	}
	if err := s.db.WithContext(ctx).Create(&fish).Error; err != nil {
		return nil, apperror.Internal("failed to create fish", err)
	}
	return &fish, nil
}

type ArticleService struct {
	db *gorm.DB
}

func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{db: db}
}

func (s *ArticleService) List(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&articles).Error; err != nil {
		return nil, apperror.Internal("failed to list articles", err)
	}
	return articles, nil
}

func (s *ArticleService) GetByID(ctx context.Context, rawID string) (*models.Article, error) {
	id, err := parseID(rawID, errArticleNotFound)
	if err != nil {
		return nil, err
	}
	var article models.Article
	if err := s.db.WithContext(ctx).First(&article, "id = ?", id).Error; err != nil {
		return nil, translateLookup(err, errArticleNotFound, "failed to load article")
	}
	return &article, nil
}

func (s *ArticleService) Create(ctx context.Context, req *dto.CreateArticleRequest) (*models.Article, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	article := models.Article{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(req.Title),
		Content:      req.Content,
		ThumbnailURL: req.ThumbnailURL,
		SourceURL:    req.SourceURL,
	}
	if err := s.db.WithContext(ctx).Create(&article).Error; err != nil {
		return nil, apperror.Internal("failed to create article", err)
	}
	return &article, nil
}
