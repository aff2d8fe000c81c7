package handlers

import (
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type FishHandler struct {
	fishService *services.FishService
	uploader    storage.Uploader
}

func NewFishHandler(fishService *services.FishService, uploader storage.Uploader) *FishHandler {
	return &FishHandler{fishService: fishService, uploader: uploader}
}

func (h *FishHandler) List(c *fiber.Ctx) error {
	fish, err := h.fishService.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fish)
}

func (h *FishHandler) Get(c *fiber.Ctx) error {
	fish, err := h.fishService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fish)
}

func (h *FishHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateFishRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	url, err := formImage(c, h.uploader, "image", storage.FolderFish)
	if err != nil {
		return err
	}
	if url != "" {
		req.ImageURL = url
	}

	fish, err := h.fishService.Create(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fish)
}

type ArticleHandler struct {
	articleService *services.ArticleService
	uploader       storage.Uploader
}

func NewArticleHandler(articleService *services.ArticleService, uploader storage.Uploader) *ArticleHandler {
	return &ArticleHandler{articleService: articleService, uploader: uploader}
}

func (h *ArticleHandler) List(c *fiber.Ctx) error {
	articles, err := h.articleService.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(articles)
}

func (h *ArticleHandler) Get(c *fiber.Ctx) error {
	article, err := h.articleService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(article)
}

func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateArticleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	url, err := formImage(c, h.uploader, "thumbnail", storage.FolderArticles)
	if err != nil {
		return err
	}
	if url != "" {
		req.ThumbnailURL = url
	}

	article, err := h.articleService.Create(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}
