package handlers

import (
	"github.com/creatorlane/backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type MetaOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var predefinedPlatforms = []MetaOption{
	{ID: "instagram", Label: "Instagram"},
	{ID: "tiktok", Label: "TikTok"},
	{ID: "youtube", Label: "YouTube"},
	{ID: "twitch", Label: "Twitch"},
	{ID: "x", Label: "X (Twitter)"},
	{ID: "other", Label: "Other"},
}

var predefinedContentTypes = []MetaOption{
	{ID: models.ContentTypeVideo, Label: "Video"},
	{ID: models.ContentTypeReel, Label: "Reel / Short"},
	{ID: models.ContentTypeStory, Label: "Story"},
	{ID: models.ContentTypePost, Label: "Post"},
}

func (h *MetaHandler) GetPlatforms(c *fiber.Ctx) error {
	return ok(c, predefinedPlatforms)
}

func (h *MetaHandler) GetContentTypes(c *fiber.Ctx) error {
	return ok(c, predefinedContentTypes)
}
