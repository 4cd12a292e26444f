package catalog

import "github.com/rishidar/freelance-connector/internal/models"

func cols(names ...string) models.ColumnAliases { return models.ColumnAliases(names) }

// Defaults возвращает восемь галерей сайта с исходными путями и именами колонок.
func Defaults() []models.CategoryDefinition {
	video := func(slug, title, resource string) models.CategoryDefinition {
		return models.CategoryDefinition{
			Slug:          slug,
			Title:         title,
			Kind:          models.MediaKindVideo,
			Resource:      resource,
			PlayThreshold: DefaultPlayThreshold,
			Columns: models.ColumnMap{
				Media:     []models.ColumnAliases{cols("VideoURL")},
				Thumbnail: cols("Thumbnail"),
			},
		}
	}
	image := func(slug, title, resource string, imageColumn ...string) models.CategoryDefinition {
		return models.CategoryDefinition{
			Slug:     slug,
			Title:    title,
			Kind:     models.MediaKindImage,
			Resource: resource,
			Columns: models.ColumnMap{
				Media: []models.ColumnAliases{cols(imageColumn...)},
			},
		}
	}

	posters := image("posters", "Posters", "posters.xlsx", "imageUrl", "ImageURL")
	posters.Columns.Description = cols("Description")
	posters.Columns.Category = cols("Category")
	posters.Columns.CreatedAt = cols("DateCreated", "CreatedAt")

	return []models.CategoryDefinition{
		video("reels", "Reels", "reels.xlsx"),
		video("shorts", "Shorts", "shorts.xlsx"),
		posters,
		image("logos", "Logos", "logos.xlsx", "imageUrl", "ImageURL"),
		image("thumbnails", "Thumbnails", "thumbnails.xlsx", "ImageURL", "imageUrl"),
		image("business-cards", "Business Cards", "business cards.xlsx", "ImageURL", "imageUrl"),
		image("brochures", "Brochures", "brochures.xlsx", "ImageURL", "imageUrl"),
		{
			Slug:     "websites",
			Title:    "Websites",
			Kind:     models.MediaKindWebsite,
			Resource: "websites.xlsx",
			Columns: models.ColumnMap{
				Media: []models.ColumnAliases{
					cols("Image1"), cols("Image2"), cols("Image3"), cols("Image4"),
				},
				Link: cols("link", "Link"),
			},
		},
	}
}
