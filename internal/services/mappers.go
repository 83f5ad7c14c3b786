package services

import (
	"encoding/json"
	"strconv"
	"strings"

	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/services/dto"

	"github.com/shopspring/decimal"
)

const (
	publicJoinedDateLayout = "January 2006"
	adminJoinedDateLayout  = "2006-01-02"
)

var maxTierPrice = decimal.RequireFromString("999999.99")

// parseAge - ok=false, если значение отсутствует, нечисловое или отрицательное
func parseAge(raw *dto.FlexString) (*int, bool) {
	s := strings.TrimSpace(raw.String())
	if s == "" {
		return nil, false
	}
	age, err := strconv.Atoi(s)
	if err != nil || age < 0 {
		return nil, false
	}
	return &age, true
}

// parseTiers разбирает JSON-массив тарифов. Невалидный JSON - пустой список.
func parseTiers(raw string) []models.ServiceTier {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []models.ServiceTier{}
	}

	var inputs []dto.TierInput
	if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
		return []models.ServiceTier{}
	}

	tiers := make([]models.ServiceTier, 0, len(inputs))
	for _, in := range inputs {
		tier := models.ServiceTier{
			Name:        strings.TrimSpace(in.Name),
			Price:       parsePrice(in.Price),
			Description: in.Description,
		}
		_ = tier.SetBenefits(in.Benefits)
		tiers = append(tiers, tier)
	}
	return tiers
}

// parsePrice принимает число или строку; невалидная, отрицательная
// или отсутствующая цена становится 0.
func parsePrice(raw json.RawMessage) decimal.Decimal {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return decimal.Zero
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero
		}
		text = strings.TrimSpace(s)
	}

	price, err := decimal.NewFromString(text)
	if err != nil || price.IsNegative() {
		return decimal.Zero
	}
	price = price.Round(2)
	if price.GreaterThan(maxTierPrice) {
		return decimal.Zero
	}
	return price
}

// parseGallery разбирает JSON-список изображений: [{"image": "..."}] или ["..."]
func parseGallery(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}

	images := make([]string, 0, len(items))
	for _, item := range items {
		var url string
		if err := json.Unmarshal(item, &url); err != nil {
			var obj struct {
				Image string `json:"image"`
			}
			if err := json.Unmarshal(item, &obj); err != nil {
				continue
			}
			url = obj.Image
		}
		if url = strings.TrimSpace(url); url != "" {
			images = append(images, url)
		}
	}
	return images
}

func tierViews(tiers []models.ServiceTier) []dto.TierView {
	views := make([]dto.TierView, 0, len(tiers))
	for i := range tiers {
		views = append(views, dto.TierView{
			Name:        tiers[i].Name,
			Price:       tiers[i].Price.InexactFloat64(),
			Description: tiers[i].Description,
			Benefits:    tiers[i].GetBenefits(),
		})
	}
	return views
}

func galleryImages(items []models.PortfolioItem) []dto.GalleryImage {
	images := make([]dto.GalleryImage, 0, len(items))
	for _, item := range items {
		images = append(images, dto.GalleryImage{Image: item.Image})
	}
	return images
}

func reviewView(r *models.Review) dto.ReviewView {
	view := dto.ReviewView{
		ID:         r.ID,
		ReviewText: r.Content,
		Stars:      r.Stars,
		CreatedAt:  r.CreatedAt,
	}
	if r.Author != nil {
		view.User = dto.ReviewAuthor{Username: r.Author.Username, Name: r.Author.Name}
	}
	return view
}

func ratingFloat(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
