package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"techstore/catalog"
	"techstore/models"
	"techstore/money"
)

var ErrProductNotFound = errors.New("product not found")

const productListTTL = 5 * time.Minute

// ImageCDN rewrites a product image reference into a delivery URL.
type ImageCDN interface {
	ImageURL(source string) string
}

type CatalogService struct {
	catalog *catalog.Catalog
	cache   *redis.Client
	cdn     ImageCDN
	logger  *zap.Logger
}

// NewCatalogService accepts a nil cache and a nil cdn.
func NewCatalogService(c *catalog.Catalog, cache *redis.Client, cdn ImageCDN, logger *zap.Logger) *CatalogService {
	return &CatalogService{catalog: c, cache: cache, cdn: cdn, logger: logger}
}

func productListCacheKey(page, limit int, query string) string {
	return fmt.Sprintf("products_list_p%d_l%d_q%s", page, limit, strings.ToLower(strings.TrimSpace(query)))
}

func (s *CatalogService) ListProducts(ctx context.Context, page, limit int, query string) (*models.PaginationResponse, error) {
	page, limit, offset := pageWindow(page, limit)

	cacheKey := productListCacheKey(page, limit, query)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var resp models.PaginationResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Product cache read failed", zap.Error(err))
		}
	}

	products := s.catalog.Search(query)
	total := len(products)

	start := min(offset, total)
	end := start + limit
	if end > total {
		end = total
	}

	pageItems := make([]models.Product, 0, end-start)
	for _, p := range products[start:end] {
		pageItems = append(pageItems, s.withImage(p))
	}

	resp := &models.PaginationResponse{
		Success: true,
		Message: "Products retrieved successfully",
		Data:    pageItems,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}

	if s.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, productListTTL).Err(); err != nil {
				s.logger.Warn("Product cache write failed", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *CatalogService) GetProduct(id string) (models.Product, error) {
	p, ok := s.catalog.Get(id)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return s.withImage(p), nil
}

func (s *CatalogService) GetProductDetail(id string) (models.ProductDetail, error) {
	d, ok := s.catalog.Detail(id)
	if !ok {
		return models.ProductDetail{}, ErrProductNotFound
	}
	d.Product = s.withImage(d.Product)
	d.FormattedPrice = money.Format(d.Price)
	return d, nil
}

func (s *CatalogService) withImage(p models.Product) models.Product {
	if s.cdn != nil {
		p.Image = s.cdn.ImageURL(p.Image)
	}
	return p
}
