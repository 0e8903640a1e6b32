package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"beerapp/server/internal/models"
)

// CatalogService отдает каталог товаров из MongoDB
type CatalogService struct {
	db          *mongo.Database
	userService *UserService
}

// NewCatalogService создает новый сервис каталога
func NewCatalogService(db *mongo.Database, userService *UserService) *CatalogService {
	return &CatalogService{
		db:          db,
		userService: userService,
	}
}

func (cs *CatalogService) collection() *mongo.Collection {
	return cs.db.Collection("catalog")
}

// priceCoefficient читает ценовой коэффициент из настроек
// Пустое или кривое значение трактуем как 1 (цены без наценки)
func (cs *CatalogService) priceCoefficient() decimal.Decimal {
	one := decimal.NewFromInt(1)
	if cs.userService == nil {
		return one
	}

	settings, err := cs.userService.GetSettings()
	if err != nil {
		log.Printf("⚠️ Каталог: не удалось прочитать настройки, коэффициент = 1: %v", err)
		return one
	}
	if settings.Coefficient == "" {
		return one
	}

	coefficient, err := decimal.NewFromString(settings.Coefficient)
	if err != nil || coefficient.LessThanOrEqual(decimal.Zero) {
		log.Printf("⚠️ Каталог: некорректный коэффициент %q, используем 1", settings.Coefficient)
		return one
	}

	return coefficient
}

// GetProducts возвращает все товары каталога в формате для фронтенда
// Цена умножается на коэффициент и округляется до рубля
func (cs *CatalogService) GetProducts() ([]models.FormattedProduct, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := cs.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.CatalogItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("ошибка декодирования каталога: %w", err)
	}

	coefficient := cs.priceCoefficient()

	formatted := make([]models.FormattedProduct, 0, len(items))
	for _, item := range items {
		legalEntity := item.LegalEntity
		if legalEntity == 0 {
			legalEntity = 1 // Дефолтное юрлицо, как и раньше
		}

		price := decimal.NewFromFloat(item.Price).Mul(coefficient).Round(0)

		formatted = append(formatted, models.FormattedProduct{
			ID:          item.ID,
			MongoID:     item.MongoID.Hex(),
			Name:        item.Name,
			FullName:    item.FullName,
			Volume:      item.Volume,
			Price:       int(price.IntPart()),
			LegalEntity: legalEntity,
			NeedTara:    item.NeedTara,
			TaraName:    item.TaraName,
		})
	}

	log.Printf("🍺 Каталог: отдано %d товаров (коэффициент %s)", len(formatted), coefficient.String())
	return formatted, nil
}

// GetItemByID возвращает товар каталога по числовому id
func (cs *CatalogService) GetItemByID(id int) (*models.CatalogItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var item models.CatalogItem
	err := cs.collection().FindOne(ctx, bson.M{"id": id}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска товара %d: %w", id, err)
	}

	return &item, nil
}
