package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"beerapp/server/internal/models"
)

// Локальные статусы заказа в MongoDB
const (
	orderStatusNew       = "Новый"
	orderStatusCancelled = "Отменен"
)

// OrderService управляет заказами: MongoDB + отправка подзаказов в 1C
type OrderService struct {
	db          *mongo.Database
	erpClient   *ERPClient
	catalog     *CatalogService
	taraService *TaraService
}

// NewOrderService создает новый сервис заказов
func NewOrderService(db *mongo.Database, erpClient *ERPClient, catalog *CatalogService) *OrderService {
	return &OrderService{
		db:        db,
		erpClient: erpClient,
		catalog:   catalog,
	}
}

// SetTaraService подключает учет тары (опционально)
func (os *OrderService) SetTaraService(taraService *TaraService) {
	os.taraService = taraService
}

func (os *OrderService) collection() *mongo.Collection {
	return os.db.Collection("Orders")
}

// OrderItemRequest позиция заказа из запроса фронтенда
type OrderItemRequest struct {
	ID          int     `json:"id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	LegalEntity int     `json:"legalEntity"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	Price       float64 `json:"price"`
}

// CreateOrder создает локальный заказ и отправляет подзаказы в 1C
// Документ пишется первым; отправка в 1C — отдельный незащищенный шаг,
// при ее неудаче заказ остается со статусом "Новый" без ordersUID
func (os *OrderService) CreateOrder(profile *models.UserProfile, items []OrderItemRequest) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("заказ не содержит позиций")
	}

	positions := make(map[string]models.Position, len(items))
	for i, item := range items {
		legalEntity := item.LegalEntity
		if legalEntity == 0 {
			legalEntity = 1
		}

		position := models.Position{
			BeerID:      item.ID,
			BeerName:    item.Name,
			LegalEntity: legalEntity,
			BeerCount:   item.Quantity,
			Price:       item.Price,
		}

		// Подтягиваем UID товара из каталога для 1C
		if os.catalog != nil {
			if catalogItem, err := os.catalog.GetItemByID(item.ID); err != nil {
				log.Printf("⚠️ Заказ: не удалось найти товар %d в каталоге: %v", item.ID, err)
			} else if catalogItem != nil {
				position.UID = catalogItem.UID
			}
		}

		positions[fmt.Sprintf("Position_%d", i+1)] = position
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:        uuid.New().String(),
		OrgID:     profile.OrgID,
		UserID:    profile.UserChatID,
		Username:  profile.Organization,
		Status:    orderStatusNew,
		Date:      now,
		CreatedAt: now,
		Positions: positions,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := os.collection().InsertOne(ctx, order); err != nil {
		return nil, fmt.Errorf("ошибка сохранения заказа: %w", err)
	}
	log.Printf("📝 Заказ %s создан (%d позиций, организация %s)", order.ID, len(positions), order.OrgID)

	// Отправляем подзаказы в 1C (по одному на юрлицо)
	if os.erpClient != nil && os.erpClient.Available() {
		if err := os.submitToERP(order); err != nil {
			log.Printf("⚠️ Заказ %s: отправка в 1C не удалась: %v (заказ остается локальным)", order.ID, err)
		}
	}

	// Учет тары: best-effort, заказ не падает из-за леджера
	if os.taraService != nil {
		if err := os.taraService.RecordOrderTara(order); err != nil {
			log.Printf("⚠️ Заказ %s: учет тары не удался: %v", order.ID, err)
		}
	}

	return order, nil
}

// submitToERP группирует позиции по юрлицам и создает подзаказы в 1C
// UID-ы подзаказов сохраняются в ordersUID: индекс подзаказа -> UID
func (os *OrderService) submitToERP(order *models.Order) error {
	byEntity := make(map[int][]SubOrderItem)
	for _, position := range order.Positions {
		byEntity[position.LegalEntity] = append(byEntity[position.LegalEntity], SubOrderItem{
			UID:   position.UID,
			Count: position.BeerCount,
			Price: position.Price,
		})
	}

	// Стабильный порядок подзаказов, чтобы индексы не прыгали между запусками
	entities := make([]int, 0, len(byEntity))
	for entity := range byEntity {
		entities = append(entities, entity)
	}
	sort.Ints(entities)

	ordersUID := make(map[string]string, len(entities))
	var firstErr error
	for i, entity := range entities {
		subOrder, err := os.erpClient.CreateSubOrder(&SubOrderRequest{
			OrgID:       order.OrgID,
			LegalEntity: entity,
			Items:       byEntity[entity],
		})
		if err != nil {
			// Остальные подзаказы все равно пробуем отправить
			log.Printf("⚠️ Заказ %s: подзаказ для юрлица %d не создан: %v", order.ID, entity, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		ordersUID[strconv.Itoa(i)] = subOrder.UID
	}

	if len(ordersUID) == 0 {
		return fmt.Errorf("ни один подзаказ не создан: %w", firstErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := os.collection().UpdateOne(ctx,
		bson.M{"_id": order.ID},
		bson.M{"$set": bson.M{"ordersUID": ordersUID}},
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения ordersUID: %w", err)
	}

	order.OrdersUID = ordersUID
	log.Printf("✅ Заказ %s: создано подзаказов в 1C: %d", order.ID, len(ordersUID))
	return nil
}

// GetOrder возвращает заказ по id (nil, если не найден)
func (os *OrderService) GetOrder(orderID string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err := os.collection().FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска заказа %s: %w", orderID, err)
	}

	return &order, nil
}

// GetRecentOrders возвращает последние заказы организации (новые первыми)
func (os *OrderService) GetRecentOrders(orgID string, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 5
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := os.collection().Find(ctx, bson.M{"org_ID": orgID}, opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения заказов организации %s: %w", orgID, err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("ошибка декодирования заказов: %w", err)
	}

	return orders, nil
}

// CancelOrder отменяет заказ атомарным обновлением по текущему статусу
// Отменить можно только не ушедший в работу заказ
func (os *OrderService) CancelOrder(orderID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := os.collection().UpdateOne(ctx,
		bson.M{
			"_id":    orderID,
			"status": bson.M{"$in": []string{orderStatusNew, models.StatusProcessing.Display()}},
		},
		bson.M{"$set": bson.M{"status": orderStatusCancelled}},
	)
	if err != nil {
		return fmt.Errorf("ошибка отмены заказа %s: %w", orderID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("заказ %s не найден или уже в работе", orderID)
	}

	log.Printf("🚫 Заказ %s отменен", orderID)
	return nil
}

// UpdateOrderStatus пишет вычисленный статус обратно в документ заказа
// Это кэш для списков, источником правды остаются статусы 1C
func (os *OrderService) UpdateOrderStatus(orderID string, status string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := os.collection().UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса заказа %s: %w", orderID, err)
	}

	return nil
}
