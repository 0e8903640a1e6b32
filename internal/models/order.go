package models

import (
	"time"
)

// CanonicalStatus канонический статус заказа для отображения пользователю
// Закрытое множество из пяти значений, другие статусы наружу не отдаем
type CanonicalStatus string

const (
	StatusNew        CanonicalStatus = "New"
	StatusInProgress CanonicalStatus = "InProgress"
	StatusDone       CanonicalStatus = "Done"
	StatusCancelled  CanonicalStatus = "Cancelled"
	StatusProcessing CanonicalStatus = "Processing" // Дефолт, когда статусов из 1C еще нет
)

// Display возвращает русскую подпись статуса для фронтенда
func (s CanonicalStatus) Display() string {
	switch s {
	case StatusNew:
		return "Новый"
	case StatusInProgress:
		return "В работе"
	case StatusDone:
		return "Выполнен"
	case StatusCancelled:
		return "Отменен"
	default:
		return "В обработке"
	}
}

// Источники статуса в ответе батч-эндпоинта
const (
	StatusSource1C      = "1c"      // Статус получен из 1C
	StatusSourceDefault = "default" // UID-ов нет, отдан дефолтный статус
	StatusSourceMongo   = "mongodb" // Статус взят из локального документа
)

// Position одна позиция заказа (ключи Position_1, Position_2, ... в документе)
type Position struct {
	BeerID      int     `bson:"Beer_ID" json:"beer_id"`
	BeerName    string  `bson:"Beer_Name" json:"beer_name"`
	LegalEntity int     `bson:"Legal_Entity" json:"legal_entity"`
	BeerCount   int     `bson:"Beer_Count" json:"beer_count"`
	Price       float64 `bson:"Price" json:"price"`
	UID         string  `bson:"UID,omitempty" json:"uid,omitempty"` // UID товара на стороне 1C
}

// Order документ коллекции Orders
// Один локальный заказ может разбиваться на несколько подзаказов 1C
// (по юрлицам), их UID-ы лежат в OrdersUID: индекс подзаказа -> UID
type Order struct {
	ID        string              `bson:"_id" json:"id"`
	OrgID     string              `bson:"org_ID" json:"org_id"`
	UserID    string              `bson:"userid" json:"user_id"`
	Username  string              `bson:"username,omitempty" json:"username,omitempty"`
	Status    string              `bson:"status" json:"status"`
	Date      time.Time           `bson:"date" json:"date"`
	CreatedAt time.Time           `bson:"createdAt" json:"created_at"`
	Positions map[string]Position `bson:"Positions" json:"positions"`
	OrdersUID map[string]string   `bson:"ordersUID,omitempty" json:"orders_uid,omitempty"`
}

// OrderLine позиция заказа в API-представлении (с подставленными дефолтами)
type OrderLine struct {
	BeerID      int     `json:"beer_id"`
	BeerName    string  `json:"beer_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	LegalEntity int     `json:"legal_entity"`
	UID         string  `json:"uid,omitempty"`
}

// Lines разворачивает карту позиций в список позиций для API
// Дефолты при отсутствии полей: количество 0, цена 0, юрлицо 1
func (o *Order) Lines() []OrderLine {
	lines := make([]OrderLine, 0, len(o.Positions))
	for _, pos := range o.Positions {
		legalEntity := pos.LegalEntity
		if legalEntity == 0 {
			legalEntity = 1
		}
		lines = append(lines, OrderLine{
			BeerID:      pos.BeerID,
			BeerName:    pos.BeerName,
			Quantity:    pos.BeerCount,
			Price:       pos.Price,
			LegalEntity: legalEntity,
			UID:         pos.UID,
		})
	}
	return lines
}

// OrderSummary краткое представление заказа для списка "мои заказы"
type OrderSummary struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	ItemsCount  int       `json:"itemsCount"`
	TotalAmount int       `json:"totalAmount"` // Суммарное количество бутылок/кег
}

// Summary собирает краткое представление (как в списке последних заказов)
func (o *Order) Summary() OrderSummary {
	total := 0
	for _, pos := range o.Positions {
		total += pos.BeerCount
	}
	return OrderSummary{
		ID:          o.ID,
		Date:        o.Date,
		Status:      o.Status,
		ItemsCount:  len(o.Positions),
		TotalAmount: total,
	}
}
