package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"beerapp/server/internal/models"
)

// ИНН юрлиц, по которым ведется учет возвратной тары
// Индекс в списке соответствует коду юрлица в позициях заказа (1 и 2)
var standardLegalEntities = []string{"2724132975", "2724163243"}

// TaraService учет возвратной тары: движения пишем в Supabase,
// баланс считаем агрегацией движений на нашей стороне
type TaraService struct {
	db       *mongo.Database
	supabase *SupabaseClient
	catalog  *CatalogService
}

// NewTaraService создает новый сервис учета тары
func NewTaraService(db *mongo.Database, supabase *SupabaseClient, catalog *CatalogService) *TaraService {
	return &TaraService{
		db:       db,
		supabase: supabase,
		catalog:  catalog,
	}
}

// Available настроен ли учет тары
func (ts *TaraService) Available() bool {
	return ts.supabase != nil && ts.supabase.Available()
}

// clientForOrg определяет идентификатор клиента в леджере (ИНН организации)
func (ts *TaraService) clientForOrg(orgID string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var org models.Organization
	err := ts.db.Collection("organizations").FindOne(ctx, bson.M{"organizationId": orgID}).Decode(&org)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			log.Printf("⚠️ Тара: ошибка поиска организации %s: %v", orgID, err)
		}
		return orgID // Fallback: пишем движение на org_ID
	}
	if org.INN == "" {
		return orgID
	}

	return org.INN
}

// RecordMovement записывает движение тары, не допуская дублей
// Ключ идемпотентности хранится в MongoDB, поэтому повторный вызов
// для того же логического движения переживает рестарт процесса
func (ts *TaraService) RecordMovement(movement *models.TaraMovement, idempotencyKey string) error {
	if !ts.Available() {
		return fmt.Errorf("Supabase is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := ts.db.Collection("tara_ledger_keys").InsertOne(ctx, bson.M{
		"_id":       idempotencyKey,
		"createdAt": time.Now().UTC(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Printf("🔁 Тара: движение %s уже записано, пропускаем", idempotencyKey)
			return nil
		}
		return fmt.Errorf("ошибка записи ключа идемпотентности: %w", err)
	}

	if err := ts.supabase.InsertMovement(movement); err != nil {
		// Откатываем ключ, чтобы движение можно было повторить
		if _, delErr := ts.db.Collection("tara_ledger_keys").DeleteOne(ctx, bson.M{"_id": idempotencyKey}); delErr != nil {
			log.Printf("⚠️ Тара: не удалось удалить ключ %s после ошибки леджера: %v", idempotencyKey, delErr)
		}
		return err
	}

	return nil
}

// RecordOrderTara записывает выдачу тары по позициям заказа
// Движение создается только для позиций с возвратной тарой,
// проданных от юрлица из стандартного списка
func (ts *TaraService) RecordOrderTara(order *models.Order) error {
	if !ts.Available() {
		return nil // Леджер не настроен — просто не учитываем тару
	}

	client := ts.clientForOrg(order.OrgID)

	var firstErr error
	recorded := 0
	for _, position := range order.Positions {
		if position.LegalEntity < 1 || position.LegalEntity > len(standardLegalEntities) {
			continue
		}

		var item *models.CatalogItem
		if ts.catalog != nil {
			var err error
			item, err = ts.catalog.GetItemByID(position.BeerID)
			if err != nil {
				log.Printf("⚠️ Тара: ошибка каталога для товара %d: %v", position.BeerID, err)
				continue
			}
		}
		if item == nil || !item.NeedTara || item.TaraUID == "" {
			continue
		}

		movement := &models.TaraMovement{
			Client: client,
			Tara:   item.TaraName,
			TaraID: item.TaraUID,
			Count:  fmt.Sprintf("+%d", position.BeerCount),
		}

		key := fmt.Sprintf("%s:%s", order.ID, item.TaraUID)
		if err := ts.RecordMovement(movement, key); err != nil {
			log.Printf("⚠️ Тара: движение по заказу %s (тара %s) не записано: %v", order.ID, item.TaraUID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		recorded++
	}

	if recorded > 0 {
		log.Printf("🍺 Тара: по заказу %s записано %d движений", order.ID, recorded)
	}
	return firstErr
}

// GetBalance агрегирует движения клиента в балансы по видам тары
func (ts *TaraService) GetBalance(clientID string) ([]models.TaraBalance, error) {
	if !ts.Available() {
		return nil, fmt.Errorf("Supabase is not configured")
	}

	movements, err := ts.supabase.ListMovements(clientID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	names := make(map[string]string)
	order := make([]string, 0)

	for _, movement := range movements {
		count, err := strconv.Atoi(movement.Count)
		if err != nil {
			// Кривое движение не валит весь баланс
			log.Printf("⚠️ Тара: некорректный count %q у клиента %s, пропускаем", movement.Count, clientID)
			continue
		}

		if _, seen := totals[movement.TaraID]; !seen {
			order = append(order, movement.TaraID)
		}
		totals[movement.TaraID] += count
		if movement.Tara != "" {
			names[movement.TaraID] = movement.Tara
		}
	}

	balances := make([]models.TaraBalance, 0, len(order))
	for _, taraID := range order {
		balances = append(balances, models.TaraBalance{
			TaraID:   taraID,
			TaraName: names[taraID],
			Balance:  totals[taraID],
		})
	}

	return balances, nil
}
