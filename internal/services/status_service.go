package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"beerapp/server/internal/models"
)

// Сколько статусов запрашиваем у 1C одновременно
const statusFetchConcurrency = 5

// OrderStore доступ к заказам, нужный для сводных статусов
type OrderStore interface {
	GetOrder(orderID string) (*models.Order, error)
	UpdateOrderStatus(orderID string, status string) error
}

// StatusService сводит статусы подзаказов 1C в один пользовательский
// статус на заказ (батч-опрос + приоритетное разрешение)
type StatusService struct {
	orders OrderStore
	erp    *ERPClient
}

// NewStatusService создает новый сервис статусов
func NewStatusService(orders OrderStore, erp *ERPClient) *StatusService {
	return &StatusService{
		orders: orders,
		erp:    erp,
	}
}

// StatusRef ссылка на заказ в батч-запросе: либо локальный id,
// либо сразу UID подзаказа 1C
type StatusRef struct {
	OrderID string `json:"order_id,omitempty"`
	UID     string `json:"uid,omitempty"`
}

// Key ключ ссылки в ответе
func (r StatusRef) Key() string {
	if r.OrderID != "" {
		return r.OrderID
	}
	return r.UID
}

// StatusResult итоговый статус одной ссылки
type StatusResult struct {
	Status  models.CanonicalStatus `json:"status"`
	Display string                 `json:"display"`
	Source  string                 `json:"source"`
	Error   string                 `json:"error,omitempty"`
}

type fetchResult struct {
	status string
	err    error
}

// fetchStatuses опрашивает 1C по всем UID с ограниченным параллелизмом
// Ошибка по одному UID не мешает остальным
func (ss *StatusService) fetchStatuses(uids []string) map[string]fetchResult {
	results := make(map[string]fetchResult, len(uids))
	if len(uids) == 0 {
		return results
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, statusFetchConcurrency)
	)

	for _, uid := range uids {
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			status, err := ss.erp.OrderStatus(ctx, uid)
			if err != nil {
				log.Printf("⚠️ Статусы: UID %s не получен из 1C: %v", uid, err)
			}

			mu.Lock()
			results[uid] = fetchResult{status: status, err: err}
			mu.Unlock()
		}(uid)
	}

	wg.Wait()
	return results
}

// subOrderUIDs возвращает UID-ы подзаказов заказа
func subOrderUIDs(order *models.Order) []string {
	uids := make([]string, 0, len(order.OrdersUID))
	for _, uid := range order.OrdersUID {
		if uid != "" {
			uids = append(uids, uid)
		}
	}
	return uids
}

// resolveOrder сводит статусы всех подзаказов заказа в один
// Заказ без подзаказов: локально отмененный отдаем из MongoDB,
// остальные получают дефолтный статус "В обработке"
func (ss *StatusService) resolveOrder(order *models.Order, fetched map[string]fetchResult) StatusResult {
	uids := subOrderUIDs(order)

	if len(uids) == 0 {
		if status, ok := ClassifyStatus(order.Status); ok && status == models.StatusCancelled {
			return StatusResult{
				Status:  models.StatusCancelled,
				Display: models.StatusCancelled.Display(),
				Source:  models.StatusSourceMongo,
			}
		}
		return StatusResult{
			Status:  models.StatusProcessing,
			Display: models.StatusProcessing.Display(),
			Source:  models.StatusSourceDefault,
		}
	}

	// Сначала собираем все статусы подзаказов, потом разрешаем приоритетом
	statuses := make([]string, 0, len(uids))
	failed := 0
	for _, uid := range uids {
		result, ok := fetched[uid]
		if !ok || result.err != nil {
			failed++
			continue
		}
		statuses = append(statuses, result.status)
	}

	resolved := ResolveStatuses(statuses)
	out := StatusResult{
		Status:  resolved,
		Display: resolved.Display(),
		Source:  models.StatusSource1C,
	}
	if failed > 0 {
		out.Error = fmt.Sprintf("не получен статус %d из %d подзаказов", failed, len(uids))
	}

	return out
}

// BatchStatuses возвращает статус по каждой ссылке батча
// Ошибки по отдельным ссылкам не валят весь батч
func (ss *StatusService) BatchStatuses(refs []StatusRef) map[string]StatusResult {
	results := make(map[string]StatusResult, len(refs))

	// Загружаем заказы и собираем все UID-ы для опроса 1C
	orders := make(map[string]*models.Order)
	uidSet := make(map[string]struct{})

	for _, ref := range refs {
		if ref.OrderID != "" {
			order, err := ss.orders.GetOrder(ref.OrderID)
			if err != nil {
				log.Printf("⚠️ Статусы: заказ %s не прочитан: %v", ref.OrderID, err)
				results[ref.OrderID] = StatusResult{
					Status:  models.StatusProcessing,
					Display: models.StatusProcessing.Display(),
					Source:  models.StatusSourceDefault,
					Error:   "ошибка чтения заказа",
				}
				continue
			}
			if order == nil {
				results[ref.OrderID] = StatusResult{
					Status:  models.StatusProcessing,
					Display: models.StatusProcessing.Display(),
					Source:  models.StatusSourceDefault,
					Error:   "заказ не найден",
				}
				continue
			}
			orders[ref.OrderID] = order
			for _, uid := range subOrderUIDs(order) {
				uidSet[uid] = struct{}{}
			}
		} else if ref.UID != "" {
			uidSet[ref.UID] = struct{}{}
		}
	}

	uids := make([]string, 0, len(uidSet))
	for uid := range uidSet {
		uids = append(uids, uid)
	}
	fetched := ss.fetchStatuses(uids)

	for _, ref := range refs {
		key := ref.Key()
		if key == "" {
			continue
		}
		if _, done := results[key]; done {
			continue
		}

		if ref.OrderID != "" {
			order := orders[ref.OrderID]
			if order == nil {
				continue
			}
			result := ss.resolveOrder(order, fetched)
			results[key] = result

			// Best-effort кэш статуса в документе заказа
			if result.Source == models.StatusSource1C {
				go func(orderID, display string) {
					if err := ss.orders.UpdateOrderStatus(orderID, display); err != nil {
						log.Printf("⚠️ Статусы: кэш статуса заказа %s не обновлен: %v", orderID, err)
					}
				}(ref.OrderID, result.Display)
			}
			continue
		}

		// Прямая ссылка на UID подзаказа
		fetchRes, ok := fetched[ref.UID]
		if !ok || fetchRes.err != nil {
			results[key] = StatusResult{
				Status:  models.StatusProcessing,
				Display: models.StatusProcessing.Display(),
				Source:  models.StatusSource1C,
				Error:   "статус не получен из 1C",
			}
			continue
		}

		status, _ := ClassifyStatus(fetchRes.status)
		results[key] = StatusResult{
			Status:  status,
			Display: status.Display(),
			Source:  models.StatusSource1C,
		}
	}

	return results
}

// CombinedStatus возвращает сводный статус одного заказа
func (ss *StatusService) CombinedStatus(orderID string) (*StatusResult, error) {
	order, err := ss.orders.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	fetched := ss.fetchStatuses(subOrderUIDs(order))
	result := ss.resolveOrder(order, fetched)

	if result.Source == models.StatusSource1C {
		if err := ss.orders.UpdateOrderStatus(orderID, result.Display); err != nil {
			log.Printf("⚠️ Статусы: кэш статуса заказа %s не обновлен: %v", orderID, err)
		}
	}

	return &result, nil
}
