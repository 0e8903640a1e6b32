package services

import (
	"strings"

	"beerapp/server/internal/models"
)

// Приоритеты статусов: чем выше, тем важнее при слиянии статусов
// нескольких подзаказов 1C в один пользовательский статус
const (
	tierNew        = 1
	tierInProgress = 2
	tierDone       = 3
	tierCancelled  = 4
)

// 1C отдает статусы свободным текстом с синонимами, поэтому сначала
// пробуем точное совпадение нормализованной фразы, затем — вхождение
// подстроки (порядок от высшего приоритета к низшему)
var exactStatusTiers = map[string]int{
	"новый":       tierNew,
	"нов":         tierNew,
	"в работе":    tierInProgress,
	"в работу":    tierInProgress,
	"принят":      tierInProgress,
	"подтвержден": tierInProgress,
	"подтверждён": tierInProgress,
	"выполнен":    tierDone,
	"выполнено":   tierDone,
	"отгружен":    tierDone,
	"отгружено":   tierDone,
	"доставлен":   tierDone,
	"выдан":       tierDone,
	"завершен":    tierDone,
	"завершён":    tierDone,
	"отменен":     tierCancelled,
	"отменён":     tierCancelled,
	"аннулирован": tierCancelled,
}

var substringStatusTiers = []struct {
	substr string
	tier   int
}{
	{"отменен", tierCancelled},
	{"отменён", tierCancelled},
	{"аннулирован", tierCancelled},
	{"выполнен", tierDone},
	{"отгружен", tierDone},
	{"доставлен", tierDone},
	{"выдан", tierDone},
	{"завершен", tierDone},
	{"завершён", tierDone},
	{"в работе", tierInProgress},
	{"в работу", tierInProgress},
	{"принят", tierInProgress},
	{"подтвержд", tierInProgress},
	{"новый", tierNew},
	{"нов", tierNew},
}

var tierLabels = map[int]models.CanonicalStatus{
	tierNew:        models.StatusNew,
	tierInProgress: models.StatusInProgress,
	tierDone:       models.StatusDone,
	tierCancelled:  models.StatusCancelled,
}

// classifyTier возвращает приоритет сырого статуса, 0 если не распознан
func classifyTier(raw string) int {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return 0
	}

	if tier, ok := exactStatusTiers[normalized]; ok {
		return tier
	}

	for _, entry := range substringStatusTiers {
		if strings.Contains(normalized, entry.substr) {
			return entry.tier
		}
	}

	return 0
}

// ClassifyStatus приводит сырой статус 1C к каноническому
// Второе значение false, если статус не распознан
func ClassifyStatus(raw string) (models.CanonicalStatus, bool) {
	tier := classifyTier(raw)
	if tier == 0 {
		return models.StatusProcessing, false
	}
	return tierLabels[tier], true
}

// ResolveStatuses сводит статусы всех подзаказов в один канонический
// Побеждает статус с наибольшим приоритетом; нераспознанные статусы
// игнорируются; если не распознан ни один — возвращаем дефолт
func ResolveStatuses(statuses []string) models.CanonicalStatus {
	highest := 0
	for _, raw := range statuses {
		if tier := classifyTier(raw); tier > highest {
			highest = tier
		}
	}

	if highest == 0 {
		return models.StatusProcessing
	}
	return tierLabels[highest]
}
