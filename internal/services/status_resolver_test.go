package services

import (
	"testing"

	"beerapp/server/internal/models"
)

func TestResolveStatuses(t *testing.T) {
	cases := []struct {
		name     string
		statuses []string
		want     models.CanonicalStatus
	}{
		{"один новый", []string{"Новый"}, models.StatusNew},
		{"в работе нижним регистром", []string{"в работе"}, models.StatusInProgress},
		{"выполнен побеждает новый", []string{"Выполнен", "Новый"}, models.StatusDone},
		{"отмена побеждает выполнен", []string{"отменен", "выполнен"}, models.StatusCancelled},
		{"пустой список", []string{}, models.StatusProcessing},
		{"нераспознанный статус", []string{"какая-то ерунда"}, models.StatusProcessing},
		{"пробелы и регистр", []string{"  ВЫПОЛНЕН  "}, models.StatusDone},
		{"ё в отменён", []string{"Отменён"}, models.StatusCancelled},
		{"синоним отгружен", []string{"Отгружено"}, models.StatusDone},
		{"синоним принят", []string{"Принят в работу"}, models.StatusInProgress},
		{"аннулирован как отмена", []string{"Аннулирован"}, models.StatusCancelled},
		{"подстрока в длинной фразе", []string{"Заказ выполнен полностью"}, models.StatusDone},
		{"нераспознанные игнорируются", []string{"мусор", "Новый", "мусор"}, models.StatusNew},
		{"все нераспознанные", []string{"", "  ", "abc"}, models.StatusProcessing},
		{"в работе побеждает новый", []string{"Новый", "В работе", "Новый"}, models.StatusInProgress},
		{"эхо дефолтной подписи не распознается", []string{"В обработке"}, models.StatusProcessing},
		{"принят в работу", []string{"Заказ принят в работу"}, models.StatusInProgress},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveStatuses(tc.statuses)
			if got != tc.want {
				t.Fatalf("ResolveStatuses(%v) = %q, ожидали %q", tc.statuses, got, tc.want)
			}
		})
	}
}

// Результат не должен зависеть от порядка и повторов вызова
func TestResolveStatusesIdempotent(t *testing.T) {
	statuses := []string{"Новый", "отменен", "Выполнен"}

	first := ResolveStatuses(statuses)
	second := ResolveStatuses(statuses)
	if first != second {
		t.Fatalf("повторный вызов дал другой результат: %q != %q", first, second)
	}

	reversed := []string{"Выполнен", "отменен", "Новый"}
	if got := ResolveStatuses(reversed); got != first {
		t.Fatalf("порядок статусов повлиял на результат: %q != %q", got, first)
	}
}

// Резолвер всегда возвращает одну из пяти канонических меток
func TestResolveStatusesClosedSet(t *testing.T) {
	valid := map[models.CanonicalStatus]bool{
		models.StatusNew:        true,
		models.StatusInProgress: true,
		models.StatusDone:       true,
		models.StatusCancelled:  true,
		models.StatusProcessing: true,
	}

	inputs := [][]string{
		nil,
		{},
		{""},
		{"Новый"},
		{"что угодно", "совсем не статус"},
		{"выполнен", "отменен", "в работе", "новый"},
	}

	for _, input := range inputs {
		got := ResolveStatuses(input)
		if !valid[got] {
			t.Fatalf("ResolveStatuses(%v) вернул неканоническую метку %q", input, got)
		}
	}
}

func TestClassifyStatus(t *testing.T) {
	status, ok := ClassifyStatus("Выполнен")
	if !ok || status != models.StatusDone {
		t.Fatalf("ClassifyStatus(Выполнен) = (%q, %v)", status, ok)
	}

	status, ok = ClassifyStatus("непонятно")
	if ok {
		t.Fatalf("нераспознанный статус не должен давать ok=true")
	}
	if status != models.StatusProcessing {
		t.Fatalf("нераспознанный статус должен давать дефолт, получили %q", status)
	}

	// Дефолтная подпись может вернуться из кэша документа, она не
	// должна эскалировать заказ в "В работе"
	if _, ok := ClassifyStatus("В обработке"); ok {
		t.Fatalf("дефолтная подпись не должна распознаваться как статус")
	}
}

func TestCanonicalStatusDisplay(t *testing.T) {
	cases := map[models.CanonicalStatus]string{
		models.StatusNew:        "Новый",
		models.StatusInProgress: "В работе",
		models.StatusDone:       "Выполнен",
		models.StatusCancelled:  "Отменен",
		models.StatusProcessing: "В обработке",
	}

	for status, want := range cases {
		if got := status.Display(); got != want {
			t.Fatalf("%q.Display() = %q, ожидали %q", status, got, want)
		}
	}
}
