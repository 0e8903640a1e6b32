package models

// TaraMovement одно движение тары в леджере Supabase
// Count — строка со знаком ("+2" выдано клиенту, "-2" возвращено)
type TaraMovement struct {
	Client string `json:"client"`
	Tara   string `json:"tara"`
	TaraID string `json:"tara_id"`
	Count  string `json:"count"`
}

// TaraBalance агрегированный баланс по одному виду тары
type TaraBalance struct {
	TaraID   string `json:"tara_id"`
	TaraName string `json:"tara_name"`
	Balance  int    `json:"balance"` // Сколько тары сейчас на руках у клиента
}
