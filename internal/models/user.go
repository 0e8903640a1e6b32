package models

// UserProfile данные регистрации пользователя из хэша beer:user:<id>
type UserProfile struct {
	UserChatID   string `json:"user_chat_id"`
	CurrentStep  string `json:"current_step"` // "registered" = регистрация завершена
	Organization string `json:"organization"`
	OrgID        string `json:"org_id"`
}

// Registered завершил ли пользователь регистрацию в боте
func (u *UserProfile) Registered() bool {
	return u.CurrentStep == "registered"
}

// UserProfileFromHash собирает профиль из полей Redis-хэша
func UserProfileFromHash(fields map[string]string) *UserProfile {
	return &UserProfile{
		UserChatID:   fields["UserChatID"],
		CurrentStep:  fields["current_step"],
		Organization: fields["organization"],
		OrgID:        fields["org_ID"],
	}
}

// Settings глобальные настройки приложения из хэша beer:setting
type Settings struct {
	Admin               string `json:"admin"`       // user_id администратора
	Coefficient         string `json:"coefficient"` // Ценовой коэффициент (строка, например "1.15")
	CoefficientLastDate string `json:"coefficient_last_date"`
	OpenAIKey           string `json:"-"` // Ключ OpenAI наружу не отдаем
}

// SettingsFromHash собирает настройки из полей Redis-хэша
func SettingsFromHash(fields map[string]string) *Settings {
	return &Settings{
		Admin:               fields["Admin"],
		Coefficient:         fields["coefficient"],
		CoefficientLastDate: fields["coefficient_last_Date"],
		OpenAIKey:           fields["OpenAI"],
	}
}
