package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogItem документ коллекции catalog
// Поля в базе дублируют выгрузку из 1C, поэтому имена такие
type CatalogItem struct {
	MongoID     primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID          int                `bson:"id" json:"id"`
	UID         string             `bson:"UID,omitempty" json:"uid,omitempty"` // UID товара в 1C
	Name        string             `bson:"name" json:"name"`
	FullName    string             `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Volume      float64            `bson:"volume,omitempty" json:"volume"`
	Price       float64            `bson:"price,omitempty" json:"price"`
	LegalEntity int                `bson:"legalEntity,omitempty" json:"legalEntity"`
	// Тара (возвратная): нужна ли и какая
	Tara     bool   `bson:"TARA,omitempty" json:"tara,omitempty"`
	NeedTara bool   `bson:"NEED_TARA,omitempty" json:"need_tara,omitempty"`
	TaraName string `bson:"TARA_NAME,omitempty" json:"tara_name,omitempty"`
	TaraUID  string `bson:"TARA_UID,omitempty" json:"tara_uid,omitempty"`
}

// FormattedProduct представление товара для фронтенда
type FormattedProduct struct {
	ID          int     `json:"id"`
	MongoID     string  `json:"_id"`
	Name        string  `json:"name"`
	FullName    string  `json:"fullName"`
	Volume      float64 `json:"volume"`
	Price       int     `json:"price"` // Цена в рублях с учетом коэффициента
	LegalEntity int     `json:"legalEntity"`
	NeedTara    bool    `json:"needTara"`
	TaraName    string  `json:"taraName,omitempty"`
}
