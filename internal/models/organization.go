package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization документ коллекции organizations
type Organization struct {
	MongoID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrganizationID string             `bson:"organizationId" json:"organization_id"`
	LegalEntity    string             `bson:"legalEntity,omitempty" json:"legal_entity,omitempty"`
	INN            string             `bson:"inn,omitempty" json:"inn,omitempty"`
}
