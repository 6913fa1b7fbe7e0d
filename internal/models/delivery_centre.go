package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryCentre is a delivery-area operator account. NickName identifies the
// delivery area; orders carry it in order_direction and the match is
// case-insensitive. CentreID ("DC" + 2-digit sequence) contributes the centre
// part of generated order IDs.
type DeliveryCentre struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	CentreID     string             `bson:"centre_ID" json:"centre_ID"`
	NickName     string             `bson:"nickName" json:"nickName"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Area         string             `bson:"area,omitempty" json:"area,omitempty"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
