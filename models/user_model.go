package models

type Rol string

const (
	RolAdmin    Rol = "admin"
	RolVendedor Rol = "vendedor"
)

type User struct {
	ID        string `bson:"_id,omitempty" json:"id" firestore:"-"`
	Email     string `bson:"email" json:"email" firestore:"email"`
	Password  string `bson:"password" json:"password,omitempty" firestore:"password"`
	Username  string `bson:"username" json:"username" firestore:"username"`
	NegocioID string `bson:"negocioId" json:"negocioId" firestore:"negocioId"`
	Rol       Rol    `bson:"rol" json:"rol" firestore:"rol"`
	Theme     string `bson:"theme,omitempty" json:"theme,omitempty" firestore:"theme,omitempty"`
	Language  string `bson:"language,omitempty" json:"language,omitempty" firestore:"language,omitempty"`
}
