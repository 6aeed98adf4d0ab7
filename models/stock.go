package models

type TipoStock string

const (
	StockAccesorios TipoStock = "accesorios"
	StockRepuestos  TipoStock = "repuestos"
	StockTelefonos  TipoStock = "telefonos"
)

// StockItem covers the three stock flavors. Phones use the extra fields.
type StockItem struct {
	ID          string    `bson:"_id,omitempty" json:"id" firestore:"-"`
	Codigo      string    `bson:"codigo" json:"codigo" firestore:"codigo"`
	Producto    string    `bson:"producto" json:"producto" firestore:"producto" binding:"required"`
	Marca       string    `bson:"marca" json:"marca" firestore:"marca"`
	Modelo      string    `bson:"modelo" json:"modelo" firestore:"modelo"`
	Color       string    `bson:"color" json:"color" firestore:"color"`
	Categoria   Categoria `bson:"categoria" json:"categoria" firestore:"categoria"`
	PrecioCosto float64   `bson:"precioCosto" json:"precioCosto" firestore:"precioCosto" binding:"gte=0"`
	Precio1     float64   `bson:"precio1" json:"precio1" firestore:"precio1" binding:"gte=0"`
	Precio2     float64   `bson:"precio2" json:"precio2" firestore:"precio2" binding:"gte=0"`
	Precio3     float64   `bson:"precio3" json:"precio3" firestore:"precio3" binding:"gte=0"`
	Moneda      Moneda    `bson:"moneda" json:"moneda" firestore:"moneda" binding:"omitempty,oneof=ARS USD"`
	Cantidad    int       `bson:"cantidad" json:"cantidad" firestore:"cantidad" binding:"gte=0"`
	StockIdeal  int       `bson:"stockIdeal" json:"stockIdeal" firestore:"stockIdeal" binding:"gte=0"`
	StockBajo   int       `bson:"stockBajo" json:"stockBajo" firestore:"stockBajo" binding:"gte=0"`
	Proveedor   string    `bson:"proveedor" json:"proveedor" firestore:"proveedor"`

	Imei    string `bson:"imei,omitempty" json:"imei,omitempty" firestore:"imei,omitempty"`
	Gb      string `bson:"gb,omitempty" json:"gb,omitempty" firestore:"gb,omitempty"`
	Bateria string `bson:"bateria,omitempty" json:"bateria,omitempty" firestore:"bateria,omitempty"`
	Estado  string `bson:"estado,omitempty" json:"estado,omitempty" firestore:"estado,omitempty"`
}
