package models

type Moneda string

const (
	ARS  Moneda = "ARS"
	USD  Moneda = "USD"
	DUAL Moneda = "DUAL"
)

type EstadoVenta string

const (
	Pagado    EstadoVenta = "pagado"
	Pendiente EstadoVenta = "pendiente"
)

type Categoria string

const (
	Telefono  Categoria = "Teléfono"
	Accesorio Categoria = "Accesorio"
	Repuesto  Categoria = "Repuesto"
)

// ProductoVendido is one line of a sale, in the order it was entered.
type ProductoVendido struct {
	Categoria      Categoria `bson:"categoria" json:"categoria" firestore:"categoria" binding:"required"`
	Producto       string    `bson:"producto,omitempty" json:"producto,omitempty" firestore:"producto,omitempty"`
	Descripcion    string    `bson:"descripcion,omitempty" json:"descripcion,omitempty" firestore:"descripcion,omitempty"`
	Marca          string    `bson:"marca,omitempty" json:"marca,omitempty" firestore:"marca,omitempty"`
	Modelo         string    `bson:"modelo,omitempty" json:"modelo,omitempty" firestore:"modelo,omitempty"`
	Color          string    `bson:"color,omitempty" json:"color,omitempty" firestore:"color,omitempty"`
	Cantidad       int       `bson:"cantidad" json:"cantidad" firestore:"cantidad" binding:"gt=0"`
	PrecioUnitario float64   `bson:"precioUnitario" json:"precioUnitario" firestore:"precioUnitario" binding:"gte=0"`
	Moneda         Moneda    `bson:"moneda" json:"moneda" firestore:"moneda" binding:"omitempty,oneof=ARS USD"`
	Codigo         string    `bson:"codigo,omitempty" json:"codigo,omitempty" firestore:"codigo,omitempty"`
	PrecioCosto    float64   `bson:"precioCosto,omitempty" json:"precioCosto,omitempty" firestore:"precioCosto,omitempty"`
	Ganancia       float64   `bson:"ganancia,omitempty" json:"ganancia,omitempty" firestore:"ganancia,omitempty"`
}

// Venta is stored under negocios/{negocioID}/ventasGeneral.
// Fecha keeps the legacy D/M/YYYY string the stored data already uses.
type Venta struct {
	ID         string            `bson:"_id,omitempty" json:"id" firestore:"-"`
	Cliente    string            `bson:"cliente" json:"cliente" firestore:"cliente"`
	Fecha      string            `bson:"fecha" json:"fecha" firestore:"fecha"`
	Productos  []ProductoVendido `bson:"productos" json:"productos" firestore:"productos"`
	Total      float64           `bson:"total" json:"total" firestore:"total"`
	TotalARS   float64           `bson:"totalARS,omitempty" json:"totalARS,omitempty" firestore:"totalARS,omitempty"`
	TotalUSD   float64           `bson:"totalUSD,omitempty" json:"totalUSD,omitempty" firestore:"totalUSD,omitempty"`
	Cotizacion float64           `bson:"cotizacion,omitempty" json:"cotizacion,omitempty" firestore:"cotizacion,omitempty"`
	Estado     EstadoVenta       `bson:"estado" json:"estado" firestore:"estado"`
	MetodoPago string            `bson:"metodoPago" json:"metodoPago" firestore:"metodoPago"`
	Moneda     Moneda            `bson:"moneda" json:"moneda" firestore:"moneda"`
	NroVenta   int               `bson:"nroVenta" json:"nroVenta" firestore:"nroVenta"`
	Timestamp  int64             `bson:"timestamp" json:"timestamp" firestore:"timestamp"`
}
