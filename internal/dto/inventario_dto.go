package dto

import "time"

type MovimientoResponse struct {
	ID            int64     `json:"id"`
	Tipo          string    `json:"tipo"`
	Cantidad      int       `json:"cantidad"`
	StockAnterior int       `json:"stock_anterior"`
	StockNuevo    int       `json:"stock_nuevo"`
	Referencia    string    `json:"referencia"`
	UsuarioID     int64     `json:"id_usuario"`
	Fecha         time.Time `json:"fecha"`
}

// KardexResponse is the ledger of one product. Conciliado reports whether
// TotalEntradas − TotalSalidas equals StockActual.
type KardexResponse struct {
	ProductoID    int64                `json:"id_producto"`
	Nombre        string               `json:"nombre"`
	StockActual   int                  `json:"stock_actual"`
	TotalEntradas int                  `json:"total_entradas"`
	TotalSalidas  int                  `json:"total_salidas"`
	Conciliado    bool                 `json:"conciliado"`
	Movimientos   []MovimientoResponse `json:"movimientos"`
}
